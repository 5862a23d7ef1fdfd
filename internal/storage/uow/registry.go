package uow

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotRegistered is returned by Get when no constructor exists for the
// requested repository type.
var ErrNotRegistered = errors.New("no repository registered")

type factoryFunc func(Session) (any, error)

// Registry maps a repository type to the constructor that binds it to a
// session. Each storage backend registers its own constructors at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]factoryFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[reflect.Type]factoryFunc)}
}

// Register binds repository type R to newRepo. A later registration for the
// same type replaces the earlier one.
func Register[R any](reg *Registry, newRepo func(Session) (R, error)) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.factories[reflect.TypeFor[R]()] = func(s Session) (any, error) {
		return newRepo(s)
	}
}

// Registered reports whether a constructor exists for R.
func Registered[R any](reg *Registry) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.factories[reflect.TypeFor[R]()]
	return ok
}

func (reg *Registry) build(t reflect.Type, s Session) (any, error) {
	reg.mu.RLock()
	f, ok := reg.factories[t]
	reg.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNotRegistered, t)
	}
	return f(s)
}
