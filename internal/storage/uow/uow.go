package uow

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"sportify/pkg/platform/sentinel"
)

// UnitOfWork owns one session for one logical operation and hands out
// repositories bound to it, at most one instance per repository type.
type UnitOfWork struct {
	mu       sync.Mutex
	session  Session
	registry *Registry
	repos    map[reflect.Type]any
	state    State
}

// New wraps an already opened session.
func New(session Session, registry *Registry) *UnitOfWork {
	return &UnitOfWork{
		session:  session,
		registry: registry,
		repos:    make(map[reflect.Type]any),
		state:    StateOpen,
	}
}

// State returns the current lifecycle state.
func (u *UnitOfWork) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Get returns the repository of type R bound to u's session, constructing it
// on first use and returning the cached instance afterwards.
func Get[R any](u *UnitOfWork) (R, error) {
	var zero R
	t := reflect.TypeFor[R]()

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateOpen {
		return zero, fmt.Errorf("get repository %s in state %s: %w", t, u.state, sentinel.ErrInvalidState)
	}
	if repo, ok := u.repos[t]; ok {
		return repo.(R), nil
	}
	repo, err := u.registry.build(t, u.session)
	if err != nil {
		return zero, err
	}
	r, ok := repo.(R)
	if !ok {
		return zero, fmt.Errorf("repository for %s has type %T", t, repo)
	}
	u.repos[t] = r
	return r, nil
}

// Commit persists the session. A storage rejection is returned and u stays
// OPEN so the caller can still roll back.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateOpen {
		return fmt.Errorf("commit in state %s: %w", u.state, sentinel.ErrInvalidState)
	}
	if err := u.session.Commit(ctx); err != nil {
		return err
	}
	u.state = StateCommitted
	return nil
}

// Rollback discards uncommitted changes.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateOpen {
		return fmt.Errorf("rollback in state %s: %w", u.state, sentinel.ErrInvalidState)
	}
	u.state = StateRolledBack
	return u.session.Rollback(ctx)
}

// Close releases the session. Closing an OPEN unit of work rolls it back
// first; closing twice is a no-op.
func (u *UnitOfWork) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == StateClosed {
		return nil
	}
	var rbErr error
	if u.state == StateOpen {
		rbErr = u.session.Rollback(context.Background())
	}
	u.state = StateClosed
	u.repos = nil
	return errors.Join(rbErr, u.session.Close())
}
