// Package store holds the country repositories for each storage backend.
package store

import (
	"sportify/internal/country/ports"
	"sportify/internal/storage/uow"
)

// RegisterPostgres makes uow.Get[ports.CountryRepository] return a postgres store.
func RegisterPostgres(reg *uow.Registry) {
	uow.Register(reg, func(s uow.Session) (ports.CountryRepository, error) {
		repo, err := NewPostgres(s)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}

// RegisterMemory makes uow.Get[ports.CountryRepository] return a memory store.
func RegisterMemory(reg *uow.Registry) {
	uow.Register(reg, func(s uow.Session) (ports.CountryRepository, error) {
		repo, err := NewMemory(s)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}
