// Package store holds the federation repositories for each storage backend.
package store

import (
	countryports "sportify/internal/country/ports"
	"sportify/internal/federation/ports"
	sportports "sportify/internal/sport/ports"
	"sportify/internal/storage/uow"
)

// RegisterPostgres binds the federation repository and the country and
// sport reference cleaners to postgres sessions.
func RegisterPostgres(reg *uow.Registry) {
	register(reg, func(s uow.Session) (ports.FederationRepository, error) {
		repo, err := NewPostgres(s)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}

func RegisterMemory(reg *uow.Registry) {
	register(reg, func(s uow.Session) (ports.FederationRepository, error) {
		repo, err := NewMemory(s)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}

func register(reg *uow.Registry, newRepo func(uow.Session) (ports.FederationRepository, error)) {
	uow.Register(reg, newRepo)
	uow.Register(reg, func(s uow.Session) (countryports.CountryReferences, error) {
		repo, err := newRepo(s)
		if err != nil {
			return nil, err
		}
		return NewReferences(repo), nil
	})
	uow.Register(reg, func(s uow.Session) (sportports.SportReferences, error) {
		repo, err := newRepo(s)
		if err != nil {
			return nil, err
		}
		return NewReferences(repo), nil
	})
}
