package ports

import (
	"context"

	"sportify/internal/country/models"
	"sportify/internal/storage"
	id "sportify/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks CountryRepository

// UniqueKeyISOCode is the unique key name for Exists lookups.
const UniqueKeyISOCode = "iso_code"

// CountryRepository is the country persistence contract used by the service.
// Both storage backends implement it and register it with the unit of work.
type CountryRepository interface {
	storage.Repository[models.Country, id.CountryID]

	FindByISOCode(ctx context.Context, code models.ISOCode) (*models.Country, error)
	ExistsByISOCode(ctx context.Context, code models.ISOCode) (bool, error)
	// List returns countries sorted by name, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]*models.Country, error)
}

// CountryReferences clears the links other aggregates hold to a country so
// a delete leaves no dangling ids, whatever the backend enforces.
type CountryReferences interface {
	DetachCountry(ctx context.Context, countryID id.CountryID) (int, error)
}
