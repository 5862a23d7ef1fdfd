package ports

import (
	"context"

	"sportify/internal/federation/models"
	"sportify/internal/storage"
	id "sportify/pkg/domain"
)

const UniqueKeyName = "name"

// FederationRepository is the federation persistence contract.
type FederationRepository interface {
	storage.Repository[models.Federation, id.FederationID]

	FindByName(ctx context.Context, name string) (*models.Federation, error)
	// Children lists direct children of parent sorted by name.
	Children(ctx context.Context, parent id.FederationID) ([]*models.Federation, error)
	// ByCountry and BySport list the federations linked to a country or sport.
	ByCountry(ctx context.Context, countryID id.CountryID) ([]*models.Federation, error)
	BySport(ctx context.Context, sportID id.SportID) ([]*models.Federation, error)
	// Hierarchy loads every parent link.
	Hierarchy(ctx context.Context) (models.Hierarchy, error)
}
