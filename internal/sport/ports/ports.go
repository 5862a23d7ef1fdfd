package ports

import (
	"context"

	"sportify/internal/sport/models"
	"sportify/internal/storage"
	id "sportify/pkg/domain"
)

// UniqueKeyName indexes the case-folded sport name.
const UniqueKeyName = "name"

// SportRepository is the sport persistence contract.
type SportRepository interface {
	storage.Repository[models.Sport, id.SportID]

	// FindByName matches names ignoring case.
	FindByName(ctx context.Context, name string) (*models.Sport, error)
}

// SportReferences clears the links other aggregates hold to a sport.
type SportReferences interface {
	DetachSport(ctx context.Context, sportID id.SportID) (int, error)
}
