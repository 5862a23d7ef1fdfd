package store

import (
	"context"
	"time"

	"sportify/internal/federation/models"
	"sportify/internal/federation/ports"
	"sportify/internal/storage"
	"sportify/internal/storage/memory"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
)

var memoryMapping = memory.Mapping[models.Federation, id.FederationID]{
	Table: "federations",
	GetID: func(f *models.Federation) id.FederationID { return f.ID },
	SetID: func(f *models.Federation, v id.FederationID) { f.ID = v },
	Stamp: func(f *models.Federation, now time.Time, created bool) {
		if created {
			f.CreatedAt = now
		}
		f.UpdatedAt = now
	},
	Unique: map[string]func(*models.Federation) string{
		ports.UniqueKeyName: func(f *models.Federation) string { return f.Name },
	},
	Less: func(a, b *models.Federation) bool { return storage.NameLess(a.Name, b.Name) },
}

// MemoryStore is the in-memory federations table. Reference checks are left
// to the service, which runs them in the same unit of work.
type MemoryStore struct {
	*memory.Table[models.Federation, id.FederationID]
}

var _ ports.FederationRepository = (*MemoryStore)(nil)

func NewMemory(s uow.Session) (*MemoryStore, error) {
	t, err := memory.NewTable(s, memoryMapping)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{Table: t}, nil
}

func (s *MemoryStore) FindByName(ctx context.Context, name string) (*models.Federation, error) {
	return s.FindOne(ctx, func(f *models.Federation) bool { return f.Name == name })
}

func (s *MemoryStore) Children(ctx context.Context, parent id.FederationID) ([]*models.Federation, error) {
	return s.Filter(ctx, func(f *models.Federation) bool {
		return f.ParentID != nil && *f.ParentID == parent
	})
}

func (s *MemoryStore) ByCountry(ctx context.Context, countryID id.CountryID) ([]*models.Federation, error) {
	return s.Filter(ctx, func(f *models.Federation) bool {
		return f.CountryID != nil && *f.CountryID == countryID
	})
}

func (s *MemoryStore) BySport(ctx context.Context, sportID id.SportID) ([]*models.Federation, error) {
	return s.Filter(ctx, func(f *models.Federation) bool {
		return f.SportID != nil && *f.SportID == sportID
	})
}

func (s *MemoryStore) Hierarchy(ctx context.Context) (models.Hierarchy, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewHierarchy(all), nil
}
