package store

import (
	"context"
	"time"

	"sportify/internal/country/models"
	"sportify/internal/country/ports"
	"sportify/internal/storage"
	"sportify/internal/storage/memory"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
)

var memoryMapping = memory.Mapping[models.Country, id.CountryID]{
	Table: "countries",
	GetID: func(c *models.Country) id.CountryID { return c.ID },
	SetID: func(c *models.Country, v id.CountryID) { c.ID = v },
	Stamp: func(c *models.Country, now time.Time, created bool) {
		if created {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
	},
	Unique: map[string]func(*models.Country) string{
		ports.UniqueKeyISOCode: func(c *models.Country) string { return c.ISOCode.String() },
	},
	Less: func(a, b *models.Country) bool { return storage.NameLess(a.Name, b.Name) },
}

// MemoryStore is the in-memory countries table bound to one session.
type MemoryStore struct {
	*memory.Table[models.Country, id.CountryID]
}

var _ ports.CountryRepository = (*MemoryStore)(nil)

// NewMemory binds a country repository to a memory session.
func NewMemory(s uow.Session) (*MemoryStore, error) {
	t, err := memory.NewTable(s, memoryMapping)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{Table: t}, nil
}

func (s *MemoryStore) FindByISOCode(ctx context.Context, code models.ISOCode) (*models.Country, error) {
	return s.FindOne(ctx, func(c *models.Country) bool { return c.ISOCode == code })
}

func (s *MemoryStore) ExistsByISOCode(ctx context.Context, code models.ISOCode) (bool, error) {
	return s.Exists(ctx, storage.Key(ports.UniqueKeyISOCode, code.String()))
}

func (s *MemoryStore) List(ctx context.Context, activeOnly bool) ([]*models.Country, error) {
	if !activeOnly {
		return s.GetAll(ctx)
	}
	return s.Filter(ctx, func(c *models.Country) bool { return c.IsActive })
}
