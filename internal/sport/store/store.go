// Package store holds the sport repositories for each storage backend.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"sportify/internal/sport/models"
	"sportify/internal/sport/ports"
	"sportify/internal/storage"
	"sportify/internal/storage/memory"
	"sportify/internal/storage/postgres"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
	"sportify/pkg/platform/sentinel"
)

type sportRecord struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	TeamBased bool      `db:"team_based"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var postgresMapping = postgres.Mapping[models.Sport, id.SportID, sportRecord]{
	Table:   "sports",
	Columns: []string{"name", "team_based"},
	OrderBy: storage.NameOrderSQL,
	ToRecord: func(s *models.Sport) sportRecord {
		return sportRecord{ID: int64(s.ID), Name: s.Name, TeamBased: s.TeamBased}
	},
	ToEntity: func(r sportRecord) (*models.Sport, error) {
		return &models.Sport{
			ID:        id.SportID(r.ID),
			Name:      r.Name,
			TeamBased: r.TeamBased,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}, nil
	},
}

// PostgresStore is the sports table bound to one session.
type PostgresStore struct {
	*postgres.Table[models.Sport, id.SportID, sportRecord]
}

var _ ports.SportRepository = (*PostgresStore)(nil)

func NewPostgres(s uow.Session) (*PostgresStore, error) {
	t, err := postgres.NewTable(s, postgresMapping)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{Table: t}, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Sport, error) {
	return s.Find(ctx, "SELECT * FROM sports WHERE lower(name) = lower($1)", strings.TrimSpace(name))
}

// Exists matches the name key ignoring case, like the sports_name_key index.
func (s *PostgresStore) Exists(ctx context.Context, key storage.UniqueKey) (bool, error) {
	if key.Field != ports.UniqueKeyName {
		return s.Table.Exists(ctx, key)
	}
	return found(s.FindByName(ctx, key.Value))
}

var memoryMapping = memory.Mapping[models.Sport, id.SportID]{
	Table: "sports",
	GetID: func(s *models.Sport) id.SportID { return s.ID },
	SetID: func(s *models.Sport, v id.SportID) { s.ID = v },
	Stamp: func(s *models.Sport, now time.Time, created bool) {
		if created {
			s.CreatedAt = now
		}
		s.UpdatedAt = now
	},
	Unique: map[string]func(*models.Sport) string{
		ports.UniqueKeyName: func(s *models.Sport) string { return models.NameKey(s.Name) },
	},
	Less: func(a, b *models.Sport) bool { return storage.NameLess(a.Name, b.Name) },
}

// MemoryStore is the in-memory sports table bound to one session.
type MemoryStore struct {
	*memory.Table[models.Sport, id.SportID]
}

var _ ports.SportRepository = (*MemoryStore)(nil)

func NewMemory(s uow.Session) (*MemoryStore, error) {
	t, err := memory.NewTable(s, memoryMapping)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{Table: t}, nil
}

func (s *MemoryStore) FindByName(ctx context.Context, name string) (*models.Sport, error) {
	key := models.NameKey(name)
	return s.FindOne(ctx, func(sp *models.Sport) bool { return models.NameKey(sp.Name) == key })
}

func (s *MemoryStore) Exists(ctx context.Context, key storage.UniqueKey) (bool, error) {
	if key.Field == ports.UniqueKeyName {
		key.Value = models.NameKey(key.Value)
	}
	return s.Table.Exists(ctx, key)
}

func found(_ *models.Sport, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// RegisterPostgres makes uow.Get[ports.SportRepository] return a postgres store.
func RegisterPostgres(reg *uow.Registry) {
	uow.Register(reg, func(s uow.Session) (ports.SportRepository, error) {
		repo, err := NewPostgres(s)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}

// RegisterMemory makes uow.Get[ports.SportRepository] return a memory store.
func RegisterMemory(reg *uow.Registry) {
	uow.Register(reg, func(s uow.Session) (ports.SportRepository, error) {
		repo, err := NewMemory(s)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}
