package store

import (
	"context"
	"time"

	"sportify/internal/country/models"
	"sportify/internal/country/ports"
	"sportify/internal/storage"
	"sportify/internal/storage/postgres"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
)

type countryRecord struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ISOCode   string    `db:"iso_code"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toRecord(c *models.Country) countryRecord {
	return countryRecord{
		ID:      int64(c.ID),
		Name:    c.Name,
		ISOCode: c.ISOCode.String(),
		Active:  c.IsActive,
	}
}

// toEntity re-validates the stored ISO code so a bad row cannot leak out.
func toEntity(r countryRecord) (*models.Country, error) {
	code, err := models.ParseISOCode(r.ISOCode)
	if err != nil {
		return nil, err
	}
	return &models.Country{
		ID:        id.CountryID(r.ID),
		Name:      r.Name,
		ISOCode:   code,
		IsActive:  r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

var postgresMapping = postgres.Mapping[models.Country, id.CountryID, countryRecord]{
	Table:         "countries",
	Columns:       []string{"name", "iso_code", "active"},
	OrderBy:       storage.NameOrderSQL,
	UniqueColumns: []string{ports.UniqueKeyISOCode},
	ToRecord:      toRecord,
	ToEntity:      toEntity,
}

// PostgresStore is the countries table bound to one unit of work session.
type PostgresStore struct {
	*postgres.Table[models.Country, id.CountryID, countryRecord]
}

var _ ports.CountryRepository = (*PostgresStore)(nil)

// NewPostgres binds a country repository to a postgres session.
func NewPostgres(s uow.Session) (*PostgresStore, error) {
	t, err := postgres.NewTable(s, postgresMapping)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{Table: t}, nil
}

func (s *PostgresStore) FindByISOCode(ctx context.Context, code models.ISOCode) (*models.Country, error) {
	return s.Find(ctx, "SELECT * FROM countries WHERE iso_code = $1", code.String())
}

func (s *PostgresStore) ExistsByISOCode(ctx context.Context, code models.ISOCode) (bool, error) {
	return s.Exists(ctx, storage.Key(ports.UniqueKeyISOCode, code.String()))
}

func (s *PostgresStore) List(ctx context.Context, activeOnly bool) ([]*models.Country, error) {
	if !activeOnly {
		return s.GetAll(ctx)
	}
	return s.FindAll(ctx, "SELECT * FROM countries WHERE active ORDER BY "+storage.NameOrderSQL)
}
