package store

import (
	"context"
	"database/sql"
	"time"

	"sportify/internal/federation/models"
	"sportify/internal/federation/ports"
	"sportify/internal/storage"
	"sportify/internal/storage/postgres"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
)

type federationRecord struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Level       string        `db:"level"`
	ParentID    sql.NullInt64 `db:"parent_federation_id"`
	CountryID   sql.NullInt64 `db:"country_id"`
	SportID     sql.NullInt64 `db:"sport_id"`
	FoundedDate sql.NullTime  `db:"founded_date"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func nullID[T ~int64](v *T) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func idPtr[T ~int64](v sql.NullInt64) *T {
	if !v.Valid {
		return nil
	}
	out := T(v.Int64)
	return &out
}

func toRecord(f *models.Federation) federationRecord {
	rec := federationRecord{
		ID:        int64(f.ID),
		Name:      f.Name,
		Level:     f.Level.String(),
		ParentID:  nullID(f.ParentID),
		CountryID: nullID(f.CountryID),
		SportID:   nullID(f.SportID),
	}
	if f.FoundedDate != nil {
		rec.FoundedDate = sql.NullTime{Time: *f.FoundedDate, Valid: true}
	}
	return rec
}

func toEntity(r federationRecord) (*models.Federation, error) {
	level, err := models.ParseLevel(r.Level)
	if err != nil {
		return nil, err
	}
	f := &models.Federation{
		ID:        id.FederationID(r.ID),
		Name:      r.Name,
		Level:     level,
		ParentID:  idPtr[id.FederationID](r.ParentID),
		CountryID: idPtr[id.CountryID](r.CountryID),
		SportID:   idPtr[id.SportID](r.SportID),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.FoundedDate.Valid {
		d := r.FoundedDate.Time.UTC()
		f.FoundedDate = &d
	}
	return f, nil
}

var postgresMapping = postgres.Mapping[models.Federation, id.FederationID, federationRecord]{
	Table:         "federations",
	Columns:       []string{"name", "level", "parent_federation_id", "country_id", "sport_id", "founded_date"},
	OrderBy:       storage.NameOrderSQL,
	UniqueColumns: []string{ports.UniqueKeyName},
	ToRecord:      toRecord,
	ToEntity:      toEntity,
}

// PostgresStore is the federations table bound to one session.
type PostgresStore struct {
	*postgres.Table[models.Federation, id.FederationID, federationRecord]
}

var _ ports.FederationRepository = (*PostgresStore)(nil)

func NewPostgres(s uow.Session) (*PostgresStore, error) {
	t, err := postgres.NewTable(s, postgresMapping)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{Table: t}, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Federation, error) {
	return s.Find(ctx, "SELECT * FROM federations WHERE name = $1", name)
}

func (s *PostgresStore) Children(ctx context.Context, parent id.FederationID) ([]*models.Federation, error) {
	return s.FindAll(ctx,
		"SELECT * FROM federations WHERE parent_federation_id = $1 ORDER BY "+storage.NameOrderSQL, int64(parent))
}

func (s *PostgresStore) ByCountry(ctx context.Context, countryID id.CountryID) ([]*models.Federation, error) {
	return s.FindAll(ctx, "SELECT * FROM federations WHERE country_id = $1 ORDER BY id", int64(countryID))
}

func (s *PostgresStore) BySport(ctx context.Context, sportID id.SportID) ([]*models.Federation, error) {
	return s.FindAll(ctx, "SELECT * FROM federations WHERE sport_id = $1 ORDER BY id", int64(sportID))
}

func (s *PostgresStore) Hierarchy(ctx context.Context) (models.Hierarchy, error) {
	linked, err := s.FindAll(ctx, "SELECT * FROM federations WHERE parent_federation_id IS NOT NULL")
	if err != nil {
		return nil, err
	}
	return models.NewHierarchy(linked), nil
}
