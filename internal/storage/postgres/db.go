package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the postgres driver

	"sportify/internal/storage/uow"
)

// Config holds connection pool settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB is the explicit connection factory handed to the unit of work manager.
// Callers own its lifetime and must Close it.
type DB struct {
	db *sqlx.DB
}

// Open connects and verifies the database is reachable.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("postgres: database url is required")
	}
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &DB{db: db}, nil
}

// New wraps an existing *sql.DB, e.g. one provided by a test container or sqlmock.
func New(db *sql.DB) *DB {
	return &DB{db: sqlx.NewDb(db, "postgres")}
}

// NewSession begins a transaction.
func (d *DB) NewSession(ctx context.Context) (uow.Session, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, mapError(err)
	}
	return &Session{tx: tx}, nil
}

// Ping checks connectivity for health probes.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// SQL exposes the underlying pool for migrations.
func (d *DB) SQL() *sql.DB {
	return d.db.DB
}

// Close releases the pool.
func (d *DB) Close() error {
	return d.db.Close()
}
