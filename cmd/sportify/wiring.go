package main

import (
	"context"
	"fmt"
	"log/slog"

	countrystore "sportify/internal/country/store"
	federationstore "sportify/internal/federation/store"
	"sportify/internal/platform/config"
	sportstore "sportify/internal/sport/store"
	"sportify/internal/storage/memory"
	"sportify/internal/storage/postgres"
	"sportify/internal/storage/uow"
)

// backend is a storage engine the unit of work manager can open sessions on.
type backend interface {
	uow.SessionFactory
	Ping(ctx context.Context) error
}

// openBackend connects the configured storage and registers every repository
// for it. The returned close func releases the connection pool.
func openBackend(ctx context.Context, cfg config.Database, log *slog.Logger) (backend, *uow.Registry, func() error, error) {
	reg := uow.NewRegistry()

	switch cfg.Backend {
	case config.BackendMemory:
		countrystore.RegisterMemory(reg)
		sportstore.RegisterMemory(reg)
		federationstore.RegisterMemory(reg)
		log.WarnContext(ctx, "using in-memory storage; data is lost on exit")
		return memory.NewDB(), reg, func() error { return nil }, nil

	case config.BackendPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.MigrateOnStart {
			if err := migrateUp(db); err != nil {
				_ = db.Close()
				return nil, nil, nil, err
			}
			log.InfoContext(ctx, "migrations applied")
		}
		countrystore.RegisterPostgres(reg)
		sportstore.RegisterPostgres(reg)
		federationstore.RegisterPostgres(reg)
		return db, reg, db.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openPostgres(ctx context.Context, cfg config.Database) (*postgres.DB, error) {
	return postgres.Open(ctx, postgres.Config{
		URL:             cfg.URL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
}

func migrateUp(db *postgres.DB) error {
	m, err := postgres.NewMigrator(db.SQL())
	if err != nil {
		return err
	}
	return m.Up()
}
