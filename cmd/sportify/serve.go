package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	countryhandler "sportify/internal/country/handler"
	countrymetrics "sportify/internal/country/metrics"
	countryservice "sportify/internal/country/service"
	federationhandler "sportify/internal/federation/handler"
	federationservice "sportify/internal/federation/service"
	"sportify/internal/platform/httpserver"
	"sportify/internal/platform/metrics"
	sporthandler "sportify/internal/sport/handler"
	sportservice "sportify/internal/sport/service"
	"sportify/internal/storage/uow"
	httptransport "sportify/internal/transport/http"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, reg, closeStore, err := openBackend(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	m := metrics.New()
	mgr := uow.NewManager(store, reg,
		uow.WithLogger(log),
		uow.WithMetrics(m),
		uow.WithTimeout(cfg.Database.TxTimeout),
	)

	countries := countryservice.New(mgr,
		countryservice.WithLogger(log),
		countryservice.WithMetrics(countrymetrics.New()),
	)
	sports := sportservice.New(mgr, sportservice.WithLogger(log))
	federations := federationservice.New(mgr, federationservice.WithLogger(log))

	router := httptransport.NewRouter(httptransport.Config{
		Name:           "sportify",
		Version:        version,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Logger:         log,
		Metrics:        m,
		Storage:        store,
		Handlers: []httptransport.Registrar{
			countryhandler.New(countries, log),
			sporthandler.New(sports, log),
			federationhandler.New(federations, log),
		},
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting sportify",
			"addr", cfg.Server.Addr,
			"env", cfg.Server.Environment,
			"storage", cfg.Database.Backend,
			"version", version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

