// Package httptransport assembles the HTTP surface: platform middleware,
// operational endpoints and the versioned API.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sportify/internal/platform/metrics"
	"sportify/internal/platform/middleware"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/httputil"
	"sportify/pkg/platform/middleware/metadata"
	"sportify/pkg/platform/middleware/requesttime"
)

const (
	APIPrefix     = "/api/v1"
	healthTimeout = 2 * time.Second
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	Register(r chi.Router)
}

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries what the router needs. Metrics may be nil.
type Config struct {
	Name           string
	Version        string
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Storage        Pinger
	Handlers       []Registrar
}

type welcomeResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
	API     string `json:"api"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// NewRouter wires middleware, the operational endpoints and every handler
// under APIPrefix.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, welcomeResponse{
			Name:    cfg.Name,
			Version: cfg.Version,
			Status:  "running",
			API:     APIPrefix,
		})
	})
	r.Get("/health", healthHandler(cfg.Storage, cfg.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:            "method_not_allowed",
			ErrorDescription: "method not allowed on this route",
		})
	})

	r.Route(APIPrefix, func(api chi.Router) {
		for _, h := range cfg.Handlers {
			h.Register(api)
		}
	})
	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

func healthHandler(storage Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := storage.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "health check failed", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Storage: "unreachable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Storage: "ok"})
	}
}
