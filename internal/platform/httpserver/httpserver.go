package httpserver

import (
	"net/http"
	"time"

	"sportify/internal/platform/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// New builds the API server from the server section of the config.
// Zero timeouts fall back to the header timeout so a slow client can never
// hold a connection open indefinitely.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       orDefault(cfg.ReadTimeout, readHeaderTimeout),
		WriteTimeout:      orDefault(cfg.WriteTimeout, readHeaderTimeout),
		IdleTimeout:       idleTimeout,
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
