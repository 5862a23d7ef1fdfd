package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify/internal/platform/middleware"
	"sportify/pkg/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type panicHandler struct{}

func (panicHandler) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
}

func newTestRouter(ping pingFunc) http.Handler {
	return NewRouter(Config{
		Name:     "sportify",
		Version:  "test",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Storage:  ping,
		Handlers: []Registrar{panicHandler{}},
	})
}

func TestWelcome(t *testing.T) {
	rr := testutil.DoRequest(newTestRouter(nil), testutil.NewRequest(t, http.MethodGet, "/"))

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[welcomeResponse](t, rr)
	assert.Equal(t, "sportify", resp.Name)
	assert.Equal(t, "running", resp.Status)
	assert.Equal(t, APIPrefix, resp.API)
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestHealth(t *testing.T) {
	testutil.Given(t, "reachable storage", func(t *testing.T) {
		router := newTestRouter(func(context.Context) error { return nil })
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "healthy")
	})

	testutil.Given(t, "unreachable storage", func(t *testing.T) {
		router := newTestRouter(func(context.Context) error { return errors.New("dial tcp: refused") })
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		testutil.AssertJSONContains(t, rr, "status", "unhealthy")
	})
}

func TestPanicBecomesInternalError(t *testing.T) {
	req := testutil.NewRequest(t, http.MethodGet, APIPrefix+"/boom")
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rr := testutil.DoRequest(newTestRouter(nil), req)

	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	assert.Equal(t, "req-123", rr.Header().Get(middleware.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	rr := testutil.DoRequest(newTestRouter(nil), testutil.NewRequest(t, http.MethodGet, "/nope"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestCORSPreflight(t *testing.T) {
	req := testutil.NewRequest(t, http.MethodOptions, APIPrefix+"/boom")
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.DoRequest(newTestRouter(nil), req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
