package handler_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	countrystore "sportify/internal/country/store"
	"sportify/internal/federation/handler"
	"sportify/internal/federation/service"
	"sportify/internal/federation/store"
	sportstore "sportify/internal/sport/store"
	"sportify/internal/storage/memory"
	"sportify/internal/storage/uow"
	"sportify/pkg/requestcontext"
	"sportify/pkg/testutil"
)

var fixedNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newFederationAPI(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := uow.NewRegistry()
	countrystore.RegisterMemory(reg)
	sportstore.RegisterMemory(reg)
	store.RegisterMemory(reg)
	svc := service.New(uow.NewManager(memory.NewDB(), reg), service.WithLogger(logger))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), fixedNow)))
		})
	})
	handler.New(svc, logger).Register(r)
	return r
}

func post(t *testing.T, api http.Handler, body map[string]any) handler.FederationResponse {
	t.Helper()
	rr := testutil.DoRequest(api, testutil.NewJSONRequest(t, http.MethodPost, "/federations", body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return *testutil.UnmarshalResponse[handler.FederationResponse](t, rr)
}

func TestFederationTree(t *testing.T) {
	api := newFederationAPI(t)

	fifa := post(t, api, map[string]any{"name": "FIFA", "level": "World", "founded_date": "1904-05-21"})
	require.NotNil(t, fifa.FoundedDate)
	assert.Equal(t, "1904-05-21", *fifa.FoundedDate)
	assert.Equal(t, "world", fifa.Level)
	assert.Nil(t, fifa.ParentFederationID)

	conmebol := post(t, api, map[string]any{"name": "CONMEBOL", "level": "continental", "parent_federation_id": fifa.ID})
	post(t, api, map[string]any{"name": "UEFA", "level": "continental", "parent_federation_id": fifa.ID})

	testutil.Given(t, "a three level tree", func(t *testing.T) {
		testutil.When(t, "children of the root are listed", func(t *testing.T) {
			rr := testutil.DoRequest(api, testutil.NewRequest(t, http.MethodGet, fmt.Sprintf("/federations/%d/children", fifa.ID)))
			testutil.Then(t, "both confederations are returned", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				list := testutil.UnmarshalResponse[handler.FederationListResponse](t, rr)
				assert.Equal(t, 2, list.Total)
			})
		})

		testutil.When(t, "the root is moved under its child", func(t *testing.T) {
			rr := testutil.DoRequest(api, testutil.NewJSONRequest(t, http.MethodPatch,
				fmt.Sprintf("/federations/%d", fifa.ID), map[string]any{"parent_federation_id": conmebol.ID}))
			testutil.Then(t, "the cycle is rejected", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
			})
		})
	})
}

func TestFederationValidation(t *testing.T) {
	api := newFederationAPI(t)

	for _, tc := range []struct {
		name string
		body map[string]any
	}{
		{"unknown level", map[string]any{"name": "FIFA", "level": "galactic"}},
		{"bad date", map[string]any{"name": "FIFA", "level": "world", "founded_date": "21/05/1904"}},
		{"future date", map[string]any{"name": "FIFA", "level": "world", "founded_date": "2030-01-01"}},
		{"missing country", map[string]any{"name": "CBF", "level": "national", "country_id": 5}},
		{"non positive parent", map[string]any{"name": "CBF", "level": "national", "parent_federation_id": 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.DoRequest(api, testutil.NewJSONRequest(t, http.MethodPost, "/federations", tc.body))
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
		})
	}

	rr := testutil.DoRequest(api, testutil.NewJSONRequest(t, http.MethodPatch, "/federations/1",
		map[string]any{"parent_federation_id": 2, "detach_parent": true}))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
}

func TestFederationDeleteDetachesChildren(t *testing.T) {
	api := newFederationAPI(t)
	fifa := post(t, api, map[string]any{"name": "FIFA", "level": "world"})
	uefa := post(t, api, map[string]any{"name": "UEFA", "level": "continental", "parent_federation_id": fifa.ID})

	rr := testutil.DoRequest(api, testutil.NewRequest(t, http.MethodDelete, fmt.Sprintf("/federations/%d", fifa.ID)))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(api, testutil.NewRequest(t, http.MethodGet, fmt.Sprintf("/federations/%d", uefa.ID)))
	testutil.AssertStatusOK(t, rr)
	got := testutil.UnmarshalResponse[handler.FederationResponse](t, rr)
	assert.Nil(t, got.ParentFederationID)

	rr = testutil.DoRequest(api, testutil.NewRequest(t, http.MethodGet, fmt.Sprintf("/federations/%d/children", fifa.ID)))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

