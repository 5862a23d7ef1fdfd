package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sportify/internal/country/models"
	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/httputil"
	"sportify/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the country use cases the handler depends on.
type Service interface {
	Create(ctx context.Context, in models.CountryInput) (*models.Country, error)
	CreateMany(ctx context.Context, inputs []models.CountryInput) ([]*models.Country, error)
	Get(ctx context.Context, countryID id.CountryID) (*models.Country, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Country, error)
	Update(ctx context.Context, countryID id.CountryID, upd models.CountryUpdate) (*models.Country, error)
	Delete(ctx context.Context, countryID id.CountryID) (*models.Country, error)
}

// Handler exposes the country endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a country handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the country routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/countries", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Post("/bulk", h.HandleBulkCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleList handles GET /countries?active_only=true.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	activeOnly := false
	if raw := r.URL.Query().Get("active_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "active_only must be a boolean"))
			return
		}
		activeOnly = v
	}

	countries, err := h.service.List(ctx, activeOnly)
	if err != nil {
		h.logFailure(ctx, "list countries failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(countries, fmt.Sprintf("%d countries found", len(countries))))
}

// HandleCreate handles POST /countries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateCountryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	country, err := h.service.Create(ctx, req.toInput())
	if err != nil {
		h.logFailure(ctx, "create country failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, CountryEnvelope{
		Message: fmt.Sprintf("country %s created", country),
		Country: toResponse(country),
	})
}

// HandleBulkCreate handles POST /countries/bulk. Either every country is
// created or none is.
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BulkCreateCountriesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	countries, err := h.service.CreateMany(ctx, req.toInputs())
	if err != nil {
		h.logFailure(ctx, "bulk create countries failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toListResponse(countries, fmt.Sprintf("%d countries created", len(countries))))
}

// HandleGet handles GET /countries/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countryID, err := id.ParseCountryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	country, err := h.service.Get(ctx, countryID)
	if err != nil {
		h.logFailure(ctx, "get country failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountryEnvelope{Country: toResponse(country)})
}

// HandleUpdate handles PUT and PATCH /countries/{id}. Both are partial.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	countryID, err := id.ParseCountryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateCountryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	country, err := h.service.Update(ctx, countryID, req.toUpdate())
	if err != nil {
		h.logFailure(ctx, "update country failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountryEnvelope{
		Message: fmt.Sprintf("country %s updated", country),
		Country: toResponse(country),
	})
}

// HandleDelete handles DELETE /countries/{id} and returns the deleted country.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countryID, err := id.ParseCountryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	country, err := h.service.Delete(ctx, countryID)
	if err != nil {
		h.logFailure(ctx, "delete country failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountryEnvelope{
		Message: fmt.Sprintf("country %s deleted", country),
		Country: toResponse(country),
	})
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
