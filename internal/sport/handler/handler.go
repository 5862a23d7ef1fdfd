// Package handler exposes the sport endpoints.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"sportify/internal/sport/models"
	id "sportify/pkg/domain"
	"sportify/pkg/platform/httputil"
	"sportify/pkg/platform/validation"
	"sportify/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, in models.SportInput) (*models.Sport, error)
	Get(ctx context.Context, sportID id.SportID) (*models.Sport, error)
	List(ctx context.Context) ([]*models.Sport, error)
	Update(ctx context.Context, sportID id.SportID, patch models.SportPatch) (*models.Sport, error)
	Delete(ctx context.Context, sportID id.SportID) (*models.Sport, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/sports", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

type CreateSportRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	TeamBased *bool  `json:"team_based"`
}

func (r *CreateSportRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *CreateSportRequest) Validate() error { return validation.Struct(r) }

type UpdateSportRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	TeamBased *bool   `json:"team_based"`
}

func (r *UpdateSportRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

func (r *UpdateSportRequest) Validate() error { return validation.Struct(r) }

type SportResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TeamBased bool      `json:"team_based"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SportListResponse struct {
	Sports  []SportResponse `json:"sports"`
	Total   int             `json:"total"`
	Message string          `json:"message"`
}

func toResponse(s *models.Sport) SportResponse {
	return SportResponse{
		ID:        int64(s.ID),
		Name:      s.Name,
		TeamBased: s.TeamBased,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sports, err := h.service.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list sports failed", err)
		return
	}
	out := make([]SportResponse, 0, len(sports))
	for _, s := range sports {
		out = append(out, toResponse(s))
	}
	httputil.WriteJSON(w, http.StatusOK, SportListResponse{
		Sports:  out,
		Total:   len(out),
		Message: fmt.Sprintf("%d sports found", len(out)),
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateSportRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	sport, err := h.service.Create(ctx, models.SportInput{Name: req.Name, TeamBased: req.TeamBased})
	if err != nil {
		h.fail(ctx, w, "create sport failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(sport))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sportID, err := id.ParseSportID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sport, err := h.service.Get(ctx, sportID)
	if err != nil {
		h.fail(ctx, w, "get sport failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(sport))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sportID, err := id.ParseSportID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateSportRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	sport, err := h.service.Update(ctx, sportID, models.SportPatch{Name: req.Name, TeamBased: req.TeamBased})
	if err != nil {
		h.fail(ctx, w, "update sport failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(sport))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sportID, err := id.ParseSportID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sport, err := h.service.Delete(ctx, sportID)
	if err != nil {
		h.fail(ctx, w, "delete sport failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(sport))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	httputil.WriteError(w, err)
}
