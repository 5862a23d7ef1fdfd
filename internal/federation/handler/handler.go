// Package handler exposes the federation endpoints.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sportify/internal/federation/models"
	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/httputil"
	"sportify/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, in models.FederationInput) (*models.Federation, error)
	Get(ctx context.Context, fedID id.FederationID) (*models.Federation, error)
	List(ctx context.Context) ([]*models.Federation, error)
	Children(ctx context.Context, fedID id.FederationID) ([]*models.Federation, error)
	Update(ctx context.Context, fedID id.FederationID, patch models.FederationPatch) (*models.Federation, error)
	Delete(ctx context.Context, fedID id.FederationID) (*models.Federation, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/federations", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Get("/{id}/children", h.HandleChildren)
		r.Put("/{id}", h.HandleUpdate)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feds, err := h.service.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list federations failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toList(feds, fmt.Sprintf("%d federations found", len(feds))))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateFederationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	fed, err := h.service.Create(ctx, req.toInput())
	if err != nil {
		h.fail(ctx, w, "create federation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(fed))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fedID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	fed, err := h.service.Get(ctx, fedID)
	if err != nil {
		h.fail(ctx, w, "get federation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(fed))
}

// HandleChildren handles GET /federations/{id}/children.
func (h *Handler) HandleChildren(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fedID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	children, err := h.service.Children(ctx, fedID)
	if err != nil {
		h.fail(ctx, w, "list federation children failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toList(children, fmt.Sprintf("%d child federations found", len(children))))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fedID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateFederationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	fed, err := h.service.Update(ctx, fedID, req.toPatch())
	if err != nil {
		h.fail(ctx, w, "update federation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(fed))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fedID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	fed, err := h.service.Delete(ctx, fedID)
	if err != nil {
		h.fail(ctx, w, "delete federation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(fed))
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (id.FederationID, bool) {
	fedID, err := id.ParseFederationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return fedID, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	httputil.WriteError(w, err)
}
