package sos

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sosAlert/internal/domain"
	"sosAlert/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type SOSHandler interface {
	Trigger(ctx context.Context, req domain.CreateSOSRequest) (uuid.UUID, error)
	AppendLiveLocation(ctx context.Context, req domain.LiveLocationRequest) error
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
}

type Handler struct {
	logger     *slog.Logger
	SOSHandler SOSHandler
}

func NewHandler(logger *slog.Logger, sosHandler SOSHandler) *Handler {
	return &Handler{
		logger:     logger,
		SOSHandler: sosHandler,
	}
}

// SOSCreate handles POST /api/sos.
func (h *Handler) SOSCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CreateSOSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("sos create: invalid json", slog.Any("error", err))
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id, err := h.SOSHandler.Trigger(r.Context(), req)
	if err != nil {
		l.Error("sos create failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.CreateSOSResponse{OK: true, IncidentID: id.String()})
}

// SOSLive handles POST /api/sos/live.
func (h *Handler) SOSLive(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.LiveLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("sos live: invalid json", slog.Any("error", err))
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.SOSHandler.AppendLiveLocation(r.Context(), req); err != nil {
		l.Error("sos live failed", slog.String("incident_id", req.IncidentID), slog.Any("error", err))
		// store failures, unknown incidents included, are 500 here
		if errors.Is(err, e.ErrMissingFields) || errors.Is(err, e.ErrInvalidCoordinates) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}

// SOSGet handles GET /api/sos/{id}.
func (h *Handler) SOSGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inc, err := h.SOSHandler.GetIncident(r.Context(), id)
	if err != nil {
		h.log(r).Warn("sos get failed", slog.String("incident_id", id), slog.Any("error", err))
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.IncidentResponse{OK: true, Incident: inc})
}
