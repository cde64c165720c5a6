package system

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"sosAlert/internal/domain"
)

type Handler struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, now: time.Now}
}

// SystemHealth reports liveness with the server clock in epoch milliseconds.
func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(domain.HealthResponse{OK: true, Time: h.now().UnixMilli()}); err != nil {
		h.logger.Error("health encode failed", slog.Any("error", err))
	}
}
