package http

import (
	"context"
	"net/http"

	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/AndrewN04/url-shortner/pkg/httputils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// Pinger is satisfied by *db.Postgres.
type Pinger interface {
	Healthy(ctx context.Context) error
}

// HealthHandler handles health and metrics endpoints
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports whether the database answers a trivial query.
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Healthy(r.Context()); err != nil {
		logger.Warn("health check failed", zap.Error(err))
		httputils.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
		return
	}
	httputils.RespondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// Metrics returns Prometheus metrics
func (h *HealthHandler) Metrics() http.Handler {
	return promhttp.Handler()
}
