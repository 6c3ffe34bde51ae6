package api

import (
	"net/http"

	"testsmith/internal/application/dto"
	"testsmith/internal/port/inbound"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	healthService inbound.HealthService
	errorHandler  ErrorHandler
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService inbound.HealthService, errorHandler ErrorHandler) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		errorHandler:  errorHandler,
	}
}

// GetHealth handles GET /health.
//
//	@Summary		Service health check
//	@Description	Returns the service health including the status of its dependencies. Degraded health is reported with a 503 status.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dto.HealthResponse	"Service is healthy"
//	@Failure		503	{object}	dto.HealthResponse	"Service is degraded or unhealthy"
//	@Router			/health [get]
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response, err := h.healthService.GetHealth(r.Context())
	if err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if response.Status != string(dto.HealthStatusHealthy) {
		status = http.StatusServiceUnavailable
	}
	writeJSONResponse(w, status, response)
}
