package handlers

import (
	"net/http"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/response"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
)

// SystemHandler handles HTTP requests for system endpoints.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler with the provided service dependency.
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health handles GET requests for the health check endpoint.
//
// Endpoint: GET /api/system/health
// Response: 200 OK when the database is reachable
// Error: 503 Service Unavailable when the database check fails
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	status := model.HealthStatus{Status: "ok", Database: "ok"}

	if err := h.systemService.CheckHealth(); err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
		response.RespondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

// Version handles GET requests for the version endpoint.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.systemService.VersionInfo())
}
