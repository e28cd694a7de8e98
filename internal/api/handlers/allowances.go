package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/response"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/validation"
)

// AllowanceHandler handles HTTP requests for allowance configuration endpoints.
type AllowanceHandler struct {
	allowanceService *service.AllowanceService
}

// NewAllowanceHandler creates a new AllowanceHandler with the provided service dependency.
func NewAllowanceHandler(allowanceService *service.AllowanceService) *AllowanceHandler {
	return &AllowanceHandler{
		allowanceService: allowanceService,
	}
}

// ListAllowances handles GET requests to retrieve every configured allowance.
//
// Endpoint: GET /api/allowance
// Response: 200 OK with array of Allowance
// Error: 500 Internal Server Error if retrieval fails
func (h *AllowanceHandler) ListAllowances(w http.ResponseWriter, _ *http.Request) {
	allowances, err := h.allowanceService.ListAllowances()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAllowances.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allowances)
}

// GetAllowance handles GET requests to retrieve one tax year's allowance.
//
// Endpoint: GET /api/allowance/{taxYear}
// Response: 200 OK with Allowance
// Error: 400 Bad Request if the tax year label is invalid (validated by middleware)
// Error: 404 Not Found if no allowance is configured for the year
// Error: 500 Internal Server Error if retrieval fails
func (h *AllowanceHandler) GetAllowance(w http.ResponseWriter, r *http.Request) {
	taxYear := chi.URLParam(r, "taxYear")

	allowance, err := h.allowanceService.GetAllowance(taxYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrAllowanceNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAllowanceNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAllowances.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allowance)
}

// UpsertAllowance handles PUT requests to create or replace a tax year's allowance.
//
// Endpoint: PUT /api/allowance
// Request Body: UpsertAllowanceRequest (taxYear, cgtAllowance, dividendAllowance)
// Response: 200 OK with Allowance
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if persistence fails
func (h *AllowanceHandler) UpsertAllowance(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertAllowanceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertAllowance(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	allowance, err := h.allowanceService.UpsertAllowance(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save allowance", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allowance)
}

// DeleteAllowance handles DELETE requests to remove a tax year's allowance.
//
// Endpoint: DELETE /api/allowance/{taxYear}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the tax year label is invalid (validated by middleware)
// Error: 404 Not Found if no allowance is configured for the year
// Error: 500 Internal Server Error if deletion fails
func (h *AllowanceHandler) DeleteAllowance(w http.ResponseWriter, r *http.Request) {
	taxYear := chi.URLParam(r, "taxYear")

	err := h.allowanceService.DeleteAllowance(taxYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrAllowanceNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAllowanceNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete allowance", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
