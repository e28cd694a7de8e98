package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/response"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/engine"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
)

// TaxReportHandler handles HTTP requests for tax report endpoints.
type TaxReportHandler struct {
	taxReportService *service.TaxReportService
}

// NewTaxReportHandler creates a new TaxReportHandler with the provided service dependency.
func NewTaxReportHandler(taxReportService *service.TaxReportService) *TaxReportHandler {
	return &TaxReportHandler{
		taxReportService: taxReportService,
	}
}

// ListSummaries handles GET requests for the materialized per-year summaries.
//
// Endpoint: GET /api/report/summary
// Response: 200 OK with array of TaxYearSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *TaxReportHandler) ListSummaries(w http.ResponseWriter, _ *http.Request) {
	summaries, err := h.taxReportService.ListSummaries()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummaries.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// GetReport handles GET requests for one tax year's full report. The report
// is calculated fresh from the transaction history on every request, so it
// always reflects the latest edits.
//
// Endpoint: GET /api/report/{taxYear}
// Response: 200 OK with TaxReport
// Error: 400 Bad Request if the tax year label is invalid (validated by middleware)
// Error: 422 Unprocessable Entity if a tax year in the history has no allowance configured
// Error: 500 Internal Server Error if the calculation fails
func (h *TaxReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	taxYear := chi.URLParam(r, "taxYear")

	report, err := h.taxReportService.GetReport(r.Context(), taxYear)
	if err != nil {
		if errors.Is(err, engine.ErrMissingAllowance) {
			response.RespondError(w, http.StatusUnprocessableEntity, engine.ErrMissingAllowance.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCalculateReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// RebuildSummaries handles POST requests to recalculate and persist the
// per-year summaries, the same job the nightly scheduler runs.
//
// Endpoint: POST /api/report/rebuild
// Response: 200 OK with the rebuilt array of TaxYearSummary
// Error: 422 Unprocessable Entity if a tax year in the history has no allowance configured
// Error: 500 Internal Server Error if the calculation or persistence fails
func (h *TaxReportHandler) RebuildSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.taxReportService.RebuildSummaries(r.Context())
	if err != nil {
		if errors.Is(err, engine.ErrMissingAllowance) {
			response.RespondError(w, http.StatusUnprocessableEntity, engine.ErrMissingAllowance.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCalculateReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}
