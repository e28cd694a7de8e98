package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/response"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/validation"
)

// RatesHandler handles HTTP requests for exchange rate endpoints.
type RatesHandler struct {
	ratesService *service.RatesService
}

// NewRatesHandler creates a new RatesHandler with the provided service dependency.
func NewRatesHandler(ratesService *service.RatesService) *RatesHandler {
	return &RatesHandler{
		ratesService: ratesService,
	}
}

// GetRate handles GET requests to retrieve the stored GBP rate for a currency
// on a date, falling back to the most recent earlier rate.
//
// Endpoint: GET /api/rates?currency=EUR&date=2024-01-10
// Response: 200 OK with ExchangeRate
// Error: 400 Bad Request if currency or date is missing or malformed
// Error: 404 Not Found if no usable rate exists
// Error: 500 Internal Server Error if retrieval fails
func (h *RatesHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCurrency.Error(), "")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), "")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date format", err.Error())
		return
	}

	rate, err := h.ratesService.GetRate(currency, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExchangeRateNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveExchangeRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

// SetRate handles PUT requests to store a manually supplied exchange rate.
//
// Endpoint: PUT /api/rates
// Request Body: SetExchangeRateRequest (currency, date, rate)
// Response: 200 OK with ExchangeRate
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if persistence fails
func (h *RatesHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetExchangeRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetExchangeRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	rate := model.ExchangeRate{
		Currency: req.Currency,
		Date:     date,
		Rate:     req.Rate,
	}
	if err := h.ratesService.SetRate(rate); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateExchangeRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

// RefreshRates handles POST requests to fetch the latest provider rates for
// every currency in the transaction history, the same job the scheduler runs.
//
// Endpoint: POST /api/rates/refresh
// Response: 200 OK with {"refreshed": n}
// Error: 500 Internal Server Error if the provider call or persistence fails
func (h *RatesHandler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.ratesService.RefreshRates(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"refreshed": refreshed})
}

// SetProviderToken handles PUT requests to store the provider API token.
// The token is encrypted at rest; it is never returned by any endpoint.
//
// Endpoint: PUT /api/rates/token
// Request Body: SetProviderTokenRequest (token)
// Response: 204 No Content
// Error: 400 Bad Request if the request body is invalid or the token is empty
// Error: 500 Internal Server Error if encryption or persistence fails
func (h *RatesHandler) SetProviderToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetProviderTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Token == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", "")
		return
	}

	if err := h.ratesService.SetProviderToken(req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store provider token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
