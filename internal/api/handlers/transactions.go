package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/response"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListTransactions handles GET requests to retrieve transactions, optionally
// filtered by kind, security and date range via query parameters.
//
// Endpoint: GET /api/transaction?kind=&securityId=&from=&to=
// Response: 200 OK with array of TransactionResponse
// Error: 400 Bad Request if a date filter is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := repository.TransactionFilter{
		Kind:       r.URL.Query().Get("kind"),
		SecurityID: r.URL.Query().Get("securityId"),
	}

	var err error
	if from := r.URL.Query().Get("from"); from != "" {
		filter.StartDate, err = time.Parse("2006-01-02", from)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.EndDate, err = time.Parse("2006-01-02", to)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
	}

	transactions, err := h.transactionService.ListTransactions(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
// Validates the request body and creates a transaction record in the database.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ImportTransactions handles POST requests to bulk-import transactions from a
// CSV body. The import is atomic: one bad row rejects the whole file.
//
// Endpoint: POST /api/transaction/import
// Request Body: CSV with headers date,kind,securityId,currency,quantity,price,rateToBase,commission,withholdingTax
// Response: 201 Created with {"imported": n}
// Error: 400 Bad Request if the CSV is malformed
// Error: 500 Internal Server Error if the insert fails
func (h *TransactionHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	imported, err := h.transactionService.ImportCSV(r.Body)
	if err != nil {
		if errors.Is(err, apperrors.ErrFailedToImportTransactions) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTransactions.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "invalid CSV", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, map[string]int{"imported": imported})
}
