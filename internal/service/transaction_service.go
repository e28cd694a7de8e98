package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/engine"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// ListTransactions retrieves transactions matching the filter, enriched with
// the UK tax year each one falls into.
func (s *TransactionService) ListTransactions(filter repository.TransactionFilter) ([]model.TransactionResponse, error) {
	transactions, err := s.transactionRepo.ListTransactions(filter)
	if err != nil {
		return nil, err
	}

	responses := make([]model.TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = toResponse(t)
	}
	return responses, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.TransactionResponse, error) {
	t, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	if t.ID == "" {
		return model.TransactionResponse{}, apperrors.ErrTransactionNotFound
	}
	return toResponse(t), nil
}

// CreateTransaction creates a new transaction from a validated request.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (*model.Transaction, error) {
	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := model.Transaction{
		ID:             uuid.New().String(),
		Date:           transactionDate,
		Kind:           req.Kind,
		SecurityID:     req.SecurityID,
		Currency:       req.Currency,
		Quantity:       req.Quantity,
		Price:          req.Price,
		RateToBase:     req.RateToBase,
		Commission:     req.Commission,
		WithholdingTax: req.WithholdingTax,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.transactionRepo.CreateTransaction(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &transaction, nil
}

// UpdateTransaction applies the provided fields to an existing transaction.
func (s *TransactionService) UpdateTransaction(transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	existing, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if existing.ID == "" {
		return nil, apperrors.ErrTransactionNotFound
	}

	if req.Date != nil {
		existing.Date, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
	}
	if req.Kind != nil {
		existing.Kind = *req.Kind
	}
	if req.SecurityID != nil {
		existing.SecurityID = *req.SecurityID
	}
	if req.Currency != nil {
		existing.Currency = *req.Currency
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.RateToBase != nil {
		existing.RateToBase = *req.RateToBase
	}
	if req.Commission != nil {
		existing.Commission = *req.Commission
	}
	if req.WithholdingTax != nil {
		existing.WithholdingTax = *req.WithholdingTax
	}

	affected, err := s.transactionRepo.UpdateTransaction(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	return &existing, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	affected, err := s.transactionRepo.DeleteTransaction(transactionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// csvHeaders is the required header row for transaction imports, in order.
var csvHeaders = []string{
	"date", "kind", "securityId", "currency", "quantity",
	"price", "rateToBase", "commission", "withholdingTax",
}

// ImportCSV parses and stores transactions from a CSV stream. The whole file
// is parsed before anything is written, and the insert is atomic, so a bad
// row rejects the entire import.
//
// Returns the number of transactions imported.
func (s *TransactionService) ImportCSV(reader io.Reader) (int, error) {
	r := csv.NewReader(reader)

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}
	if len(header) != len(csvHeaders) {
		return 0, fmt.Errorf("%w: expected %d columns, got %d", apperrors.ErrInvalidCSVHeaders, len(csvHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != csvHeaders[i] {
			return 0, fmt.Errorf("%w: column %d should be %q", apperrors.ErrInvalidCSVHeaders, i+1, csvHeaders[i])
		}
	}

	var transactions []model.Transaction
	now := time.Now().UTC()
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		t, err := parseCSVRecord(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		t.ID = uuid.New().String()
		t.CreatedAt = now
		transactions = append(transactions, t)
	}

	if err := s.transactionRepo.CreateTransactions(transactions); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFailedToImportTransactions, err)
	}

	return len(transactions), nil
}

func parseCSVRecord(record []string) (model.Transaction, error) {
	var t model.Transaction
	var err error

	t.Date, err = time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return t, fmt.Errorf("invalid date: %w", err)
	}
	t.Kind = strings.TrimSpace(record[1])
	if !model.ValidKinds[t.Kind] {
		return t, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransactionKind, t.Kind)
	}
	t.SecurityID = strings.TrimSpace(record[2])
	t.Currency = strings.ToUpper(strings.TrimSpace(record[3]))

	floats := []struct {
		field *float64
		name  string
	}{
		{&t.Quantity, "quantity"},
		{&t.Price, "price"},
		{&t.RateToBase, "rateToBase"},
		{&t.Commission, "commission"},
		{&t.WithholdingTax, "withholdingTax"},
	}
	for i, f := range floats {
		raw := strings.TrimSpace(record[4+i])
		if raw == "" {
			continue
		}
		*f.field, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return t, fmt.Errorf("invalid %s: %w", f.name, err)
		}
	}

	return t, nil
}

func toResponse(t model.Transaction) model.TransactionResponse {
	return model.TransactionResponse{
		ID:             t.ID,
		Date:           t.Date,
		Kind:           t.Kind,
		SecurityID:     t.SecurityID,
		Currency:       t.Currency,
		Quantity:       t.Quantity,
		Price:          t.Price,
		RateToBase:     t.RateToBase,
		Commission:     t.Commission,
		WithholdingTax: t.WithholdingTax,
		TaxYear:        engine.TaxYearOf(t.Date),
	}
}
