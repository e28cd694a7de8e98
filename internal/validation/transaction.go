package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// securityKinds are the kinds that must carry a security identifier.
var securityKinds = map[string]bool{
	model.KindBuy: true, model.KindSell: true, model.KindSplit: true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - kind: Must be a recognized transaction kind
//   - currency: Must be a 3-letter ISO 4217 code
//   - rateToBase: Must be positive
//   - securityId: Required for buy, sell and split kinds
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !model.ValidKinds[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if err := validateCurrency(req.Currency); err != nil {
		errors["currency"] = err.Error()
	}

	if req.RateToBase <= 0.0 {
		errors["rateToBase"] = "rateToBase must be positive"
	}

	if req.Price < 0.0 {
		errors["price"] = "price cannot be negative"
	}

	if securityKinds[req.Kind] && strings.TrimSpace(req.SecurityID) == "" {
		errors["securityId"] = fmt.Sprintf("securityId is required for kind %s", req.Kind)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Kind != nil {
		if strings.TrimSpace(*req.Kind) == "" {
			errors["kind"] = "kind is required"
		} else if !model.ValidKinds[*req.Kind] {
			errors["kind"] = fmt.Sprintf("invalid kind: %s", *req.Kind)
		}
	}
	if req.Currency != nil {
		if err := validateCurrency(*req.Currency); err != nil {
			errors["currency"] = err.Error()
		}
	}
	if req.RateToBase != nil && *req.RateToBase <= 0.0 {
		errors["rateToBase"] = "rateToBase must be positive"
	}
	if req.Price != nil && *req.Price < 0.0 {
		errors["price"] = "price cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateCurrency(currency string) error {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(currency) != 3 || currency != strings.ToUpper(currency) {
		return fmt.Errorf("currency must be a 3-letter ISO 4217 code: %s", currency)
	}
	return nil
}
