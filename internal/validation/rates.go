package validation

import (
	"strings"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
)

// ValidateSetExchangeRate validates a manual exchange-rate upsert request.
func ValidateSetExchangeRate(req request.SetExchangeRateRequest) error {
	errors := make(map[string]string)

	if err := validateCurrency(req.Currency); err != nil {
		errors["currency"] = err.Error()
	}
	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}
	if req.Rate <= 0.0 {
		errors["rate"] = "rate must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
