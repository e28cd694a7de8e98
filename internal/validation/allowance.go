package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
)

var taxYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ValidateTaxYearLabel checks that a tax year label is of the form
// "YYYY-YYYY" with consecutive years.
func ValidateTaxYearLabel(label string) error {
	m := taxYearPattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return fmt.Errorf("tax year must be of the form YYYY-YYYY: %s", label)
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return fmt.Errorf("tax year must span consecutive years: %s", label)
	}
	return nil
}

// ValidateUpsertAllowance validates an allowance upsert request.
//
// Required fields:
//   - taxYear: Must be a valid tax year label
//   - cgtAllowance: Must be non-negative
//   - dividendAllowance: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpsertAllowance(req request.UpsertAllowanceRequest) error {
	errors := make(map[string]string)

	if err := ValidateTaxYearLabel(req.TaxYear); err != nil {
		errors["taxYear"] = err.Error()
	}
	if req.CGTAllowance < 0.0 {
		errors["cgtAllowance"] = "cgtAllowance cannot be negative"
	}
	if req.DividendAllowance < 0.0 {
		errors["dividendAllowance"] = "dividendAllowance cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
