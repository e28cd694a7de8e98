package engine

import "errors"

// Recoverable per-transaction errors. These are logged, the offending
// transaction is skipped, and the calculation continues.
var (
	// ErrInsufficientCurrency indicates a currency disposal larger than the
	// total amount ever purchased for that currency.
	ErrInsufficientCurrency = errors.New("currency disposal exceeds purchased amount")
)

// Configuration errors. These are fatal for the whole calculation: no partial
// summary can be produced, the error surfaces to the caller.
var (
	// ErrInvalidTaxYear indicates a tax year label that is not "YYYY-YYYY"
	// with consecutive years.
	ErrInvalidTaxYear = errors.New("invalid tax year")

	// ErrMissingAllowance indicates no allowance constants were supplied for
	// a tax year present in the transaction history.
	ErrMissingAllowance = errors.New("no allowance configured for tax year")
)
