package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAllowanceNotFound indicates that no allowance record exists for the requested tax year.
	ErrAllowanceNotFound = errors.New("allowance not found")

	// ErrSummaryNotFound indicates that no materialized summary exists for the requested tax year.
	ErrSummaryNotFound = errors.New("tax year summary not found")

	// ErrExchangeRateNotFound indicates no record for a specific currency and date combination.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency/date not found")

	// ErrRatesConfigNotFound indicates the exchange-rate provider has not been set up.
	ErrRatesConfigNotFound = errors.New("rates provider configuration not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidTransactionKind indicates an unrecognized transaction kind value.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTaxYearLabel indicates a tax year parameter that is not of the
	// form "YYYY-YYYY" with consecutive years.
	ErrInvalidTaxYearLabel = errors.New("invalid tax year label")

	// ErrDuplicateAllowance indicates an allowance already exists for the tax year.
	ErrDuplicateAllowance = errors.New("allowance already exists for tax year")

	// Validation errors for required fields
	ErrInvalidSecurityID = errors.New("security ID is required")
	ErrInvalidCurrency   = errors.New("currency parameter is required")
	ErrInvalidDate       = errors.New("date parameter is required")
	ErrInvalidRate       = errors.New("exchange rate must be positive")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
	ErrInvalidCSVHeaders            = errors.New("invalid CSV headers")

	// Report operation errors
	ErrFailedToCalculateReport    = errors.New("failed to calculate tax report")
	ErrFailedToRetrieveSummaries  = errors.New("failed to retrieve tax year summaries")
	ErrFailedToRetrieveAllowances = errors.New("failed to retrieve allowances")

	// Rates operation errors
	ErrFailedToRetrieveExchangeRate = errors.New("failed to retrieve exchange rate")
	ErrFailedToUpdateExchangeRate   = errors.New("failed to update exchange rate")
	ErrFailedToRefreshRates         = errors.New("failed to refresh exchange rates")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
