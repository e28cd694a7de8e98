package model

// Allowance holds the statutory tax-free thresholds for one UK tax year.
// Values change year to year, so they live in the database and are passed into
// the aggregation as parameters, never hard-coded.
type Allowance struct {
	TaxYear           string  `json:"taxYear"` // "2024-2025"
	CGTAllowance      float64 `json:"cgtAllowance"`
	DividendAllowance float64 `json:"dividendAllowance"`
}

// TaxYearSummary is the combined liability estimate for one UK tax year.
// It is built once per calculation run and never mutated afterwards.
//
// Taxable figures are floored at zero. Currency losses net against currency
// gains within the category only; a negative net never offsets capital gains
// or dividends.
type TaxYearSummary struct {
	TaxYear string `json:"taxYear"`

	TotalCapitalGains   float64 `json:"totalCapitalGains"`
	TaxableCapitalGains float64 `json:"taxableCapitalGains"`
	CGTAllowanceUsed    float64 `json:"cgtAllowanceUsed"`

	TotalDividendNet      float64 `json:"totalDividendNet"`
	TaxableDividends      float64 `json:"taxableDividends"`
	DividendAllowanceUsed float64 `json:"dividendAllowanceUsed"`

	NetCurrencyGainLoss float64 `json:"netCurrencyGainLoss"`
	TaxableCurrencyGain float64 `json:"taxableCurrencyGain"`

	// Reported alongside the taxable categories but excluded from
	// TotalTaxableIncome: the savings allowance is not modelled.
	TotalInterest float64 `json:"totalInterest"`
	TotalFees     float64 `json:"totalFees"`

	TotalTaxableIncome float64 `json:"totalTaxableIncome"`
}

// SkippedTransaction records a transaction the engine excluded from the
// calculation, with the reason, so the reporting layer can surface it.
type SkippedTransaction struct {
	TransactionID string `json:"transactionId"`
	Kind          string `json:"kind"`
	Reason        string `json:"reason"`
}

// Warning is a non-fatal data-quality finding raised during matching, such as
// a sell exceeding the pooled quantity. Warnings ride along with the results
// instead of being swallowed.
type Warning struct {
	TransactionID string `json:"transactionId"`
	SecurityID    string `json:"securityId,omitempty"`
	Message       string `json:"message"`
}

// TaxReport is the full payload handed to the reporting layer: the per-year
// summary plus the intermediate per-category collections and the skip/warning
// bookkeeping for user trust.
type TaxReport struct {
	Summary       TaxYearSummary       `json:"summary"`
	Disposals     []DisposalGain       `json:"disposals"`
	CurrencyGains []CurrencyGainLoss   `json:"currencyGains"`
	Dividends     []DividendIncome     `json:"dividends"`
	Interest      []InterestIncome     `json:"interest"`
	Skipped       []SkippedTransaction `json:"skipped"`
	Warnings      []Warning            `json:"warnings"`
}
