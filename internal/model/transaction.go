package model

import "time"

// Transaction kinds produced by the ingestion layer. Every transaction carries
// exactly one of these; the engine decides per kind which matcher (if any)
// consumes it.
const (
	KindBuy              = "buy"
	KindSell             = "sell"
	KindDividend         = "dividend"
	KindCurrencyExchange = "currency_exchange"
	KindInterest         = "interest"
	KindCommission       = "commission"
	KindTaxWithholding   = "tax_withholding"
	KindSplit            = "split"
	KindMerger           = "merger"
	KindTransferIn       = "transfer_in"
	KindTransferOut      = "transfer_out"
	KindCashAdjustment   = "cash_adjustment"
)

// ValidKinds contains every recognised transaction kind.
var ValidKinds = map[string]bool{
	KindBuy: true, KindSell: true, KindDividend: true, KindCurrencyExchange: true,
	KindInterest: true, KindCommission: true, KindTaxWithholding: true,
	KindSplit: true, KindMerger: true, KindTransferIn: true,
	KindTransferOut: true, KindCashAdjustment: true,
}

// Transaction represents a single normalized investment transaction.
// It is created by the ingestion layer (API or CSV import) and never mutated
// afterwards. All optional fields have explicit zero-value defaults; there is
// no dynamic field probing anywhere downstream.
//
// RateToBase is the GBP value of one unit of the trade currency, so converting
// any trade-currency amount to GBP is always a multiplication. Commission and
// WithholdingTax are already expressed in GBP by the ingestion layer.
type Transaction struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Kind           string    `json:"kind"`
	SecurityID     string    `json:"securityId,omitempty"` // ISIN, empty for pure cash/currency rows
	Currency       string    `json:"currency"`             // trade currency, ISO 4217
	Quantity       float64   `json:"quantity"`             // signed: negative for disposals
	Price          float64   `json:"price"`                // per unit, in trade currency
	RateToBase     float64   `json:"rateToBase"`           // GBP per trade-currency unit
	Commission     float64   `json:"commission"`           // GBP
	WithholdingTax float64   `json:"withholdingTax"`       // GBP
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction enriched for API responses,
// including the UK tax year the transaction falls into.
type TransactionResponse struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Kind           string    `json:"kind"`
	SecurityID     string    `json:"securityId,omitempty"`
	Currency       string    `json:"currency"`
	Quantity       float64   `json:"quantity"`
	Price          float64   `json:"price"`
	RateToBase     float64   `json:"rateToBase"`
	Commission     float64   `json:"commission"`
	WithholdingTax float64   `json:"withholdingTax"`
	TaxYear        string    `json:"taxYear"`
}
