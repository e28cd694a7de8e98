package model

import "time"

// DisposalGain is the realized result of one SELL transaction matched against
// the Section 104 pool for its security. Amounts are GBP.
type DisposalGain struct {
	ID            string    `json:"id,omitempty"`
	SecurityID    string    `json:"securityId"`
	DisposalDate  time.Time `json:"disposalDate"`
	Quantity      float64   `json:"quantity"`
	ProceedsBase  float64   `json:"proceeds"`
	CostBasisBase float64   `json:"costBasis"`
	GainLossBase  float64   `json:"gainLoss"`
}

// CurrencyGainLoss is the realized result of one foreign-currency disposal
// matched FIFO against the purchase lots for that currency. Amounts are GBP.
// ExchangeRateOriginal is the amount-weighted average acquisition rate of the
// lots the disposal consumed.
type CurrencyGainLoss struct {
	ID                   string    `json:"id,omitempty"`
	Currency             string    `json:"currency"`
	DisposalDate         time.Time `json:"disposalDate"`
	AmountForeign        float64   `json:"amountForeign"`
	ProceedsBase         float64   `json:"proceeds"`
	CostBasisBase        float64   `json:"costBasis"`
	GainLossBase         float64   `json:"gainLoss"`
	ExchangeRateOriginal float64   `json:"exchangeRateOriginal"`
}

// DividendIncome is the normalized form of one DIVIDEND transaction.
// Gross, withholding and net are GBP; net = gross - withholding.
type DividendIncome struct {
	ID                 string    `json:"id,omitempty"`
	SecurityID         string    `json:"securityId"`
	PaymentDate        time.Time `json:"paymentDate"`
	GrossBase          float64   `json:"gross"`
	WithholdingTaxBase float64   `json:"withholdingTax"`
	NetBase            float64   `json:"net"`
}

// InterestIncome is the normalized form of one INTEREST transaction, GBP.
type InterestIncome struct {
	ID          string    `json:"id,omitempty"`
	PaymentDate time.Time `json:"paymentDate"`
	AmountBase  float64   `json:"amount"`
}
