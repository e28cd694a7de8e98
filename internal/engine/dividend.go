package engine

import (
	"math"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// NormalizeDividend converts one DIVIDEND transaction into an income record.
// Gross is |quantity * price| converted to GBP; the withholding tax deducted
// at source comes straight from the transaction (already GBP). Stateless, so
// dividends can be normalized in any order.
func NormalizeDividend(tx model.Transaction) model.DividendIncome {
	gross := math.Abs(tx.Quantity*tx.Price) * tx.RateToBase
	return model.DividendIncome{
		SecurityID:         tx.SecurityID,
		PaymentDate:        tx.Date,
		GrossBase:          gross,
		WithholdingTaxBase: tx.WithholdingTax,
		NetBase:            gross - tx.WithholdingTax,
	}
}

// NormalizeInterest converts one INTEREST transaction into an income record.
func NormalizeInterest(tx model.Transaction) model.InterestIncome {
	return model.InterestIncome{
		PaymentDate: tx.Date,
		AmountBase:  math.Abs(tx.Quantity*tx.Price) * tx.RateToBase,
	}
}

// feeAmount returns the GBP fee carried by a COMMISSION transaction. Broker
// feeds put standalone fees either in the commission field or in the
// quantity/price pair; the commission field wins when set.
func feeAmount(tx model.Transaction) float64 {
	if tx.Commission != 0 {
		return math.Abs(tx.Commission)
	}
	return math.Abs(tx.Quantity*tx.Price) * tx.RateToBase
}
