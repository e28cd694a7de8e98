package engine

import (
	"fmt"
	"strings"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// validateTransaction checks one transaction for the malformations the engine
// refuses to process: unknown kind, negative price, non-positive conversion
// rate, missing currency, or a security-less buy/sell. Returns a reason string
// when the transaction must be skipped.
//
// Validation failures are recovered locally: the transaction is excluded from
// every pool and queue but never aborts the calculation.
func validateTransaction(tx model.Transaction) (string, bool) {
	if !model.ValidKinds[tx.Kind] {
		return fmt.Sprintf("unknown transaction kind %q", tx.Kind), false
	}
	if tx.Date.IsZero() {
		return "missing transaction date", false
	}
	if tx.Price < 0 {
		return "negative price", false
	}
	if tx.RateToBase <= 0 {
		return "non-positive exchange rate", false
	}
	if strings.TrimSpace(tx.Currency) == "" {
		return "missing currency", false
	}
	switch tx.Kind {
	case model.KindBuy, model.KindSell, model.KindSplit:
		if strings.TrimSpace(tx.SecurityID) == "" {
			return "missing security identifier", false
		}
	}
	return "", true
}
