package hmrc

import "time"

// Response represents the raw JSON response structure from the exchange-rate
// provider API. The provider returns rates quoted against a base currency for
// one date, plus an optional error envelope.
type Response struct {
	Success bool               `json:"success"`
	Base    string             `json:"base"`
	Date    string             `json:"date"`
	Rates   map[string]float64 `json:"rates"`
	Error   *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// RateTable represents a parsed set of GBP conversion rates for one date.
// Rates are normalized to GBP per unit of foreign currency, the orientation
// the rest of the application uses.
type RateTable struct {
	Date  time.Time
	Rates map[string]float64 // currency -> GBP per unit
}

// RateForCurrency looks up the GBP rate for a currency.
func (t RateTable) RateForCurrency(currency string) (float64, bool) {
	rate, ok := t.Rates[currency]
	return rate, ok
}
