package model

import "time"

// ExchangeRate is a stored GBP conversion rate for one currency on one date.
// Rate is the GBP value of one unit of Currency.
type ExchangeRate struct {
	ID       string    `json:"id"`
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Rate     float64   `json:"rate"`
}
