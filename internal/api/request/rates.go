package request

type SetExchangeRateRequest struct {
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Rate     float64 `json:"rate"`
}

type SetProviderTokenRequest struct {
	Token string `json:"token"`
}
