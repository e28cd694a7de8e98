package request

type CreateTransactionRequest struct {
	Date           string  `json:"date"`
	Kind           string  `json:"kind"`
	SecurityID     string  `json:"securityId,omitempty"`
	Currency       string  `json:"currency"`
	Quantity       float64 `json:"quantity"`
	Price          float64 `json:"price"`
	RateToBase     float64 `json:"rateToBase"`
	Commission     float64 `json:"commission,omitempty"`
	WithholdingTax float64 `json:"withholdingTax,omitempty"`
}

type UpdateTransactionRequest struct {
	Date           *string  `json:"date,omitempty"`
	Kind           *string  `json:"kind,omitempty"`
	SecurityID     *string  `json:"securityId,omitempty"`
	Currency       *string  `json:"currency,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	RateToBase     *float64 `json:"rateToBase,omitempty"`
	Commission     *float64 `json:"commission,omitempty"`
	WithholdingTax *float64 `json:"withholdingTax,omitempty"`
}
