package request

type UpsertAllowanceRequest struct {
	TaxYear           string  `json:"taxYear"`
	CGTAllowance      float64 `json:"cgtAllowance"`
	DividendAllowance float64 `json:"dividendAllowance"`
}
