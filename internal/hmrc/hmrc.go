// Package hmrc fetches daily GBP exchange rates from an external provider.
// HMRC accepts any reasonable published rate for converting foreign amounts;
// the provider behind this client publishes daily closing rates per currency.
package hmrc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RatesClient provides methods for fetching GBP exchange rates from the
// provider API. It wraps an HTTP client and carries the provider base URL and
// API token.
type RatesClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewRatesClient creates a new rates client for the given provider base URL.
// The token may be empty for providers that serve unauthenticated requests.
func NewRatesClient(baseURL, token string) *RatesClient {
	return &RatesClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

// QueryLatest fetches the most recent published rates for the given
// currencies, quoted as GBP per unit of each currency.
func (c *RatesClient) QueryLatest(currencies []string) (RateTable, error) {
	url := fmt.Sprintf("%s/latest?base=GBP&symbols=%s", c.baseURL, joinSymbols(currencies))
	return c.queryRates(url)
}

// QueryHistorical fetches the published rates for a specific date.
func (c *RatesClient) QueryHistorical(date time.Time, currencies []string) (RateTable, error) {
	url := fmt.Sprintf("%s/%s?base=GBP&symbols=%s",
		c.baseURL, date.Format("2006-01-02"), joinSymbols(currencies))
	return c.queryRates(url)
}

// queryRates executes the HTTP request and normalizes the response.
//
// The provider quotes rates as foreign units per GBP; the application stores
// GBP per foreign unit, so each rate is inverted here.
func (c *RatesClient) queryRates(url string) (RateTable, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return RateTable{}, err
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RateTable{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return RateTable{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return RateTable{}, err
	}

	if response.Error != nil {
		return RateTable{}, fmt.Errorf("rates provider error %d: %s", response.Error.Code, response.Error.Info)
	}
	if len(response.Rates) == 0 {
		return RateTable{}, fmt.Errorf("no rates returned")
	}

	date, err := time.Parse("2006-01-02", response.Date)
	if err != nil {
		return RateTable{}, fmt.Errorf("failed to parse rates date: %w", err)
	}

	table := RateTable{Date: date, Rates: make(map[string]float64, len(response.Rates))}
	for currency, unitsPerGBP := range response.Rates {
		if unitsPerGBP <= 0 {
			continue
		}
		table.Rates[currency] = 1 / unitsPerGBP
	}

	return table, nil
}

func joinSymbols(currencies []string) string {
	return strings.Join(currencies, ",")
}
