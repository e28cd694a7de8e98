package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// ExchangeRateRepository provides data access methods for the exchange_rates
// table. Rates are stored as GBP per unit of foreign currency, one row per
// currency/date pair.
type ExchangeRateRepository struct {
	db *sql.DB
}

// NewExchangeRateRepository creates a new ExchangeRateRepository with the provided database connection.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// GetRate retrieves the stored rate for a currency on a specific date.
// Returns a zero-value ExchangeRate with no error when no row exists.
func (r *ExchangeRateRepository) GetRate(currency string, date time.Time) (model.ExchangeRate, error) {
	var rate model.ExchangeRate
	var dateStr string
	err := r.db.QueryRow(`
		SELECT id, currency, date, rate
		FROM exchange_rates
		WHERE currency = ? AND date = ?`,
		currency, date.Format("2006-01-02")).
		Scan(&rate.ID, &rate.Currency, &dateStr, &rate.Rate)
	if err == sql.ErrNoRows {
		return model.ExchangeRate{}, nil
	}
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to scan exchange_rates results: %w", err)
	}

	rate.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return rate, nil
}

// GetLatestRate retrieves the most recent stored rate for a currency.
// Returns a zero-value ExchangeRate with no error when none exists.
func (r *ExchangeRateRepository) GetLatestRate(currency string) (model.ExchangeRate, error) {
	var rate model.ExchangeRate
	var dateStr string
	err := r.db.QueryRow(`
		SELECT id, currency, date, rate
		FROM exchange_rates
		WHERE currency = ?
		ORDER BY date DESC
		LIMIT 1`, currency).
		Scan(&rate.ID, &rate.Currency, &dateStr, &rate.Rate)
	if err == sql.ErrNoRows {
		return model.ExchangeRate{}, nil
	}
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to scan exchange_rates results: %w", err)
	}

	rate.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return rate, nil
}

// UpsertRate inserts or replaces the rate for a currency/date pair.
func (r *ExchangeRateRepository) UpsertRate(rate model.ExchangeRate) error {
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	_, err := r.db.Exec(`
		INSERT INTO exchange_rates (id, currency, date, rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (currency, date) DO UPDATE SET rate = excluded.rate`,
		rate.ID, rate.Currency, rate.Date.Format("2006-01-02"), rate.Rate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

// ListCurrencies returns the distinct currencies present in the transactions
// table, excluding the GBP base. This drives the scheduled rates refresh.
func (r *ExchangeRateRepository) ListCurrencies() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT currency FROM transactions
		WHERE currency != 'GBP'
		ORDER BY currency ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction currencies: %w", err)
	}
	defer rows.Close()

	currencies := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}

	return currencies, nil
}
