package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// SummaryRepository provides data access methods for the tax_year_summaries
// table, the materialized output of the calculation engine. Rows here are a
// cache: the nightly rebuild and on-demand recalculations replace them
// wholesale from the transactions table.
type SummaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new SummaryRepository with the provided database connection.
func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

const summaryColumns = `tax_year, total_capital_gains, taxable_capital_gains, cgt_allowance_used,
       total_dividend_net, taxable_dividends, dividend_allowance_used,
       net_currency_gain_loss, taxable_currency_gain,
       total_interest, total_fees, total_taxable_income`

// ReplaceSummaries clears the table and writes the given summaries in one
// database transaction, so readers never observe a half-rebuilt cache.
func (r *SummaryRepository) ReplaceSummaries(summaries []model.TaxYearSummary) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tax_year_summaries`); err != nil {
		return fmt.Errorf("failed to clear tax_year_summaries: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tax_year_summaries (` + summaryColumns + `, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, s := range summaries {
		_, err := stmt.Exec(
			s.TaxYear, s.TotalCapitalGains, s.TaxableCapitalGains, s.CGTAllowanceUsed,
			s.TotalDividendNet, s.TaxableDividends, s.DividendAllowanceUsed,
			s.NetCurrencyGainLoss, s.TaxableCurrencyGain,
			s.TotalInterest, s.TotalFees, s.TotalTaxableIncome, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert summary for %s: %w", s.TaxYear, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit summaries: %w", err)
	}
	return nil
}

// ListSummaries retrieves every materialized summary, sorted by tax year.
func (r *SummaryRepository) ListSummaries() ([]model.TaxYearSummary, error) {
	rows, err := r.db.Query(`SELECT ` + summaryColumns + ` FROM tax_year_summaries ORDER BY tax_year ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax_year_summaries: %w", err)
	}
	defer rows.Close()

	summaries := []model.TaxYearSummary{}
	for rows.Next() {
		var s model.TaxYearSummary
		err := rows.Scan(
			&s.TaxYear, &s.TotalCapitalGains, &s.TaxableCapitalGains, &s.CGTAllowanceUsed,
			&s.TotalDividendNet, &s.TaxableDividends, &s.DividendAllowanceUsed,
			&s.NetCurrencyGainLoss, &s.TaxableCurrencyGain,
			&s.TotalInterest, &s.TotalFees, &s.TotalTaxableIncome,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax_year_summaries results: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax_year_summaries: %w", err)
	}

	return summaries, nil
}

// GetSummary retrieves the materialized summary for one tax year. Returns a
// zero-value summary with no error when none has been calculated.
func (r *SummaryRepository) GetSummary(taxYear string) (model.TaxYearSummary, error) {
	var s model.TaxYearSummary
	err := r.db.QueryRow(`SELECT `+summaryColumns+` FROM tax_year_summaries WHERE tax_year = ?`, taxYear).
		Scan(
			&s.TaxYear, &s.TotalCapitalGains, &s.TaxableCapitalGains, &s.CGTAllowanceUsed,
			&s.TotalDividendNet, &s.TaxableDividends, &s.DividendAllowanceUsed,
			&s.NetCurrencyGainLoss, &s.TaxableCurrencyGain,
			&s.TotalInterest, &s.TotalFees, &s.TotalTaxableIncome,
		)
	if err == sql.ErrNoRows {
		return model.TaxYearSummary{}, nil
	}
	if err != nil {
		return model.TaxYearSummary{}, fmt.Errorf("failed to scan tax_year_summaries results: %w", err)
	}
	return s, nil
}
