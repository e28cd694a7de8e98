package repository

import (
	"database/sql"
	"fmt"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// AllowanceRepository provides data access methods for the allowances table,
// which holds the statutory CGT and dividend thresholds per UK tax year.
type AllowanceRepository struct {
	db *sql.DB
}

// NewAllowanceRepository creates a new AllowanceRepository with the provided database connection.
func NewAllowanceRepository(db *sql.DB) *AllowanceRepository {
	return &AllowanceRepository{db: db}
}

// ListAllowances retrieves every configured allowance, sorted by tax year.
func (r *AllowanceRepository) ListAllowances() ([]model.Allowance, error) {
	rows, err := r.db.Query(`
		SELECT tax_year, cgt_allowance, dividend_allowance
		FROM allowances
		ORDER BY tax_year ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allowances table: %w", err)
	}
	defer rows.Close()

	allowances := []model.Allowance{}
	for rows.Next() {
		var a model.Allowance
		if err := rows.Scan(&a.TaxYear, &a.CGTAllowance, &a.DividendAllowance); err != nil {
			return nil, fmt.Errorf("failed to scan allowances table results: %w", err)
		}
		allowances = append(allowances, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allowances table: %w", err)
	}

	return allowances, nil
}

// AllowanceMap returns the allowances keyed by tax year, the shape the
// calculation engine consumes.
func (r *AllowanceRepository) AllowanceMap() (map[string]model.Allowance, error) {
	allowances, err := r.ListAllowances()
	if err != nil {
		return nil, err
	}
	m := make(map[string]model.Allowance, len(allowances))
	for _, a := range allowances {
		m[a.TaxYear] = a
	}
	return m, nil
}

// GetAllowance retrieves the allowance for one tax year. Returns a zero-value
// Allowance with no error when none is configured.
func (r *AllowanceRepository) GetAllowance(taxYear string) (model.Allowance, error) {
	var a model.Allowance
	err := r.db.QueryRow(`
		SELECT tax_year, cgt_allowance, dividend_allowance
		FROM allowances WHERE tax_year = ?`, taxYear).
		Scan(&a.TaxYear, &a.CGTAllowance, &a.DividendAllowance)
	if err == sql.ErrNoRows {
		return model.Allowance{}, nil
	}
	if err != nil {
		return model.Allowance{}, fmt.Errorf("failed to scan allowances table results: %w", err)
	}
	return a, nil
}

// UpsertAllowance inserts or replaces the allowance for a tax year.
func (r *AllowanceRepository) UpsertAllowance(a model.Allowance) error {
	_, err := r.db.Exec(`
		INSERT INTO allowances (tax_year, cgt_allowance, dividend_allowance)
		VALUES (?, ?, ?)
		ON CONFLICT (tax_year) DO UPDATE SET
			cgt_allowance = excluded.cgt_allowance,
			dividend_allowance = excluded.dividend_allowance`,
		a.TaxYear, a.CGTAllowance, a.DividendAllowance,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert allowance: %w", err)
	}
	return nil
}

// DeleteAllowance removes the allowance for a tax year. Returns rows affected.
func (r *AllowanceRepository) DeleteAllowance(taxYear string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM allowances WHERE tax_year = ?`, taxYear)
	if err != nil {
		return 0, fmt.Errorf("failed to delete allowance: %w", err)
	}
	return result.RowsAffected()
}
