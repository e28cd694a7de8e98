package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transactions table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	Kind       string
	SecurityID string
	StartDate  time.Time
	EndDate    time.Time
}

const transactionColumns = `id, date, kind, security_id, currency, quantity, price,
       rate_to_base, commission, withholding_tax, created_at`

// ListTransactions retrieves transactions matching the filter, sorted by date
// ascending. The engine depends on this ordering for same-day tie-breaking.
func (r *TransactionRepository) ListTransactions(filter TransactionFilter) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`

	var conditions []string
	var args []any
	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.SecurityID != "" {
		conditions = append(conditions, "security_id = ?")
		args = append(args, filter.SecurityID)
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID. Returns a zero-value
// Transaction with no error when the ID does not exist; callers map that to
// their own not-found error.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	if transactionID == "" {
		return model.Transaction{}, nil
	}

	row := r.db.QueryRow(
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, transactionID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, nil
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// CreateTransaction inserts a new transaction row.
func (r *TransactionRepository) CreateTransaction(t model.Transaction) error {
	_, err := r.db.Exec(`
		INSERT INTO transactions (id, date, kind, security_id, currency, quantity,
		                          price, rate_to_base, commission, withholding_tax, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date.Format("2006-01-02"), t.Kind, nullable(t.SecurityID), t.Currency,
		t.Quantity, t.Price, t.RateToBase, t.Commission, t.WithholdingTax,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateTransactions inserts a batch of transactions inside one database
// transaction, so a failed CSV import leaves nothing behind.
func (r *TransactionRepository) CreateTransactions(transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, date, kind, security_id, currency, quantity,
		                          price, rate_to_base, commission, withholding_tax, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		_, err := stmt.Exec(
			t.ID, t.Date.Format("2006-01-02"), t.Kind, nullable(t.SecurityID), t.Currency,
			t.Quantity, t.Price, t.RateToBase, t.Commission, t.WithholdingTax,
			t.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
// Returns the number of rows affected so the service can detect a missing ID.
func (r *TransactionRepository) UpdateTransaction(t model.Transaction) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE transactions
		SET date = ?, kind = ?, security_id = ?, currency = ?, quantity = ?,
		    price = ?, rate_to_base = ?, commission = ?, withholding_tax = ?
		WHERE id = ?`,
		t.Date.Format("2006-01-02"), t.Kind, nullable(t.SecurityID), t.Currency,
		t.Quantity, t.Price, t.RateToBase, t.Commission, t.WithholdingTax, t.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", err)
	}
	return result.RowsAffected()
}

// DeleteTransaction removes a transaction by ID. Returns rows affected.
func (r *TransactionRepository) DeleteTransaction(transactionID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = ?`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return result.RowsAffected()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var securityID sql.NullString

	err := row.Scan(
		&t.ID,
		&dateStr,
		&t.Kind,
		&securityID,
		&t.Currency,
		&t.Quantity,
		&t.Price,
		&t.RateToBase,
		&t.Commission,
		&t.WithholdingTax,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan transactions table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if securityID.Valid {
		t.SecurityID = securityID.String
	}

	return t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
