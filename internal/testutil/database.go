package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			kind TEXT NOT NULL,
			security_id TEXT,
			currency TEXT NOT NULL,
			quantity REAL NOT NULL DEFAULT 0,
			price REAL NOT NULL DEFAULT 0,
			rate_to_base REAL NOT NULL DEFAULT 1,
			commission REAL NOT NULL DEFAULT 0,
			withholding_tax REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_transactions_date ON transactions (date);
		CREATE INDEX idx_transactions_security ON transactions (security_id);
		CREATE INDEX idx_transactions_kind ON transactions (kind);

		CREATE TABLE allowances (
			tax_year TEXT PRIMARY KEY,
			cgt_allowance REAL NOT NULL,
			dividend_allowance REAL NOT NULL
		);

		CREATE TABLE tax_year_summaries (
			tax_year TEXT PRIMARY KEY,
			total_capital_gains REAL NOT NULL DEFAULT 0,
			taxable_capital_gains REAL NOT NULL DEFAULT 0,
			cgt_allowance_used REAL NOT NULL DEFAULT 0,
			total_dividend_net REAL NOT NULL DEFAULT 0,
			taxable_dividends REAL NOT NULL DEFAULT 0,
			dividend_allowance_used REAL NOT NULL DEFAULT 0,
			net_currency_gain_loss REAL NOT NULL DEFAULT 0,
			taxable_currency_gain REAL NOT NULL DEFAULT 0,
			total_interest REAL NOT NULL DEFAULT 0,
			total_fees REAL NOT NULL DEFAULT 0,
			total_taxable_income REAL NOT NULL DEFAULT 0,
			calculated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE exchange_rates (
			id TEXT PRIMARY KEY,
			currency TEXT NOT NULL,
			date DATETIME NOT NULL,
			rate REAL NOT NULL,
			UNIQUE (currency, date)
		);

		CREATE TABLE system_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"tax_year_summaries",
		"transactions",
		"allowances",
		"exchange_rates",
		"system_settings",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
