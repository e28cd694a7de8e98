package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple buy with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithKind(model.KindSell).
//	    WithQuantity(-50).
//	    WithPrice(12.50).
//	    WithDate("2024-06-01").
//	    Build(t, db)
type TransactionBuilder struct {
	tx model.Transaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults: a GBP
// buy of 100 units at £10.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		tx: model.Transaction{
			ID:         MakeID(),
			Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Kind:       model.KindBuy,
			SecurityID: MakeISIN(),
			Currency:   "GBP",
			Quantity:   100,
			Price:      10,
			RateToBase: 1.0,
			CreatedAt:  time.Now().UTC(),
		},
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// WithDate sets the transaction date from a "2006-01-02" string.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("invalid test date: " + date)
	}
	b.tx.Date = parsed
	return b
}

// WithKind sets the transaction kind.
func (b *TransactionBuilder) WithKind(kind string) *TransactionBuilder {
	b.tx.Kind = kind
	return b
}

// WithSecurityID sets the security identifier.
func (b *TransactionBuilder) WithSecurityID(securityID string) *TransactionBuilder {
	b.tx.SecurityID = securityID
	return b
}

// WithCurrency sets the trade currency.
func (b *TransactionBuilder) WithCurrency(currency string) *TransactionBuilder {
	b.tx.Currency = currency
	return b
}

// WithQuantity sets the signed quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.tx.Quantity = quantity
	return b
}

// WithPrice sets the per-unit price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.tx.Price = price
	return b
}

// WithRate sets the GBP conversion rate.
func (b *TransactionBuilder) WithRate(rate float64) *TransactionBuilder {
	b.tx.RateToBase = rate
	return b
}

// WithCommission sets the GBP commission.
func (b *TransactionBuilder) WithCommission(commission float64) *TransactionBuilder {
	b.tx.Commission = commission
	return b
}

// WithWithholding sets the GBP withholding tax.
func (b *TransactionBuilder) WithWithholding(withholding float64) *TransactionBuilder {
	b.tx.WithholdingTax = withholding
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO transactions (id, date, kind, security_id, currency, quantity,
		                          price, rate_to_base, commission, withholding_tax, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var securityID any
	if b.tx.SecurityID != "" {
		securityID = b.tx.SecurityID
	}
	_, err := db.Exec(query,
		b.tx.ID, b.tx.Date.Format("2006-01-02"), b.tx.Kind, securityID, b.tx.Currency,
		b.tx.Quantity, b.tx.Price, b.tx.RateToBase, b.tx.Commission, b.tx.WithholdingTax,
		b.tx.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return b.tx
}

// AllowanceBuilder provides a fluent interface for creating test allowances.
type AllowanceBuilder struct {
	allowance model.Allowance
}

// NewAllowance creates an AllowanceBuilder with the 2024-2025 statutory values.
func NewAllowance() *AllowanceBuilder {
	return &AllowanceBuilder{
		allowance: model.Allowance{
			TaxYear:           "2024-2025",
			CGTAllowance:      3000,
			DividendAllowance: 500,
		},
	}
}

// WithTaxYear sets the tax year label.
func (b *AllowanceBuilder) WithTaxYear(taxYear string) *AllowanceBuilder {
	b.allowance.TaxYear = taxYear
	return b
}

// WithCGT sets the CGT allowance.
func (b *AllowanceBuilder) WithCGT(amount float64) *AllowanceBuilder {
	b.allowance.CGTAllowance = amount
	return b
}

// WithDividend sets the dividend allowance.
func (b *AllowanceBuilder) WithDividend(amount float64) *AllowanceBuilder {
	b.allowance.DividendAllowance = amount
	return b
}

// Build creates the allowance in the database and returns it.
func (b *AllowanceBuilder) Build(t *testing.T, db *sql.DB) model.Allowance {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO allowances (tax_year, cgt_allowance, dividend_allowance)
		VALUES (?, ?, ?)`,
		b.allowance.TaxYear, b.allowance.CGTAllowance, b.allowance.DividendAllowance)
	if err != nil {
		t.Fatalf("Failed to create test allowance: %v", err)
	}

	return b.allowance
}
