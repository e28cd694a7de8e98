package testutil

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
)

// MakeID generates a random UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeISIN generates a random plausible ISIN for test securities.
func MakeISIN() string {
	return fmt.Sprintf("GB00TEST%04d", rand.Intn(10000))
}

// DiscardLogger returns a logger that drops everything, for services under test.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
	)
}

func NewTestTaxReportService(t *testing.T, db *sql.DB) *service.TaxReportService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	allowanceRepo := repository.NewAllowanceRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	return service.NewTaxReportService(
		transactionRepo,
		allowanceRepo,
		summaryRepo,
		DiscardLogger(),
	)
}

func NewTestAllowanceService(t *testing.T, db *sql.DB) *service.AllowanceService {
	t.Helper()

	allowanceRepo := repository.NewAllowanceRepository(db)

	return service.NewAllowanceService(
		allowanceRepo,
	)
}

// NewTestRatesService builds a RatesService against the test database with a
// fixed fernet key. The baseURL should point at an httptest server when the
// test exercises the provider path.
func NewTestRatesService(t *testing.T, db *sql.DB, baseURL string) *service.RatesService {
	t.Helper()

	rateRepo := repository.NewExchangeRateRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	return service.NewRatesService(
		rateRepo,
		settingRepo,
		baseURL,
		TestFernetKey,
		DiscardLogger(),
	)
}

// TestFernetKey is a fixed base64 fernet key for tests (32 zero bytes).
const TestFernetKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
