package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/testutil"
)

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("creates valid transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			Date:       "2024-06-01",
			Kind:       model.KindBuy,
			SecurityID: "GB00TEST0001",
			Currency:   "GBP",
			Quantity:   100,
			Price:      10,
			RateToBase: 1.0,
		})
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "transactions", 1)
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			Date: "2024-06-01", Kind: "gift", Currency: "GBP", RateToBase: 1.0,
		})
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "transactions", 0)
	})

	t.Run("rejects unknown JSON fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/transaction",
			strings.NewReader(`{"date":"2024-06-01","kind":"buy","shares":5}`))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown field, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns existing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		tx := testutil.NewTransaction().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.TransactionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)
		if got.ID != tx.ID {
			t.Errorf("Expected transaction %s, got %s", tx.ID, got.ID)
		}
		if got.TaxYear == "" {
			t.Error("Expected tax year enrichment in response")
		}
	})

	t.Run("returns 404 for missing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+missing,
			map[string]string{"uuid": missing})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("filters by query parameters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		testutil.NewTransaction().WithKind(model.KindBuy).WithDate("2024-05-01").Build(t, db)
		testutil.NewTransaction().WithKind(model.KindSell).WithQuantity(-10).WithDate("2024-06-01").Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"kind": model.KindSell})
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got []model.TransactionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)
		if len(got) != 1 || got[0].Kind != model.KindSell {
			t.Errorf("Expected one sell, got %+v", got)
		}
	})

	t.Run("rejects malformed date filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"from": "01/05/2024"})
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_ImportTransactions(t *testing.T) {
	t.Run("imports CSV body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		csv := "date,kind,securityId,currency,quantity,price,rateToBase,commission,withholdingTax\n" +
			"2024-05-01,buy,GB00TEST0001,GBP,100,10,1.0,,\n"
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader(csv))
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "transactions", 1)
	})

	t.Run("rejects bad CSV with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader("nope\n"))
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
