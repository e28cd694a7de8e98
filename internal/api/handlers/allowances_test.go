package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/testutil"
)

func TestAllowanceHandler_UpsertAllowance(t *testing.T) {
	t.Run("creates a valid allowance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewAllowanceHandler(testutil.NewTestAllowanceService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/allowance", request.UpsertAllowanceRequest{
			TaxYear: "2024-2025", CGTAllowance: 3000, DividendAllowance: 500,
		})
		w := httptest.NewRecorder()

		handler.UpsertAllowance(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "allowances", 1)
	})

	t.Run("rejects a non-consecutive year label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewAllowanceHandler(testutil.NewTestAllowanceService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/allowance", request.UpsertAllowanceRequest{
			TaxYear: "2024-2026", CGTAllowance: 3000, DividendAllowance: 500,
		})
		w := httptest.NewRecorder()

		handler.UpsertAllowance(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "allowances", 0)
	})

	t.Run("rejects negative allowance figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewAllowanceHandler(testutil.NewTestAllowanceService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/allowance", request.UpsertAllowanceRequest{
			TaxYear: "2024-2025", CGTAllowance: -1, DividendAllowance: 500,
		})
		w := httptest.NewRecorder()

		handler.UpsertAllowance(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAllowanceHandler_GetAllowance(t *testing.T) {
	t.Run("returns a configured allowance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewAllowanceHandler(testutil.NewTestAllowanceService(t, db))
		testutil.NewAllowance().WithTaxYear("2024-2025").WithCGT(3000).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/allowance/2024-2025",
			map[string]string{"taxYear": "2024-2025"})
		w := httptest.NewRecorder()

		handler.GetAllowance(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.Allowance
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)
		if got.CGTAllowance != 3000 {
			t.Errorf("Expected CGT allowance 3000, got %v", got.CGTAllowance)
		}
	})

	t.Run("returns 404 for an unconfigured year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewAllowanceHandler(testutil.NewTestAllowanceService(t, db))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/allowance/2019-2020",
			map[string]string{"taxYear": "2019-2020"})
		w := httptest.NewRecorder()

		handler.GetAllowance(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAllowanceHandler_DeleteAllowance(t *testing.T) {
	t.Run("deletes and returns 404 on repeat", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewAllowanceHandler(testutil.NewTestAllowanceService(t, db))
		testutil.NewAllowance().WithTaxYear("2024-2025").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/allowance/2024-2025",
			map[string]string{"taxYear": "2024-2025"})
		w := httptest.NewRecorder()

		handler.DeleteAllowance(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "allowances", 0)

		w = httptest.NewRecorder()
		handler.DeleteAllowance(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 on second delete, got %d", w.Code)
		}
	})
}
