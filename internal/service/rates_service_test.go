package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/testutil"
)

// TestRatesService_GetRate tests rate lookup with fallback.
//
// WHY: weekends and holidays have no published rates, so a date with no entry
// must fall back to the most recent earlier rate instead of failing.
func TestRatesService_GetRate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestRatesService(t, db, "")

	friday := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	if err := svc.SetRate(model.ExchangeRate{Currency: "EUR", Date: friday, Rate: 0.85}); err != nil {
		t.Fatalf("SetRate() returned unexpected error: %v", err)
	}

	t.Run("exact date match", func(t *testing.T) {
		rate, err := svc.GetRate("EUR", friday)
		if err != nil {
			t.Fatalf("GetRate() returned unexpected error: %v", err)
		}
		if rate.Rate != 0.85 {
			t.Errorf("Expected rate 0.85, got %v", rate.Rate)
		}
	})

	t.Run("weekend falls back to friday", func(t *testing.T) {
		sunday := friday.AddDate(0, 0, 2)
		rate, err := svc.GetRate("EUR", sunday)
		if err != nil {
			t.Fatalf("GetRate() returned unexpected error: %v", err)
		}
		if rate.Rate != 0.85 {
			t.Errorf("Expected fallback rate 0.85, got %v", rate.Rate)
		}
	})

	t.Run("date before any stored rate is not found", func(t *testing.T) {
		_, err := svc.GetRate("EUR", friday.AddDate(0, 0, -10))
		if !errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			t.Errorf("Expected ErrExchangeRateNotFound, got %v", err)
		}
	})

	t.Run("unknown currency is not found", func(t *testing.T) {
		_, err := svc.GetRate("JPY", friday)
		if !errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			t.Errorf("Expected ErrExchangeRateNotFound, got %v", err)
		}
	})
}

// TestRatesService_RefreshRates tests the provider refresh flow.
//
// WHY: the refresh drives currency coverage off the actual transaction
// history and must invert the provider's quote orientation before storing.
func TestRatesService_RefreshRates(t *testing.T) {
	t.Run("stores inverted rates for history currencies", func(t *testing.T) {
		// Setup: a USD transaction so USD needs a rate
		db := testutil.SetupTestDB(t)
		testutil.NewTransaction().WithCurrency("USD").Build(t, db)

		// Provider quotes 1.25 USD per GBP
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck
			w.Write([]byte(`{"success":true,"base":"GBP","date":"2024-06-07","rates":{"USD":1.25}}`))
		}))
		defer server.Close()

		svc := testutil.NewTestRatesService(t, db, server.URL)

		// Execute
		refreshed, err := svc.RefreshRates(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("RefreshRates() returned unexpected error: %v", err)
		}
		if refreshed != 1 {
			t.Errorf("Expected 1 refreshed rate, got %d", refreshed)
		}

		rate, err := svc.GetRate("USD", time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("GetRate() returned unexpected error: %v", err)
		}
		// Stored as GBP per USD: 1/1.25
		if rate.Rate != 0.8 {
			t.Errorf("Expected stored rate 0.8, got %v", rate.Rate)
		}
	})

	t.Run("no foreign currencies is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.NewTransaction().WithCurrency("GBP").Build(t, db)
		svc := testutil.NewTestRatesService(t, db, "http://unused.invalid")

		refreshed, err := svc.RefreshRates(context.Background())
		if err != nil {
			t.Fatalf("RefreshRates() returned unexpected error: %v", err)
		}
		if refreshed != 0 {
			t.Errorf("Expected 0 refreshed, got %d", refreshed)
		}
	})
}

// TestRatesService_ProviderToken tests token encryption at rest.
//
// WHY: the provider token is a credential; the settings table must never hold
// it in the clear, and a stored token must decrypt back for outgoing calls.
func TestRatesService_ProviderToken(t *testing.T) {
	db := testutil.SetupTestDB(t)

	// A server that echoes back the Authorization header check
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"success":true,"base":"GBP","date":"2024-06-07","rates":{"USD":1.25}}`))
	}))
	defer server.Close()

	testutil.NewTransaction().WithCurrency("USD").Build(t, db)
	svc := testutil.NewTestRatesService(t, db, server.URL)

	if err := svc.SetProviderToken("secret-token"); err != nil {
		t.Fatalf("SetProviderToken() returned unexpected error: %v", err)
	}

	// The stored value is encrypted, not the plaintext
	var stored string
	if err := db.QueryRow(`SELECT value FROM system_settings WHERE key = 'rates_provider_token'`).Scan(&stored); err != nil {
		t.Fatalf("Failed to read stored token: %v", err)
	}
	if stored == "secret-token" || stored == "" {
		t.Errorf("Expected encrypted token at rest, got %q", stored)
	}

	// The refresh decrypts and sends the original token
	if _, err := svc.RefreshRates(context.Background()); err != nil {
		t.Fatalf("RefreshRates() returned unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Expected decrypted bearer token on the wire, got %q", gotAuth)
	}
}
