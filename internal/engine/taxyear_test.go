package engine

import (
	"errors"
	"testing"
	"time"
)

// TestTaxYearOf tests the 6 April boundary.
//
// WHY: every record lands in exactly one tax year; a one-day error at the
// boundary misstates two years' liabilities at once.
func TestTaxYearOf(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"5 April closes the year", day(2025, 4, 5), "2024-2025"},
		{"6 April opens the next", day(2025, 4, 6), "2025-2026"},
		{"mid summer", day(2024, 7, 15), "2024-2025"},
		{"new year's day", day(2025, 1, 1), "2024-2025"},
		{"1 April", day(2025, 4, 1), "2024-2025"},
		{"31 December", day(2024, 12, 31), "2024-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaxYearOf(tt.date); got != tt.expected {
				t.Errorf("TaxYearOf(%s) = %q, expected %q", tt.date.Format("2006-01-02"), got, tt.expected)
			}
		})
	}
}

// TestTaxYearBounds tests the inclusive window endpoints.
func TestTaxYearBounds(t *testing.T) {
	start, end := TaxYearBounds(2024)

	if !start.Equal(day(2024, 4, 6)) {
		t.Errorf("Expected start 2024-04-06, got %s", start.Format("2006-01-02"))
	}
	if !end.Equal(day(2025, 4, 5)) {
		t.Errorf("Expected end 2025-04-05, got %s", end.Format("2006-01-02"))
	}
}

// TestParseTaxYear tests label validation.
//
// WHY: a malformed tax year label is a configuration error that must abort
// the calculation rather than silently produce a summary for the wrong year.
func TestParseTaxYear(t *testing.T) {
	t.Run("accepts consecutive years", func(t *testing.T) {
		year, err := ParseTaxYear("2024-2025")
		if err != nil {
			t.Fatalf("ParseTaxYear() returned unexpected error: %v", err)
		}
		if year != 2024 {
			t.Errorf("Expected start year 2024, got %d", year)
		}
	})

	invalid := []string{"", "2024", "2024-2026", "2025-2024", "abcd-efgh", "2024-2025-2026", "0001-0002"}
	for _, label := range invalid {
		t.Run("rejects "+label, func(t *testing.T) {
			if _, err := ParseTaxYear(label); !errors.Is(err, ErrInvalidTaxYear) {
				t.Errorf("ParseTaxYear(%q) = %v, expected ErrInvalidTaxYear", label, err)
			}
		})
	}
}
