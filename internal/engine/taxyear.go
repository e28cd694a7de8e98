package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The UK tax year runs 6 April to 5 April. This boundary is statutory and not
// configurable.
const (
	taxYearStartMonth = time.April
	taxYearStartDay   = 6
)

// TaxYearOf returns the UK tax year label ("2024-2025") containing the given
// date. A date on 5 April belongs to the year ending that day; 6 April opens
// the next year.
func TaxYearOf(d time.Time) string {
	startYear := d.Year()
	if d.Month() < taxYearStartMonth ||
		(d.Month() == taxYearStartMonth && d.Day() < taxYearStartDay) {
		startYear--
	}
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

// TaxYearBounds returns the inclusive first and last day of the tax year
// beginning in startYear (6 April startYear through 5 April startYear+1).
func TaxYearBounds(startYear int) (time.Time, time.Time) {
	start := time.Date(startYear, taxYearStartMonth, taxYearStartDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(startYear+1, taxYearStartMonth, taxYearStartDay-1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// ParseTaxYear validates a "YYYY-YYYY" tax year label and returns its starting
// year. The two years must be consecutive. A malformed label is a
// configuration error: no partial summary can be produced from it, so callers
// abort the whole calculation.
func ParseTaxYear(label string) (int, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}
	second, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaxYear, label)
	}
	if second != first+1 {
		return 0, fmt.Errorf("%w: %q: years must be consecutive", ErrInvalidTaxYear, label)
	}
	if first < 1900 || first > 2200 {
		return 0, fmt.Errorf("%w: %q: year out of range", ErrInvalidTaxYear, label)
	}
	return first, nil
}
