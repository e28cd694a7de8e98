// Package engine implements the tax computation core: Section 104 position
// pooling for share disposals, FIFO lot matching for foreign currency,
// dividend normalization, and per-tax-year aggregation with statutory
// allowances.
//
// One Calculate call is one pass over one in-memory transaction slice. Every
// pool and queue is a local value scoped to that call; the engine performs no
// I/O and retains no state between calls, so a concurrent server simply runs
// one Calculate per request.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// Calculator runs tax calculations over transaction histories. The zero-cost
// construction exists so callers can inject a logger; the Calculator itself
// is stateless and safe for concurrent use.
type Calculator struct {
	log *slog.Logger
}

// NewCalculator returns a Calculator logging through the given logger, or
// slog.Default() when nil.
func NewCalculator(log *slog.Logger) *Calculator {
	if log == nil {
		log = slog.Default()
	}
	return &Calculator{log: log}
}

// Result holds everything one calculation run produced: the per-tax-year
// summaries plus the intermediate per-category collections the reporting
// layer needs for detail views, and the skip/warning bookkeeping.
type Result struct {
	Summaries     []model.TaxYearSummary
	Disposals     []model.DisposalGain
	CurrencyGains []model.CurrencyGainLoss
	Dividends     []model.DividendIncome
	Interest      []model.InterestIncome
	Skipped       []model.SkippedTransaction
	Warnings      []model.Warning
}

// ReportFor assembles the TaxReport payload for one tax year out of the run's
// results, filtering each detail collection to that year's window.
func (r *Result) ReportFor(taxYear string) (model.TaxReport, error) {
	if _, err := ParseTaxYear(taxYear); err != nil {
		return model.TaxReport{}, err
	}

	report := model.TaxReport{
		Disposals:     []model.DisposalGain{},
		CurrencyGains: []model.CurrencyGainLoss{},
		Dividends:     []model.DividendIncome{},
		Interest:      []model.InterestIncome{},
		Skipped:       r.Skipped,
		Warnings:      r.Warnings,
	}
	for _, s := range r.Summaries {
		if s.TaxYear == taxYear {
			report.Summary = s
		}
	}
	if report.Summary.TaxYear == "" {
		report.Summary.TaxYear = taxYear
	}
	for _, d := range r.Disposals {
		if TaxYearOf(d.DisposalDate) == taxYear {
			report.Disposals = append(report.Disposals, d)
		}
	}
	for _, g := range r.CurrencyGains {
		if TaxYearOf(g.DisposalDate) == taxYear {
			report.CurrencyGains = append(report.CurrencyGains, g)
		}
	}
	for _, d := range r.Dividends {
		if TaxYearOf(d.PaymentDate) == taxYear {
			report.Dividends = append(report.Dividends, d)
		}
	}
	for _, i := range r.Interest {
		if TaxYearOf(i.PaymentDate) == taxYear {
			report.Interest = append(report.Interest, i)
		}
	}
	return report, nil
}

// Calculate runs the full computation over the given transactions.
//
// Malformed transactions are skipped and recorded, never fatal. The only
// fatal condition is configuration: a tax year present in the history with no
// allowance constants supplied (ErrMissingAllowance).
//
// The same transactions and allowances always produce an identical Result.
func (c *Calculator) Calculate(transactions []model.Transaction, allowances map[string]model.Allowance) (*Result, error) {
	result := &Result{}

	// Validation pass: invalid rows never reach a pool or queue.
	valid := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if reason, ok := validateTransaction(tx); !ok {
			c.log.Warn("transaction failed validation",
				"transactionId", tx.ID, "kind", tx.Kind, "reason", reason)
			result.Skipped = append(result.Skipped, model.SkippedTransaction{
				TransactionID: tx.ID,
				Kind:          tx.Kind,
				Reason:        reason,
			})
			continue
		}
		valid = append(valid, tx)
	}

	bySecurity := make(map[string][]model.Transaction)
	byCurrency := make(map[string][]model.Transaction)
	feesByYear := make(map[string]float64)

	for _, tx := range valid {
		switch tx.Kind {
		case model.KindBuy, model.KindSell, model.KindSplit:
			bySecurity[tx.SecurityID] = append(bySecurity[tx.SecurityID], tx)
		case model.KindCurrencyExchange:
			byCurrency[tx.Currency] = append(byCurrency[tx.Currency], tx)
		case model.KindDividend:
			result.Dividends = append(result.Dividends, NormalizeDividend(tx))
		case model.KindInterest:
			result.Interest = append(result.Interest, NormalizeInterest(tx))
		case model.KindCommission:
			feesByYear[TaxYearOf(tx.Date)] += feeAmount(tx)
		default:
			// Transfers, mergers, standalone withholding and cash adjustments
			// move no pooled position and realize nothing.
			c.log.Debug("transaction kind carries no tax event", "transactionId", tx.ID, "kind", tx.Kind)
		}
	}

	// Deterministic iteration: process securities and currencies in sorted
	// key order so repeated runs emit records in the same order.
	for _, securityID := range sortedKeys(bySecurity) {
		txs := bySecurity[securityID]
		sortByDate(txs)
		gains, warnings, skipped := matchDisposals(c.log, securityID, txs)
		result.Disposals = append(result.Disposals, gains...)
		result.Warnings = append(result.Warnings, warnings...)
		result.Skipped = append(result.Skipped, skipped...)
	}

	for _, currency := range sortedKeys(byCurrency) {
		txs := byCurrency[currency]
		sortByDate(txs)
		gains, skipped := matchCurrency(c.log, currency, txs)
		result.CurrencyGains = append(result.CurrencyGains, gains...)
		result.Skipped = append(result.Skipped, skipped...)
	}

	// Partition realized records by UK tax year and aggregate each year.
	years := make(map[string]bool)
	disposalsByYear := make(map[string][]model.DisposalGain)
	for _, d := range result.Disposals {
		y := TaxYearOf(d.DisposalDate)
		years[y] = true
		disposalsByYear[y] = append(disposalsByYear[y], d)
	}
	currencyByYear := make(map[string][]model.CurrencyGainLoss)
	for _, g := range result.CurrencyGains {
		y := TaxYearOf(g.DisposalDate)
		years[y] = true
		currencyByYear[y] = append(currencyByYear[y], g)
	}
	dividendsByYear := make(map[string][]model.DividendIncome)
	for _, d := range result.Dividends {
		y := TaxYearOf(d.PaymentDate)
		years[y] = true
		dividendsByYear[y] = append(dividendsByYear[y], d)
	}
	interestByYear := make(map[string][]model.InterestIncome)
	for _, i := range result.Interest {
		y := TaxYearOf(i.PaymentDate)
		years[y] = true
		interestByYear[y] = append(interestByYear[y], i)
	}
	for y := range feesByYear {
		years[y] = true
	}

	yearLabels := make([]string, 0, len(years))
	for y := range years {
		yearLabels = append(yearLabels, y)
	}
	sort.Strings(yearLabels)

	for _, year := range yearLabels {
		allowance, ok := allowances[year]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAllowance, year)
		}
		summary, err := Aggregate(year, allowance,
			disposalsByYear[year], currencyByYear[year],
			dividendsByYear[year], interestByYear[year], feesByYear[year])
		if err != nil {
			return nil, err
		}
		result.Summaries = append(result.Summaries, summary)
	}

	return result, nil
}

// sortByDate sorts transactions ascending by date, stable so same-day rows
// keep their ingestion order.
func sortByDate(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
