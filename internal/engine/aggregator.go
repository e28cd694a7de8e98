package engine

import (
	"fmt"
	"math"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
)

// RoundingPrecision rounds summary amounts to whole pennies.
const RoundingPrecision = 100

func round(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}

// Aggregate combines one tax year's realized records into a TaxYearSummary,
// applying the statutory allowances in fixed order:
//
//  1. capital gains taxable = max(0, total gains - CGT allowance)
//  2. dividend taxable = max(0, total net dividends - dividend allowance)
//  3. currency taxable = max(0, net currency gain/loss); currency losses net
//     against currency gains within the category only and are never
//     allowance-eligible, nor do they offset other categories
//
// All inputs must already belong to the given tax year; Aggregate does not
// re-partition. Allowance constants arrive as parameters because they change
// year to year. The same inputs always produce an identical summary.
func Aggregate(
	taxYear string,
	allowance model.Allowance,
	disposals []model.DisposalGain,
	currencyGains []model.CurrencyGainLoss,
	dividends []model.DividendIncome,
	interest []model.InterestIncome,
	totalFees float64,
) (model.TaxYearSummary, error) {
	if _, err := ParseTaxYear(taxYear); err != nil {
		return model.TaxYearSummary{}, err
	}
	if allowance.CGTAllowance < 0 || allowance.DividendAllowance < 0 {
		return model.TaxYearSummary{}, fmt.Errorf("%w: %s: negative allowance", ErrInvalidTaxYear, taxYear)
	}

	var totalGains float64
	for _, d := range disposals {
		totalGains += d.GainLossBase
	}

	var netCurrency float64
	for _, g := range currencyGains {
		netCurrency += g.GainLossBase
	}

	var totalDividendNet float64
	for _, d := range dividends {
		totalDividendNet += d.NetBase
	}

	var totalInterest float64
	for _, i := range interest {
		totalInterest += i.AmountBase
	}

	totalGains = round(totalGains)
	netCurrency = round(netCurrency)
	totalDividendNet = round(totalDividendNet)

	taxableGains := round(math.Max(0, totalGains-allowance.CGTAllowance))
	taxableDividends := round(math.Max(0, totalDividendNet-allowance.DividendAllowance))
	taxableCurrency := round(math.Max(0, netCurrency))

	return model.TaxYearSummary{
		TaxYear: taxYear,

		TotalCapitalGains:   totalGains,
		TaxableCapitalGains: taxableGains,
		CGTAllowanceUsed:    round(math.Min(math.Max(0, totalGains), allowance.CGTAllowance)),

		TotalDividendNet:      totalDividendNet,
		TaxableDividends:      taxableDividends,
		DividendAllowanceUsed: round(math.Min(math.Max(0, totalDividendNet), allowance.DividendAllowance)),

		NetCurrencyGainLoss: netCurrency,
		TaxableCurrencyGain: taxableCurrency,

		TotalInterest: round(totalInterest),
		TotalFees:     round(totalFees),

		TotalTaxableIncome: round(taxableGains + taxableDividends + taxableCurrency),
	}, nil
}
