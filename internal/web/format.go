// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"cmp"
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
)

// maxTaxReports is how many reports the dashboard lists.
const maxTaxReports = 5

// euro formats minor units the German way: "1.234,56 €".
var euro = func() *money.Formatter {
	currency := money.GetCurrency(money.EUR)
	return money.NewFormatter(currency.Fraction, ",", ".", currency.Grapheme, "1 $")
}()

// formatEUR renders an amount in euros, rounded to cents.
func formatEUR(amount decimal.Decimal) string {
	cents := amount.Shift(int32(euro.Fraction)).Round(0)
	return euro.Format(cents.IntPart())
}

// formatQuantity renders a coin quantity with at most eight decimals.
func formatQuantity(amount decimal.Decimal) string {
	return amount.Round(8).String()
}

// taxResult renders the earnings of a report as profit or loss.
func taxResult(earn decimal.Decimal) string {
	if earn.IsNegative() {
		return "Verlust -" + formatEUR(earn.Abs())
	}
	return "Gewinn " + formatEUR(earn)
}

// topTaxReports returns the newest reports first, at most maxTaxReports.
func topTaxReports(reports []kryptoapi.TaxReportResult) []kryptoapi.TaxReportResult {
	sorted := slices.Clone(reports)
	slices.SortStableFunc(sorted, func(a, b kryptoapi.TaxReportResult) int {
		return cmp.Compare(b.Year, a.Year)
	})
	if len(sorted) > maxTaxReports {
		sorted = sorted[:maxTaxReports]
	}
	return sorted
}
