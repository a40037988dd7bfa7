// Package analytics computes spending aggregates over one user's
// transactions. Every operation is pure: no I/O, inputs never mutated, and
// empty input yields an empty result rather than an error.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/entity"
)

// CategorySpend is one category's total, ordered by spend.
type CategorySpend struct {
	Category constants.Category
	Total    decimal.Decimal
}

// MonthSpend is one calendar month's total. Month uses the YYYY-MM key.
type MonthSpend struct {
	Month string
	Total decimal.Decimal
}

// MerchantSpend is one counterparty's total.
type MerchantSpend struct {
	Merchant string
	Total    decimal.Decimal
}

// Years outside this window are data-quality errors, not real activity, and
// are excluded from the trend series.
const (
	minTrendYear = 2000
	maxTrendYear = 2100
)

// SpendingByCategory totals each category, descending by spend. Ties keep
// the order in which the categories were first encountered.
func SpendingByCategory(records []entity.Transaction) []CategorySpend {
	totals := make(map[constants.Category]decimal.Decimal)
	var order []constants.Category

	for _, tx := range records {
		if !tx.Amount.IsPositive() {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	out := make([]CategorySpend, 0, len(order))
	for _, cat := range order {
		out = append(out, CategorySpend{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// MonthlyTrend groups spend by calendar month, chronologically. Months with
// no transactions do not appear: the series is sparse, not zero-filled.
func MonthlyTrend(records []entity.Transaction) []MonthSpend {
	totals := make(map[string]decimal.Decimal)

	for _, tx := range records {
		if !tx.Amount.IsPositive() {
			continue
		}
		year := tx.Date.Year()
		if year < minTrendYear || year > maxTrendYear {
			continue
		}
		key := tx.Date.Format("2006-01")
		totals[key] = totals[key].Add(tx.Amount)
	}

	out := make([]MonthSpend, 0, len(totals))
	for month, total := range totals {
		out = append(out, MonthSpend{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}

// TopMerchants returns the n largest counterparties by total spend,
// descending, ties broken by encounter order of the merchant groups.
func TopMerchants(records []entity.Transaction, n int) []MerchantSpend {
	if n <= 0 {
		return []MerchantSpend{}
	}

	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, tx := range records {
		if !tx.Amount.IsPositive() {
			continue
		}
		if _, seen := totals[tx.Receiver]; !seen {
			order = append(order, tx.Receiver)
		}
		totals[tx.Receiver] = totals[tx.Receiver].Add(tx.Amount)
	}

	out := make([]MerchantSpend, 0, len(order))
	for _, merchant := range order {
		out = append(out, MerchantSpend{Merchant: merchant, Total: totals[merchant]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
