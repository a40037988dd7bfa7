package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/entity"
)

// BudgetState distinguishes an evaluated report from the two empty cases,
// which callers present differently.
type BudgetState string

const (
	BudgetEvaluated BudgetState = "Evaluated"
	BudgetNoData    BudgetState = "Data Empty"
	BudgetNoBudget  BudgetState = "Budget Missing"
)

const (
	StatusOnTrack    = "On Track"
	StatusOverBudget = "OVER BUDGET"
)

// BudgetLine compares one category's spend against its ceiling.
type BudgetLine struct {
	Category       constants.Category
	Budgeted       decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	Status         string
	Recommendation string
}

// BudgetReport is the full adherence result. Lines is empty unless State is
// BudgetEvaluated.
type BudgetReport struct {
	State BudgetState
	Lines []BudgetLine
}

// BudgetAdherence evaluates spending against the supplied ceilings. The
// budget map is authoritative for which categories are reported: budgeted
// categories without spend show zero, spend outside the budget is omitted.
// Lines come out sorted by category name so the report is deterministic.
func BudgetAdherence(records []entity.Transaction, limits entity.BudgetLimits) BudgetReport {
	if len(records) == 0 {
		return BudgetReport{State: BudgetNoData}
	}
	if len(limits) == 0 {
		return BudgetReport{State: BudgetNoBudget}
	}

	spent := make(map[constants.Category]decimal.Decimal)
	for _, tx := range records {
		if !tx.Amount.IsPositive() {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
	}

	categories := make([]constants.Category, 0, len(limits))
	for cat := range limits {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i] < categories[j]
	})

	lines := make([]BudgetLine, 0, len(categories))
	for _, cat := range categories {
		budgeted := limits[cat]
		spentAmount := spent[cat]
		remaining := budgeted.Sub(spentAmount)

		status := StatusOnTrack
		recommendation := fmt.Sprintf("Under budget by INR %s", remaining.StringFixed(2))
		if remaining.IsNegative() {
			status = StatusOverBudget
			recommendation = fmt.Sprintf("Over budget by INR %s", remaining.Abs().StringFixed(2))
		}

		lines = append(lines, BudgetLine{
			Category:       cat,
			Budgeted:       budgeted,
			Spent:          spentAmount,
			Remaining:      remaining,
			Status:         status,
			Recommendation: recommendation,
		})
	}
	return BudgetReport{State: BudgetEvaluated, Lines: lines}
}
