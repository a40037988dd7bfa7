package entity

import (
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
)

// BudgetLimits maps a category to its monthly spending ceiling.
type BudgetLimits map[constants.Category]decimal.Decimal
