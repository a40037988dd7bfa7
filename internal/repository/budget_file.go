package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/entity"
)

// LoadBudgetLimits reads category ceilings from a JSON file of the form
// {"Food": 3000, "Travel": 1500}. Unknown category labels are skipped, not
// fatal; the file is hand-edited.
func LoadBudgetLimits(path string, logger *slog.Logger) (entity.BudgetLimits, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}

	var doc map[string]json.Number
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode budget file: %w", err)
	}

	limits := entity.BudgetLimits{}
	for label, num := range doc {
		cat, ok := constants.Canonicalize(label)
		if !ok {
			logger.Warn("budget.file.unknown_category", "label", label)
			continue
		}
		limit, err := decimal.NewFromString(num.String())
		if err != nil || !limit.IsPositive() {
			logger.Warn("budget.file.bad_limit", "label", label, "value", num.String())
			continue
		}
		limits[cat] = limit
	}

	logger.Info("budget.file.loaded", "path", path, "categories", len(limits))
	return limits, nil
}
