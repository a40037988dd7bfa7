package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount extraction runs an ordered rule cascade. Each tier scans every line,
// collects candidates that pass its range check, and the first tier with any
// surviving candidate wins; within a tier the maximum candidate is returned.
// Receipts typically print subtotal, tax and total lines, and the largest
// anchored figure is the payable amount.

type amountRule struct {
	name     string
	match    func(line string) (decimal.Decimal, bool)
	min, max decimal.Decimal
	exclude  func(val decimal.Decimal, token string) bool
}

var (
	currencyAmountRe   = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)\s*([\d,]+\.?\d*)`)
	labelledAmountRe   = regexp.MustCompile(`(?i)(?:amount|total|paid|payable|bill)\s*[:\-\s]*([\d,]+\.?\d*)`)
	standaloneAmountRe = regexp.MustCompile(`^\d{1,7}(\.\d+)?\.?$`)
)

var (
	amountFloor     = decimal.NewFromInt(1)
	anchoredCeiling = decimal.NewFromInt(2_000_000)
	bareCeiling     = decimal.NewFromInt(500_000)
	yearLiteral     = decimal.NewFromInt(2025)
)

// bareYears are 4-digit tokens that alone on a line are almost always a
// printed calendar year, not a price, unless they carry a decimal point.
var bareYears = map[string]struct{}{
	"2023": {}, "2024": {}, "2025": {}, "2026": {},
}

func parseToken(token string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSuffix(strings.ReplaceAll(token, ",", ""), ".")
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	val, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return val, true
}

func matchCurrencyAnchored(line string) (decimal.Decimal, bool) {
	// Common OCR misreads on payment screenshots: check marks and the
	// letter O standing in for zero.
	clean := strings.NewReplacer("✔", "", "●", "", "O", "0").Replace(line)
	m := currencyAmountRe.FindStringSubmatch(clean)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseToken(m[1])
}

func matchLabelAnchored(line string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(strings.ReplaceAll(line, ",", ""))
	m := labelledAmountRe.FindStringSubmatch(clean)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseToken(m[1])
}

func matchStandalone(line string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(strings.ReplaceAll(line, ",", ""))
	if !standaloneAmountRe.MatchString(clean) {
		return decimal.Decimal{}, false
	}
	val, ok := parseToken(clean)
	if !ok {
		return decimal.Decimal{}, false
	}
	return collapseInflated(val, clean), true
}

// collapseInflated counters OCR digit-insertion: a currency glyph read as a
// leading 7/8/9 plus a lost decimal point turns "95.0" into "7950". When a
// bare integer over 999 starts with one of those digits, drop it and restore
// one decimal place, so "7950" reads as 95.0. Only a token that is itself a
// plausible bare amount qualifies; an out-of-range read stays as-is and the
// tier's range gate discards it.
func collapseInflated(val decimal.Decimal, token string) decimal.Decimal {
	if strings.Contains(token, ".") {
		return val
	}
	if val.LessThanOrEqual(decimal.NewFromInt(999)) || val.GreaterThan(bareCeiling) {
		return val
	}
	if len(token) < 3 || (token[0] != '7' && token[0] != '8' && token[0] != '9') {
		return val
	}
	collapsed, err := decimal.NewFromString(token[1:])
	if err != nil {
		return val
	}
	collapsed = collapsed.Shift(-1)
	if collapsed.LessThan(amountFloor) || collapsed.GreaterThan(bareCeiling) {
		return val
	}
	return collapsed
}

var amountRules = []amountRule{
	{
		name:  "currency-anchored",
		match: matchCurrencyAnchored,
		min:   amountFloor,
		max:   anchoredCeiling,
	},
	{
		name:  "label-anchored",
		match: matchLabelAnchored,
		min:   amountFloor,
		max:   anchoredCeiling,
		exclude: func(val decimal.Decimal, _ string) bool {
			return val.Equal(yearLiteral)
		},
	},
	{
		name:  "standalone",
		match: matchStandalone,
		min:   amountFloor,
		max:   bareCeiling,
		exclude: func(_ decimal.Decimal, token string) bool {
			if strings.Contains(token, ".") {
				return false
			}
			_, isYear := bareYears[token]
			return isYear
		},
	},
}

// ExtractAmount resolves the payable amount from raw receipt text.
// Returns false when no tier produces a plausible candidate.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	lines := nonEmptyLines(text)
	for _, rule := range amountRules {
		var candidates []decimal.Decimal
		for _, line := range lines {
			val, ok := rule.match(line)
			if !ok {
				continue
			}
			if val.LessThan(rule.min) || val.GreaterThan(rule.max) {
				continue
			}
			token := strings.TrimSpace(strings.ReplaceAll(line, ",", ""))
			if rule.exclude != nil && rule.exclude(val, token) {
				continue
			}
			candidates = append(candidates, val)
		}
		if len(candidates) > 0 {
			best := candidates[0]
			for _, c := range candidates[1:] {
				if c.GreaterThan(best) {
					best = c
				}
			}
			return best, true
		}
	}
	return decimal.Decimal{}, false
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
