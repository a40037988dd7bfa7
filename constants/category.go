package constants

import (
	"strings"
)

type Category string

const (
	Food          Category = "Food"
	Travel        Category = "Travel"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Education     Category = "Education"
	Investment    Category = "Investment"
	Rent          Category = "Rent"
	Groceries     Category = "Groceries"
	Transfer      Category = "Transfer"
	Salary        Category = "Salary"
	Other         Category = "Other"
	// Uncategorized marks statement rows whose enrichment failed; the UI
	// treats it like Other but keeps the provenance visible.
	Uncategorized Category = "Uncategorized"
)

var allCategories = []Category{
	Food,
	Travel,
	Shopping,
	Bills,
	Entertainment,
	Health,
	Education,
	Investment,
	Rent,
	Groceries,
	Transfer,
	Salary,
	Other,
	Uncategorized,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"dining":         Food,
		"food & drinks":  Food,
		"restaurant":     Food,
		"transport":      Travel,
		"transportation": Travel,
		"commute":        Travel,
		"utilities":      Bills,
		"utility":        Bills,
		"recharge":       Bills,
		"medical":        Health,
		"healthcare":     Health,
		"grocery":        Groceries,
		"transfers":      Transfer,
		"income":         Salary,
		"wages":          Salary,
		"others":         Other,
		"misc":           Other,
		"miscellaneous":  Other,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
