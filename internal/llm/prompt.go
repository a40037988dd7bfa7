package llm

import (
	"strings"
)

// maxContextChars bounds how much raw evidence text goes into the prompt.
const maxContextChars = 200

// BuildSystemPrompt composes the system message with the category enum and
// strict-but-practical formatting rules.
func BuildSystemPrompt(allowedCategories []string) string {
	var catLine string
	if len(allowedCategories) > 0 {
		catLine = "You MUST include a 'category' and it MUST be exactly one of the allowed enum. " +
			"If uncertain, choose 'Other'. Allowed categories (enum): " + strings.Join(allowedCategories, ", ") + ". "
	} else {
		catLine = "You MUST include a 'category' that is a short, sensible label. If uncertain, use 'Other'. "
	}

	parts := []string{
		"You are a transaction enricher for Indian bank and UPI records. Return ONLY JSON that matches the JSON Schema provided.",
		"Extract the cleanest possible receiver/merchant name: remove UPI IDs, bank codes, dates, and prefixes like UPI/DR/.",
		`Example: "UPI/DR/5701.../PAVNEET/SBIN..." -> "Pavneet". Example: "Pos/Starbucks/12345" -> "Starbucks".`,
		catLine,
		"If the transaction is a personal transfer, use the category Transfer.",
		"Never output null. Never add keys beyond the schema.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt renders the transaction under enrichment.
func BuildUserPrompt(req EnrichRequest) string {
	var b strings.Builder
	b.WriteString("Transaction description: ")
	b.WriteString(req.Description)
	b.WriteString("\nAmount: ")
	b.WriteString(req.Amount.String())
	if ctx := strings.TrimSpace(req.Context); ctx != "" {
		b.WriteString("\nSurrounding text: ")
		if len(ctx) > maxContextChars {
			b.WriteString(ctx[:maxContextChars])
		} else {
			b.WriteString(ctx)
		}
	}
	return b.String()
}
