package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/internal/analytics"
	"github.com/spendsense/spendsense/internal/entity"
)

// RecentTransaction is one line of the advisor's short history view.
type RecentTransaction struct {
	Date        string
	Description string
	Amount      string
	Category    string
}

// Context carries the precomputed financial picture injected into the chat
// collaborator's system prompt. Building it is pure data work; no model is
// invoked here.
type Context struct {
	TopCategories   []string
	SavingsRate     float64
	SpendingSummary string
	Liabilities     decimal.Decimal
	Recent          []RecentTransaction
}

// Guru is a named advisory philosophy the prompt is framed around.
type Guru struct {
	Name     string
	CoreIdea string
	Guidance string
}

var gurus = map[string]Guru{
	"Warren Buffett": {
		Name:     "Warren Buffett",
		CoreIdea: "Financial discipline, Value, and Patience",
		Guidance: "Do not save what is left after spending; spend what is left after saving. " +
			"Prioritize long-term financial stability and avoid unnecessary 'wants'.",
	},
	"Ramit Sethi": {
		Name:     "Ramit Sethi",
		CoreIdea: "Conscious Spending and Rich Life Philosophy",
		Guidance: "Spend extravagantly on the things you love, but cut costs mercilessly on " +
			"the things you don't. Focus on 'Big Wins' rather than just small change.",
	},
	"Robert Kiyosaki": {
		Name:     "Robert Kiyosaki",
		CoreIdea: "The Asset vs. Liability Distinction",
		Guidance: "Focus on acquiring income-generating assets and reducing bad debt (liabilities). " +
			"Stop spending money on things that drain your cash flow.",
	},
}

const recentWindow = 5

var liabilityKeywords = []string{"loan", "emi", "interest", "debt", "credit card payment", "mortgage"}

// BuildContext computes the advisor metrics from a user's transactions.
// Savings rate stays zero until income tracking exists; all stored rows are
// expenses.
func BuildContext(records []entity.Transaction) Context {
	ctx := Context{
		SpendingSummary: "No transaction data available yet.",
		Liabilities:     decimal.Zero,
	}
	if len(records) == 0 {
		return ctx
	}

	sorted := make([]entity.Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for _, tx := range sorted[:min(recentWindow, len(sorted))] {
		ctx.Recent = append(ctx.Recent, RecentTransaction{
			Date:        tx.DisplayDate(),
			Description: tx.Receiver,
			Amount:      "₹" + formatINR(tx.Amount),
			Category:    string(tx.Category),
		})
	}

	total := decimal.Zero
	for _, tx := range records {
		total = total.Add(tx.Amount)

		haystack := strings.ToLower(tx.Receiver + " " + string(tx.Category))
		for _, kw := range liabilityKeywords {
			if strings.Contains(haystack, kw) {
				ctx.Liabilities = ctx.Liabilities.Add(tx.Amount)
				break
			}
		}
	}

	byCategory := analytics.SpendingByCategory(records)
	for _, c := range byCategory {
		ctx.TopCategories = append(ctx.TopCategories, string(c.Category))
	}

	if len(byCategory) > 0 {
		ctx.SpendingSummary = fmt.Sprintf(
			"User spent a total of ₹%s. The highest expense was in '%s' at ₹%s.",
			formatINR(total), byCategory[0].Category, formatINR(byCategory[0].Total),
		)
	} else {
		ctx.SpendingSummary = "User has no expenses recorded."
	}
	return ctx
}

var principleThreshold = decimal.NewFromInt(5000)

// SelectPrinciple picks the advisory philosophy for the session. Heavy
// liabilities trump everything; lifestyle-heavy top categories pull in
// conscious-spending framing.
func SelectPrinciple(ctx Context) Guru {
	if ctx.Liabilities.GreaterThan(principleThreshold) {
		return gurus["Robert Kiyosaki"]
	}
	if ctx.SavingsRate < 20 {
		return gurus["Warren Buffett"]
	}
	top := ctx.TopCategories
	if len(top) > 3 {
		top = top[:3]
	}
	for _, cat := range top {
		switch cat {
		case "Shopping", "Entertainment", "Food":
			return gurus["Ramit Sethi"]
		}
	}
	return gurus["Warren Buffett"]
}

// formatINR renders a decimal with thousands separators and two places.
func formatINR(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
