package categorize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
)

// Source tags how a categorization decision was reached.
type Source string

const (
	KeywordMatch       Source = "keyword_match"
	EnrichmentFallback Source = "enrichment_fallback"
	DefaultOther       Source = "default_other"
)

// Result is one categorization decision with its cleaned counterparty name.
type Result struct {
	Receiver string
	Category constants.Category
	Source   Source
}

// Enricher is the external capability that cleans a raw narration into a
// merchant name and category. rawText carries the surrounding evidence text
// when the caller has it, empty otherwise. Its output is untrusted and
// validated here.
type Enricher interface {
	Enrich(ctx context.Context, description string, amount decimal.Decimal, rawText string) (receiver, category string, err error)
}

// Chain is the two-tier strategy: keyword table first, enrichment on a miss,
// safe defaults when enrichment is absent or fails.
type Chain struct {
	enricher Enricher
	logger   *slog.Logger
}

func NewChain(enricher Enricher, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{enricher: enricher, logger: logger}
}

// Categorize resolves the category and receiver for a raw description.
// Never returns an error: enrichment failures degrade to defaults.
func (c *Chain) Categorize(ctx context.Context, description string, amount decimal.Decimal, rawText string) Result {
	if cat, ok := KeywordCategory(description); ok {
		return Result{
			Receiver: FallbackReceiver(description),
			Category: cat,
			Source:   KeywordMatch,
		}
	}

	if c.enricher == nil {
		return Result{
			Receiver: FallbackReceiver(description),
			Category: constants.Other,
			Source:   DefaultOther,
		}
	}

	receiver, category, err := c.enricher.Enrich(ctx, description, amount, rawText)
	if err != nil {
		c.logger.Warn("categorize.enrich.failed", "error", err)
		return Result{
			Receiver: FallbackReceiver(description),
			Category: constants.Uncategorized,
			Source:   DefaultOther,
		}
	}

	cat, ok := constants.Canonicalize(category)
	if !ok {
		cat = constants.Other
	}
	if receiver = strings.TrimSpace(receiver); receiver == "" {
		receiver = FallbackReceiver(description)
	}
	return Result{Receiver: receiver, Category: cat, Source: EnrichmentFallback}
}

// FallbackReceiver is the safe default counterparty name: the first 20
// characters of the raw description.
func FallbackReceiver(description string) string {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "Unknown"
	}
	runes := []rune(desc)
	if len(runes) > 20 {
		return strings.TrimSpace(string(runes[:20]))
	}
	return desc
}
