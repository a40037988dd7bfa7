package llm

import (
	"context"

	"github.com/shopspring/decimal"
)

// Enrichment is the normalized shape we want from the model: a cleaned
// counterparty name and a category from the closed enumeration.
type Enrichment struct {
	Receiver string `json:"receiver"`
	Category string `json:"category"`
}

type EnrichRequest struct {
	Description string
	Amount      decimal.Decimal

	// Context carries surrounding raw text (e.g. full OCR output) when the
	// caller has it; it is truncated before prompting.
	Context string

	AllowedCategories []string
}

// Enricher is the interface the categorization chain depends on.
type Enricher interface {
	Enrich(ctx context.Context, req EnrichRequest) (Enrichment, []byte /*rawJSON*/, error)
}

// ChainEnricher narrows an Enricher to the two-string contract the
// categorize chain consumes.
type ChainEnricher struct {
	Inner      Enricher
	Categories []string
}

func (c ChainEnricher) Enrich(ctx context.Context, description string, amount decimal.Decimal, rawText string) (string, string, error) {
	out, _, err := c.Inner.Enrich(ctx, EnrichRequest{
		Description:       description,
		Amount:            amount,
		Context:           rawText,
		AllowedCategories: c.Categories,
	})
	if err != nil {
		return "", "", err
	}
	return out.Receiver, out.Category, nil
}
