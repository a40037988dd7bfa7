package categorize

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
)

type stubEnricher struct {
	receiver string
	category string
	err      error
	calls    int
	lastRaw  string
}

func (s *stubEnricher) Enrich(_ context.Context, _ string, _ decimal.Decimal, rawText string) (string, string, error) {
	s.calls++
	s.lastRaw = rawText
	return s.receiver, s.category, s.err
}

func TestKeywordCategory(t *testing.T) {
	tests := []struct {
		desc  string
		want  constants.Category
		found bool
	}{
		{"UPI/DR/ZOMATO ONLINE", constants.Food, true},
		{"IRCTC TICKET BOOKING", constants.Travel, true},
		{"AMAZON PAY INDIA", constants.Shopping, true},
		{"AIRTEL PREPAID RECHARGE", constants.Bills, true},
		{"APOLLO PHARMACY", constants.Health, true},
		{"NETFLIX SUBSCRIPTION", constants.Entertainment, true},
		{"NEFT TRANSFER XY", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, found := KeywordCategory(tt.desc)
			if found != tt.found || got != tt.want {
				t.Errorf("KeywordCategory(%q) = (%s, %v), want (%s, %v)", tt.desc, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestChainKeywordTierSkipsEnricher(t *testing.T) {
	enricher := &stubEnricher{receiver: "Should Not Matter", category: "Travel"}
	chain := NewChain(enricher, nil)

	res := chain.Categorize(context.Background(), "STARBUCKS COFFEE 1234", decimal.NewFromInt(450), "")
	if res.Source != KeywordMatch || res.Category != constants.Food {
		t.Errorf("result = %+v, want keyword match on Food", res)
	}
	if enricher.calls != 0 {
		t.Error("keyword hit must not invoke the enricher")
	}
}

func TestChainEnrichmentFallback(t *testing.T) {
	enricher := &stubEnricher{receiver: "Pavneet", category: "Transfer"}
	chain := NewChain(enricher, nil)

	res := chain.Categorize(context.Background(), "UPI/DR/5701/PAVNEET/SBIN", decimal.NewFromInt(900), "")
	if res.Source != EnrichmentFallback {
		t.Fatalf("source = %s", res.Source)
	}
	if res.Receiver != "Pavneet" || res.Category != constants.Transfer {
		t.Errorf("result = %+v", res)
	}
}

func TestChainForwardsRawText(t *testing.T) {
	enricher := &stubEnricher{receiver: "Pavneet", category: "Transfer"}
	chain := NewChain(enricher, nil)

	raw := "Paid to Pavneet\nRs. 900\nUPI Transaction ID 417"
	chain.Categorize(context.Background(), "UPI/DR/5701/PAVNEET/SBIN", decimal.NewFromInt(900), raw)
	if enricher.lastRaw != raw {
		t.Errorf("raw text = %q, want the surrounding evidence text", enricher.lastRaw)
	}
}

func TestChainInvalidEnrichmentCategoryCoerced(t *testing.T) {
	enricher := &stubEnricher{receiver: "Somewhere", category: "Cryptocurrency"}
	chain := NewChain(enricher, nil)

	res := chain.Categorize(context.Background(), "NEFT XYZ", decimal.NewFromInt(100), "")
	if res.Category != constants.Other {
		t.Errorf("category = %s, answers outside the enumeration must coerce to Other", res.Category)
	}
}

func TestChainEnrichmentFailure(t *testing.T) {
	enricher := &stubEnricher{err: errors.New("model unavailable")}
	chain := NewChain(enricher, nil)

	res := chain.Categorize(context.Background(), "UPI/DR/570198765432/SOME VERY LONG NARRATION", decimal.NewFromInt(100), "")
	if res.Source != DefaultOther || res.Category != constants.Uncategorized {
		t.Errorf("result = %+v, want uncategorized default", res)
	}
	if res.Receiver != "UPI/DR/570198765432/" {
		t.Errorf("receiver = %q, want first 20 characters of description", res.Receiver)
	}
}

func TestChainNoEnricher(t *testing.T) {
	chain := NewChain(nil, nil)

	res := chain.Categorize(context.Background(), "NEFT XYZ", decimal.NewFromInt(100), "")
	if res.Source != DefaultOther || res.Category != constants.Other {
		t.Errorf("result = %+v, want plain Other default", res)
	}
}
