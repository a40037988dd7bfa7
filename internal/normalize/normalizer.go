package normalize

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/categorize"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/entity"
	"github.com/spendsense/spendsense/internal/statement"
)

// Categorizer resolves a raw narration into a receiver and category.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal, rawText string) categorize.Result
}

// Normalizer turns raw statement rows and confirmed receipt fields into
// validated transactions. The positive-amount invariant is enforced here and
// nowhere else: anything non-numeric reduces to zero first, then zero and
// negative amounts are rejected.
type Normalizer struct {
	categorizer Categorizer
	logger      *slog.Logger
	now         func() time.Time
}

func New(categorizer Categorizer, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{categorizer: categorizer, logger: logger, now: time.Now}
}

// Statement rows carry a flat provenance score: the fields come straight out
// of the bank's own table, not from OCR.
const statementConfidence = 0.9

var currencyGlyphRe = regexp.MustCompile(`(?i)^(?:₹|rs\.?|inr)\s*`)

// CleanAmount reduces a raw cell to a numeric value. Thousands separators
// and currency glyphs are stripped; anything that still fails to parse is
// zero, which the caller's positive-amount check then rejects.
func CleanAmount(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	cleaned = currencyGlyphRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Decimal{}
	}
	val, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}
	}
	return val
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate resolves the accepted date encodings. Callers that persist
// substitute the current date on failure; preview callers keep the miss.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromRow normalizes one statement row. Returns false to skip the row when
// the amount fails the positive invariant; bulk import counts successes and
// moves on.
func (n *Normalizer) FromRow(ctx context.Context, userID uuid.UUID, row statement.Row) (entity.Transaction, bool) {
	amount := CleanAmount(row.Amount())
	if !amount.IsPositive() {
		n.logger.Debug("import.row.rejected", "reason", "non-positive amount", "raw", row.Amount())
		return entity.Transaction{}, false
	}

	date, ok := ParseDate(row.Date())
	if !ok {
		date = n.now()
		n.logger.Info("normalize.date.fallback", "raw", row.Date())
	}

	res := categorize.Result{
		Receiver: categorize.FallbackReceiver(row.Description()),
		Category: constants.Other,
		Source:   categorize.DefaultOther,
	}
	if n.categorizer != nil {
		res = n.categorizer.Categorize(ctx, row.Description(), amount, "")
	}

	var txnID *string
	if ref, found := row.Reference(); found {
		txnID = &ref
	}

	return entity.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Date:          date,
		TimeOfDay:     entity.DefaultTimeOfDay,
		Sender:        entity.DefaultSender,
		Receiver:      res.Receiver,
		TransactionID: txnID,
		Category:      res.Category,
		AIConfidence:  statementConfidence,
		Corrected:     false,
	}, true
}

// Confirmation is a user-reviewed candidate from the receipt preview flow.
type Confirmation struct {
	Amount        decimal.Decimal
	Date          string
	TimeOfDay     string
	Sender        string
	Receiver      string
	TransactionID string
	Category      string
	AIConfidence  float64
	Corrected     bool
}

// FromConfirmation validates an interactively confirmed transaction. Unlike
// the bulk path, failures surface a specific rejection reason.
func (n *Normalizer) FromConfirmation(userID uuid.UUID, c Confirmation) (entity.Transaction, error) {
	v := common.NewValidator().
		Field("amount", c.Amount, common.PositiveAmount).
		Field("receiver", c.Receiver, common.Required)
	if err := common.RejectInvalid(v); err != nil {
		return entity.Transaction{}, err
	}

	date, ok := ParseDate(c.Date)
	if !ok {
		date = n.now()
		n.logger.Info("normalize.date.fallback", "raw", c.Date)
	}

	timeOfDay := strings.TrimSpace(c.TimeOfDay)
	if timeOfDay == "" {
		timeOfDay = entity.DefaultTimeOfDay
	}
	sender := strings.TrimSpace(c.Sender)
	if sender == "" {
		sender = entity.DefaultSender
	}

	category, ok := constants.Canonicalize(c.Category)
	if !ok {
		category = constants.Other
	}

	var txnID *string
	if id := strings.TrimSpace(c.TransactionID); id != "" {
		txnID = &id
	}

	confidence := c.AIConfidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return entity.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        c.Amount,
		Date:          date,
		TimeOfDay:     timeOfDay,
		Sender:        sender,
		Receiver:      strings.TrimSpace(c.Receiver),
		TransactionID: txnID,
		Category:      category,
		AIConfidence:  confidence,
		Corrected:     c.Corrected,
	}, nil
}
