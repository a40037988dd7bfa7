package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/categorize"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/entity"
	"github.com/spendsense/spendsense/internal/extract"
	"github.com/spendsense/spendsense/internal/normalize"
	"github.com/spendsense/spendsense/internal/ocr"
)

// TextExtractor produces raw text from a receipt image.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.Result, error)
}

// Categorizer resolves a receiver description into a category. rawText is
// the full evidence text the description came from.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal, rawText string) categorize.Result
}

// TransactionStore persists confirmed and imported transactions.
type TransactionStore interface {
	Insert(ctx context.Context, tx *entity.Transaction) error
}

// ReceiptPreview is the scan result shown to the user before confirmation.
// Nothing is persisted until the confirm step.
type ReceiptPreview struct {
	Fields        extract.Fields
	Category      constants.Category
	Receiver      string
	OCRText       string
	OCRConfidence float32
}

// Suggested prefills a confirmation from the extracted fields. Missing fields
// stay empty so the normalizer applies its defaults.
func (p ReceiptPreview) Suggested() normalize.Confirmation {
	c := normalize.Confirmation{
		Receiver: p.Receiver,
		Category: string(p.Category),
	}
	if p.Fields.Amount.Found {
		c.Amount = p.Fields.Amount.Value
		c.AIConfidence = p.Fields.Amount.Confidence
	}
	if p.Fields.Date.Found {
		c.Date = p.Fields.Date.Value
	}
	if p.Fields.TimeOfDay.Found {
		c.TimeOfDay = p.Fields.TimeOfDay.Value
	}
	if p.Fields.Sender.Found {
		c.Sender = p.Fields.Sender.Value
	}
	if p.Fields.TransactionID.Found {
		c.TransactionID = p.Fields.TransactionID.Value
	}
	return c
}

// ReceiptPipeline coordinates OCR, field extraction, and categorization for a
// single receipt image, then persists the user-confirmed result.
type ReceiptPipeline struct {
	ocr         TextExtractor
	categorizer Categorizer
	normalizer  *normalize.Normalizer
	store       TransactionStore
	logger      *slog.Logger
}

func NewReceiptPipeline(ocrx TextExtractor, cat Categorizer, norm *normalize.Normalizer, store TransactionStore, logger *slog.Logger) *ReceiptPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if norm == nil {
		norm = normalize.New(nil, logger)
	}
	return &ReceiptPipeline{ocr: ocrx, categorizer: cat, normalizer: norm, store: store, logger: logger}
}

// Preview OCRs the image and extracts fields without persisting anything.
// An image that yields no text at all fails with ErrOCRUnavailable; there is
// no retry, the caller decides whether to rescan.
func (p *ReceiptPipeline) Preview(ctx context.Context, path string) (ReceiptPreview, error) {
	start := time.Now()
	ctx, reqID := common.EnsureRequestID(ctx)

	res, err := p.ocr.Extract(ctx, path)
	if err != nil {
		return ReceiptPreview{}, fmt.Errorf("ocr: %w", err)
	}
	if strings.TrimSpace(res.Text) == "" {
		p.logger.Error("pipeline.ocr.empty", "path", path, "method", res.Method)
		return ReceiptPreview{}, common.ErrOCRUnavailable
	}
	p.logger.Info("pipeline.ocr.ok",
		"req_id", reqID,
		"path", path,
		"method", res.Method,
		"text_len", len(res.Text),
		"confidence", res.Confidence,
	)

	fields := extract.Parse(res.Text)

	preview := ReceiptPreview{
		Fields:        fields,
		Category:      constants.Other,
		OCRText:       res.Text,
		OCRConfidence: res.Confidence,
	}
	if fields.Receiver.Found {
		preview.Receiver = fields.Receiver.Value
	}

	// Categorization runs even without an extracted receiver: the raw text
	// stands in as the description so enrichment can still name the merchant.
	if p.categorizer != nil {
		desc := preview.Receiver
		if desc == "" {
			desc = res.Text
		}
		var amount decimal.Decimal
		if fields.Amount.Found {
			amount = fields.Amount.Value
		}
		cr := p.categorizer.Categorize(ctx, desc, amount, res.Text)
		preview.Category = cr.Category
		if cr.Receiver != "" {
			preview.Receiver = cr.Receiver
		}
	}

	p.logger.Info("pipeline.extract.ok",
		"req_id", reqID,
		"path", path,
		"amount_found", fields.Amount.Found,
		"receiver_found", fields.Receiver.Found,
		"category", string(preview.Category),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return preview, nil
}

// Confirm validates the user-reviewed fields and persists the transaction.
func (p *ReceiptPipeline) Confirm(ctx context.Context, userID uuid.UUID, c normalize.Confirmation) (entity.Transaction, error) {
	tx, err := p.normalizer.FromConfirmation(userID, c)
	if err != nil {
		return entity.Transaction{}, err
	}
	if err := p.store.Insert(ctx, &tx); err != nil {
		p.logger.Error("pipeline.confirm.store_failed", "user_id", userID, "error", err)
		return entity.Transaction{}, common.WrapError(err, "insert transaction")
	}
	p.logger.Info("pipeline.confirm.ok",
		"user_id", userID,
		"tx_id", tx.ID,
		"amount", tx.Amount.String(),
		"category", string(tx.Category),
	)
	return tx, nil
}
