package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/categorize"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/entity"
	"github.com/spendsense/spendsense/internal/normalize"
	"github.com/spendsense/spendsense/internal/ocr"
	"github.com/spendsense/spendsense/internal/statement"
)

type stubOCR struct {
	res ocr.Result
	err error
}

func (s stubOCR) Extract(context.Context, string) (ocr.Result, error) { return s.res, s.err }

type stubCategorizer struct {
	res      categorize.Result
	calls    int
	lastDesc string
	lastRaw  string
}

func (s *stubCategorizer) Categorize(_ context.Context, desc string, _ decimal.Decimal, rawText string) categorize.Result {
	s.calls++
	s.lastDesc = desc
	s.lastRaw = rawText
	return s.res
}

type memStore struct {
	inserted []entity.Transaction
	failAt   int // 1-based insert index that fails; 0 = never
}

func (m *memStore) Insert(_ context.Context, tx *entity.Transaction) error {
	if m.failAt > 0 && len(m.inserted)+1 == m.failAt {
		return errors.New("connection reset")
	}
	m.inserted = append(m.inserted, *tx)
	return nil
}

type stubTables struct {
	tables []statement.RawTable
	err    error
}

func (s stubTables) ExtractTables(string) ([]statement.RawTable, error) { return s.tables, s.err }

const receiptText = `Paid to Fresh Mart Groceries
Rs. 1,250.50
12 March 2025 at 10:42 AM
Debited from Ananya Sharma
UPI Transaction ID 417092837465
`

func TestPreviewExtractsAndCategorizes(t *testing.T) {
	cat := &stubCategorizer{res: categorize.Result{
		Receiver: "Fresh Mart Groceries",
		Category: constants.Groceries,
		Source:   categorize.KeywordMatch,
	}}
	p := NewReceiptPipeline(stubOCR{res: ocr.Result{Text: receiptText, Method: "remote-ocr", Confidence: 0.8}}, cat, nil, &memStore{}, nil)

	preview, err := p.Preview(context.Background(), "/tmp/receipt.jpg")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !preview.Fields.Amount.Found || !preview.Fields.Amount.Value.Equal(decimal.RequireFromString("1250.50")) {
		t.Errorf("amount = %+v", preview.Fields.Amount)
	}
	if preview.Category != constants.Groceries {
		t.Errorf("category = %s", preview.Category)
	}
	if preview.Receiver != "Fresh Mart Groceries" {
		t.Errorf("receiver = %q", preview.Receiver)
	}
	if cat.calls != 1 {
		t.Errorf("categorizer calls = %d", cat.calls)
	}
	if cat.lastRaw != receiptText {
		t.Errorf("raw text = %q, want the full scanned text", cat.lastRaw)
	}
}

func TestPreviewCategorizesWithoutReceiver(t *testing.T) {
	text := "Rs. 499.00\n12 March 2025 at 10:42 AM\n"
	cat := &stubCategorizer{res: categorize.Result{
		Receiver: "Fresh Mart",
		Category: constants.Groceries,
		Source:   categorize.EnrichmentFallback,
	}}
	p := NewReceiptPipeline(stubOCR{res: ocr.Result{Text: text}}, cat, nil, &memStore{}, nil)

	preview, err := p.Preview(context.Background(), "/tmp/receipt.jpg")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if cat.calls != 1 {
		t.Fatalf("categorizer calls = %d, missing receiver must not skip categorization", cat.calls)
	}
	if cat.lastDesc != text || cat.lastRaw != text {
		t.Errorf("description = %q, raw = %q, want the raw text fallback", cat.lastDesc, cat.lastRaw)
	}
	if preview.Receiver != "Fresh Mart" || preview.Category != constants.Groceries {
		t.Errorf("preview = %+v", preview)
	}
}

func TestPreviewEmptyTextFails(t *testing.T) {
	p := NewReceiptPipeline(stubOCR{res: ocr.Result{Text: "  \n\t "}}, nil, nil, &memStore{}, nil)

	_, err := p.Preview(context.Background(), "/tmp/blank.jpg")
	if !errors.Is(err, common.ErrOCRUnavailable) {
		t.Errorf("err = %v, want ErrOCRUnavailable", err)
	}
}

func TestPreviewOCRErrorPropagates(t *testing.T) {
	p := NewReceiptPipeline(stubOCR{err: errors.New("tesseract: exit 1")}, nil, nil, &memStore{}, nil)
	if _, err := p.Preview(context.Background(), "/tmp/x.jpg"); err == nil {
		t.Error("expected ocr error")
	}
}

func TestPreviewSuggestedConfirmation(t *testing.T) {
	p := NewReceiptPipeline(stubOCR{res: ocr.Result{Text: receiptText}}, nil, nil, &memStore{}, nil)

	preview, err := p.Preview(context.Background(), "/tmp/receipt.jpg")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	c := preview.Suggested()
	if !c.Amount.Equal(decimal.RequireFromString("1250.50")) {
		t.Errorf("amount = %s", c.Amount)
	}
	if c.Date != "12 March 2025" {
		t.Errorf("date = %q", c.Date)
	}
	if c.Sender != "Ananya Sharma" {
		t.Errorf("sender = %q", c.Sender)
	}
	if c.TransactionID != "417092837465" {
		t.Errorf("transaction id = %q", c.TransactionID)
	}
}

func TestConfirmPersists(t *testing.T) {
	store := &memStore{}
	p := NewReceiptPipeline(stubOCR{}, nil, nil, store, nil)
	userID := uuid.New()

	tx, err := p.Confirm(context.Background(), userID, normalize.Confirmation{
		Amount:       decimal.RequireFromString("420.00"),
		Date:         "2025-03-12",
		Receiver:     "Fresh Mart",
		Category:     "Groceries",
		AIConfidence: 0.85,
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted = %d", len(store.inserted))
	}
	if tx.UserID != userID || tx.Category != constants.Groceries {
		t.Errorf("tx = %+v", tx)
	}
}

func TestConfirmRejectsBadInput(t *testing.T) {
	store := &memStore{}
	p := NewReceiptPipeline(stubOCR{}, nil, nil, store, nil)

	_, err := p.Confirm(context.Background(), uuid.New(), normalize.Confirmation{
		Amount:   decimal.Zero,
		Receiver: "Fresh Mart",
	})
	var rej *common.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if len(store.inserted) != 0 {
		t.Error("nothing may be persisted on rejection")
	}
}

func statementTable(n int, mutate func(i int, row []string)) statement.RawTable {
	tbl := statement.RawTable{Header: []string{"Date", "Description", "Debit", "Ref No"}}
	for i := 0; i < n; i++ {
		row := []string{"2025-03-01", fmt.Sprintf("UPI/DR/%d/MERCHANT", i), "100.00", fmt.Sprintf("REF%08d", i)}
		if mutate != nil {
			mutate(i, row)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func TestImportSkipsBadRowsCountsGood(t *testing.T) {
	// rows 2, 5, 8 carry amounts that fail the positive invariant
	tbl := statementTable(10, func(i int, row []string) {
		switch i {
		case 2:
			row[2] = "0.00"
		case 5:
			row[2] = "N/A"
		case 8:
			row[2] = "-50.00"
		}
	})
	store := &memStore{}
	p := NewStatementPipeline(stubTables{tables: []statement.RawTable{tbl}}, nil, nil, store, nil)

	n, err := p.Import(context.Background(), uuid.New(), "/tmp/stmt.pdf")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 7 {
		t.Errorf("imported = %d, want 7", n)
	}
	if len(store.inserted) != 7 {
		t.Errorf("store rows = %d", len(store.inserted))
	}
	for _, tx := range store.inserted {
		if tx.AIConfidence != 0.9 {
			t.Errorf("statement confidence = %v", tx.AIConfidence)
		}
		if tx.Sender != entity.DefaultSender {
			t.Errorf("sender = %q", tx.Sender)
		}
	}
}

func TestImportStoreFailureAborts(t *testing.T) {
	store := &memStore{failAt: 3}
	p := NewStatementPipeline(stubTables{tables: []statement.RawTable{statementTable(5, nil)}}, nil, nil, store, nil)

	n, err := p.Import(context.Background(), uuid.New(), "/tmp/stmt.pdf")
	if err == nil {
		t.Fatal("expected store error")
	}
	if n != 2 {
		t.Errorf("imported before failure = %d, want 2", n)
	}
}

func TestImportExtractorError(t *testing.T) {
	p := NewStatementPipeline(stubTables{err: errors.New("pdf: damaged")}, nil, nil, &memStore{}, nil)
	if _, err := p.Import(context.Background(), uuid.New(), "/tmp/bad.pdf"); err == nil {
		t.Error("expected extractor error")
	}
}
