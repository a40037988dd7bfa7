package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/spendsense/spendsense/internal/entity"
)

// TransactionLister is the slice of the repository the exporter needs.
type TransactionLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Transaction, error)
}

// Service produces XLSX bytes from a user's transaction history.
type Service struct {
	txs    TransactionLister
	logger *slog.Logger
}

func NewService(txs TransactionLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{txs: txs, logger: logger}
}

// ExportTransactionsXLSX returns an XLSX workbook (as bytes) with every
// transaction for the user, newest first, one row each.
func (s *Service) ExportTransactionsXLSX(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	start := time.Now()

	recs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Transactions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Time",
		"Amount (INR)",
		"Sender",
		"Receiver",
		"Category",
		"Transaction ID",
		"Confidence",
		"Corrected",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.DisplayDate())
		write(2, r.TimeOfDay)
		write(3, r.Amount.StringFixed(2))
		write(4, r.Sender)
		write(5, truncate(r.Receiver, 60))
		write(6, string(r.Category))
		if r.TransactionID != nil {
			write(7, *r.TransactionID)
		}
		write(8, r.AIConfidence)
		write(9, r.Corrected)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 8)  // time
	_ = f.SetColWidth(sheet, "C", "C", 14) // amount
	_ = f.SetColWidth(sheet, "D", "E", 28) // parties
	_ = f.SetColWidth(sheet, "F", "F", 16) // category
	_ = f.SetColWidth(sheet, "G", "G", 24) // reference

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
