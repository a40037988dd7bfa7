package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/normalize"
	"github.com/spendsense/spendsense/internal/statement"
)

// TableExtractor pulls row-aligned tables out of a statement document.
type TableExtractor interface {
	ExtractTables(path string) ([]statement.RawTable, error)
}

// StatementPipeline imports every parseable row of a bank statement as a
// transaction. Malformed rows are skipped, never fatal; only infrastructure
// failures abort the import.
type StatementPipeline struct {
	extractor  TableExtractor
	parser     *statement.Parser
	normalizer *normalize.Normalizer
	store      TransactionStore
	logger     *slog.Logger
}

func NewStatementPipeline(ex TableExtractor, parser *statement.Parser, norm *normalize.Normalizer, store TransactionStore, logger *slog.Logger) *StatementPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = statement.NewParser(logger)
	}
	if norm == nil {
		norm = normalize.New(nil, logger)
	}
	return &StatementPipeline{extractor: ex, parser: parser, normalizer: norm, store: store, logger: logger}
}

// Import extracts, normalizes, and persists statement rows for one user.
// Returns the number of transactions actually inserted.
func (p *StatementPipeline) Import(ctx context.Context, userID uuid.UUID, path string) (int, error) {
	start := time.Now()
	ctx, reqID := common.EnsureRequestID(ctx)

	tables, err := p.extractor.ExtractTables(path)
	if err != nil {
		return 0, fmt.Errorf("extract tables: %w", err)
	}
	rows := p.parser.Parse(tables)

	imported := 0
	for _, row := range rows {
		tx, ok := p.normalizer.FromRow(ctx, userID, row)
		if !ok {
			continue
		}
		if err := p.store.Insert(ctx, &tx); err != nil {
			p.logger.Error("import.row.store_failed",
				"user_id", userID, "tx_id", tx.ID, "error", err)
			return imported, fmt.Errorf("insert transaction: %w", err)
		}
		imported++
	}

	p.logger.Info("import.ok",
		"req_id", reqID,
		"user_id", userID,
		"path", path,
		"rows", len(rows),
		"imported", imported,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return imported, nil
}
