package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/categorize"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/llm"
	"github.com/spendsense/spendsense/internal/llm/openai"
	"github.com/spendsense/spendsense/internal/normalize"
	"github.com/spendsense/spendsense/internal/pipeline"
	repo "github.com/spendsense/spendsense/internal/repository"
	"github.com/spendsense/spendsense/internal/statement"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file", "error", err)
	}

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "importstatement <user-id-uuid> <statement-pdf>")
		os.Exit(2)
	}
	userID, err := uuid.Parse(os.Args[1])
	if err != nil {
		logger.Error("invalid user id (must be UUID)", "arg", os.Args[1], "error", err)
		os.Exit(2)
	}
	pdfPath := os.Args[2]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		os.Exit(1)
	}
	defer repo.Close(db, logger)

	var enricher categorize.Enricher
	if cfg.LLM.APIKey != "" {
		client := openai.NewClient(openai.Config{
			APIKey:          cfg.LLM.APIKey,
			Model:           cfg.LLM.Model,
			Temperature:     cfg.LLM.Temperature,
			Timeout:         cfg.LLM.Timeout,
			LenientSanitize: true,
		}, logger)
		enricher = llm.ChainEnricher{Inner: client, Categories: constants.AsStringSlice()}
	}
	chain := categorize.NewChain(enricher, logger)
	normalizer := normalize.New(chain, logger)
	txRepo := repo.NewTransactionRepository(db, cfg.Database.Driver, logger)

	p := pipeline.NewStatementPipeline(
		statement.NewPDFExtractor(logger),
		statement.NewParser(logger),
		normalizer,
		txRepo,
		logger,
	)

	start := time.Now()
	count, err := p.Import(ctx, userID, pdfPath)
	if err != nil {
		logger.Error("import failed",
			"path", pdfPath, "imported", count,
			"elapsed_ms", time.Since(start).Milliseconds(), "error", err)
		os.Exit(1)
	}

	fmt.Printf("Statement processed. Imported %d transactions.\n", count)
}
