package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/categorize"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/llm"
	"github.com/spendsense/spendsense/internal/llm/openai"
	"github.com/spendsense/spendsense/internal/normalize"
	"github.com/spendsense/spendsense/internal/ocr"
	"github.com/spendsense/spendsense/internal/pipeline"
	repo "github.com/spendsense/spendsense/internal/repository"
)

func main() {
	yes := flag.Bool("y", false, "save without the interactive prompt")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file", "error", err)
	}

	if flag.NArg() != 2 {
		logger.Error("usage", "cmd", "scanreceipt [-y] <user-id-uuid> <image-path>")
		os.Exit(2)
	}
	userID, err := uuid.Parse(flag.Arg(0))
	if err != nil {
		logger.Error("invalid user id (must be UUID)", "arg", flag.Arg(0), "error", err)
		os.Exit(2)
	}
	imagePath := flag.Arg(1)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		os.Exit(1)
	}
	defer repo.Close(db, logger)

	ocrx := ocr.NewExtractor(ocr.Config{
		ServiceURL:  cfg.OCR.ServiceURL,
		APIKey:      cfg.OCR.APIKey,
		TessdataDir: cfg.OCR.TessdataDir,
		Timeout:     cfg.OCR.Timeout,
	}, logger)

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

	p := pipeline.NewReceiptPipeline(ocrx, chain, normalizer, txRepo, logger)

	preview, err := p.Preview(ctx, imagePath)
	if err != nil {
		logger.Error("scan failed", "path", imagePath, "error", err)
		os.Exit(1)
	}

	printPreview(preview)

	if !*yes && !promptYes("Save this transaction? [y/N] ") {
		fmt.Println("Discarded.")
		return
	}

	tx, err := p.Confirm(ctx, userID, preview.Suggested())
	if err != nil {
		logger.Error("confirm failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Saved transaction %s: ₹%s to %s (%s)\n",
		tx.ID, tx.Amount.StringFixed(2), tx.Receiver, tx.Category)
}

func printPreview(p pipeline.ReceiptPreview) {
	field := func(label, value string, found bool, conf float64) {
		if !found {
			fmt.Printf("  %-15s (not found)\n", label+":")
			return
		}
		fmt.Printf("  %-15s %s  [confidence %.2f]\n", label+":", value, conf)
	}

	fmt.Println("Extracted receipt fields:")
	amt := p.Fields.Amount
	field("Amount", "₹"+amt.Value.StringFixed(2), amt.Found, amt.Confidence)
	field("Date", p.Fields.Date.Value, p.Fields.Date.Found, p.Fields.Date.Confidence)
	field("Time", p.Fields.TimeOfDay.Value, p.Fields.TimeOfDay.Found, p.Fields.TimeOfDay.Confidence)
	field("Sender", p.Fields.Sender.Value, p.Fields.Sender.Found, p.Fields.Sender.Confidence)
	field("Receiver", p.Receiver, p.Receiver != "", p.Fields.Receiver.Confidence)
	field("Transaction ID", p.Fields.TransactionID.Value, p.Fields.TransactionID.Found, p.Fields.TransactionID.Confidence)
	fmt.Printf("  %-15s %s\n", "Category:", p.Category)
	fmt.Printf("  %-15s %.2f\n", "OCR confidence:", p.OCRConfidence)
}

func promptYes(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
