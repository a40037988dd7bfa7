package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/spendsense/spendsense/internal/analytics"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/export"
	repo "github.com/spendsense/spendsense/internal/repository"
)

func main() {
	xlsx := flag.Bool("xlsx", false, "also write an XLSX export of all transactions")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file", "error", err)
	}

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "spendreport [-xlsx] <user-id-uuid>")
		os.Exit(2)
	}
	userID, err := uuid.Parse(flag.Arg(0))
	if err != nil {
		logger.Error("invalid user id (must be UUID)", "arg", flag.Arg(0), "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		os.Exit(1)
	}
	defer repo.Close(db, logger)

	txRepo := repo.NewTransactionRepository(db, cfg.Database.Driver, logger)
	records, err := txRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("list transactions", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Transactions: %d\n\n", len(records))

	fmt.Println("Spending by category:")
	for _, c := range analytics.SpendingByCategory(records) {
		fmt.Printf("  %-14s ₹%s\n", c.Category, c.Total.StringFixed(2))
	}

	fmt.Println("\nMonthly trend:")
	for _, m := range analytics.MonthlyTrend(records) {
		fmt.Printf("  %s  ₹%s\n", m.Month, m.Total.StringFixed(2))
	}

	fmt.Println("\nTop merchants:")
	for _, m := range analytics.TopMerchants(records, 5) {
		fmt.Printf("  %-30s ₹%s\n", m.Merchant, m.Total.StringFixed(2))
	}

	// DB-stored ceilings win; the JSON file is the single-user fallback.
	budgetRepo := repo.NewBudgetRepository(db, cfg.Database.Driver, logger)
	limits, err := budgetRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("list budget limits", "error", err)
		os.Exit(1)
	}
	if len(limits) == 0 {
		if fromFile, ferr := repo.LoadBudgetLimits(cfg.Budget.LimitsPath, logger); ferr == nil {
			limits = fromFile
		}
	}

	report := analytics.BudgetAdherence(records, limits)
	fmt.Printf("\nBudget adherence: %s\n", report.State)
	for _, line := range report.Lines {
		fmt.Printf("  %-14s budget ₹%s, spent ₹%s  %s (%s)\n",
			line.Category,
			line.Budgeted.StringFixed(2),
			line.Spent.StringFixed(2),
			line.Status,
			line.Recommendation,
		)
	}

	if *xlsx {
		svc := export.NewService(txRepo, logger)
		out, err := svc.ExportTransactionsXLSX(ctx, userID)
		if err != nil {
			logger.Error("xlsx export", "error", err)
			os.Exit(1)
		}
		name := filepath.Join(cfg.Export.OutputDir,
			fmt.Sprintf("transactions-%s-%s.xlsx", userID, time.Now().Format("20060102")))
		if err := os.WriteFile(name, out, 0o644); err != nil {
			logger.Error("write xlsx", "path", name, "error", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", name)
	}
}
