package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/entity"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "db", "migrations", "0001_init.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	return db
}

func sampleTx(userID uuid.UUID, date, amount string, cat constants.Category) *entity.Transaction {
	d := decimal.RequireFromString(amount)
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &entity.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Amount:       d,
		Date:         t,
		TimeOfDay:    entity.DefaultTimeOfDay,
		Sender:       entity.DefaultSender,
		Receiver:     "Fresh Mart",
		Category:     cat,
		AIConfidence: 0.9,
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db, "sqlite", nil)
	ctx := context.Background()
	userID := uuid.New()

	ref := "REF00000042"
	tx := sampleTx(userID, "2025-03-12", "1250.50", constants.Groceries)
	tx.TransactionID = &ref
	if err := repo.Insert(ctx, tx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d", len(got))
	}
	out := got[0]
	if !out.Amount.Equal(tx.Amount) {
		t.Errorf("amount = %s, want %s", out.Amount, tx.Amount)
	}
	if out.StorageDate() != "2025-03-12" {
		t.Errorf("date = %s", out.StorageDate())
	}
	if out.TransactionID == nil || *out.TransactionID != ref {
		t.Errorf("transaction_ref = %v", out.TransactionID)
	}
	if out.Category != constants.Groceries {
		t.Errorf("category = %s", out.Category)
	}
	if out.AIConfidence != 0.9 {
		t.Errorf("ai_confidence = %v", out.AIConfidence)
	}
}

func TestListByUserOrdersByDateDesc(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db, "sqlite", nil)
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"2025-01-15", "2025-03-01", "2025-02-10"} {
		if err := repo.Insert(ctx, sampleTx(userID, date, "100", constants.Food)); err != nil {
			t.Fatalf("insert %s: %v", date, err)
		}
	}
	// another user's rows must not leak in
	if err := repo.Insert(ctx, sampleTx(uuid.New(), "2025-03-02", "999", constants.Food)); err != nil {
		t.Fatalf("insert other user: %v", err)
	}

	got, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d", len(got))
	}
	want := []string{"2025-03-01", "2025-02-10", "2025-01-15"}
	for i, tx := range got {
		if tx.StorageDate() != want[i] {
			t.Errorf("row %d date = %s, want %s", i, tx.StorageDate(), want[i])
		}
	}
}

func TestDeleteByIDAndUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db, "sqlite", nil)
	ctx := context.Background()
	userID := uuid.New()

	tx := sampleTx(userID, "2025-03-12", "100", constants.Food)
	if err := repo.Insert(ctx, tx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// wrong owner must not delete
	if err := repo.DeleteByIDAndUser(ctx, tx.ID, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("cross-user delete err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteByIDAndUser(ctx, tx.ID, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByIDAndUser(ctx, tx.ID, userID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestBudgetUpsertAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewBudgetRepository(db, "sqlite", nil)
	ctx := context.Background()
	userID := uuid.New()

	if err := repo.Upsert(ctx, userID, constants.Food, decimal.RequireFromString("3000")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// second upsert replaces the ceiling
	if err := repo.Upsert(ctx, userID, constants.Food, decimal.RequireFromString("2500")); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if err := repo.Upsert(ctx, userID, constants.Travel, decimal.RequireFromString("1500")); err != nil {
		t.Fatalf("upsert travel: %v", err)
	}

	limits, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limits) != 2 {
		t.Fatalf("limits = %d", len(limits))
	}
	if !limits[constants.Food].Equal(decimal.RequireFromString("2500")) {
		t.Errorf("food limit = %s", limits[constants.Food])
	}
}

func TestRebind(t *testing.T) {
	in := "SELECT a FROM t WHERE x = ? AND y = ?"
	if got := rebind("sqlite", in); got != in {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
	want := "SELECT a FROM t WHERE x = $1 AND y = $2"
	if got := rebind("pgx", in); got != want {
		t.Errorf("pgx rebind = %q, want %q", got, want)
	}
}

func TestLoadBudgetLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_limit.json")
	doc := `{"Food": 3000, "travel": 1500.50, "Savings": 900, "Bills": -10}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	limits, err := LoadBudgetLimits(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(limits) != 2 {
		t.Fatalf("limits = %v", limits)
	}
	if !limits[constants.Food].Equal(decimal.RequireFromString("3000")) {
		t.Errorf("food = %s", limits[constants.Food])
	}
	if !limits[constants.Travel].Equal(decimal.RequireFromString("1500.5")) {
		t.Errorf("travel = %s", limits[constants.Travel])
	}
}

func TestLoadBudgetLimitsMissingFile(t *testing.T) {
	if _, err := LoadBudgetLimits(filepath.Join(t.TempDir(), "nope.json"), nil); err == nil {
		t.Error("expected read error")
	}
}
