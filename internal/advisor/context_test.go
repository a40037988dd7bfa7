package advisor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/entity"
)

func tx(day int, receiver, amount string, cat constants.Category) entity.Transaction {
	return entity.Transaction{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Date:     time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		Receiver: receiver,
		Category: cat,
	}
}

func TestBuildContextEmpty(t *testing.T) {
	ctx := BuildContext(nil)
	if ctx.SpendingSummary != "No transaction data available yet." {
		t.Errorf("summary = %q", ctx.SpendingSummary)
	}
	if len(ctx.Recent) != 0 || len(ctx.TopCategories) != 0 {
		t.Error("empty input must yield empty context")
	}
}

func TestBuildContextMetrics(t *testing.T) {
	records := []entity.Transaction{
		tx(1, "Zomato", "500", constants.Food),
		tx(2, "Home Loan EMI", "12000", constants.Bills),
		tx(3, "Big Bazaar", "1500.50", constants.Shopping),
		tx(4, "Uber", "300", constants.Travel),
		tx(5, "Netflix", "649", constants.Entertainment),
		tx(6, "Swiggy", "450", constants.Food),
	}

	ctx := BuildContext(records)

	if len(ctx.Recent) != 5 {
		t.Fatalf("recent = %d, want 5", len(ctx.Recent))
	}
	// newest first
	if ctx.Recent[0].Description != "Swiggy" || ctx.Recent[0].Date != "06-03-2025" {
		t.Errorf("recent[0] = %+v", ctx.Recent[0])
	}
	if ctx.Recent[0].Amount != "₹450.00" {
		t.Errorf("recent amount = %q", ctx.Recent[0].Amount)
	}

	// "EMI" in the receiver marks the loan payment as a liability
	if !ctx.Liabilities.Equal(decimal.RequireFromString("12000")) {
		t.Errorf("liabilities = %s", ctx.Liabilities)
	}

	if len(ctx.TopCategories) == 0 || ctx.TopCategories[0] != "Bills" {
		t.Errorf("top categories = %v", ctx.TopCategories)
	}
	want := "User spent a total of ₹15,399.50. The highest expense was in 'Bills' at ₹12,000.00."
	if ctx.SpendingSummary != want {
		t.Errorf("summary = %q, want %q", ctx.SpendingSummary, want)
	}
	if ctx.SavingsRate != 0 {
		t.Errorf("savings rate = %v, want placeholder 0", ctx.SavingsRate)
	}
}

func TestSelectPrinciple(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{
			"heavy liabilities pick Kiyosaki",
			Context{Liabilities: decimal.RequireFromString("5000.01"), SavingsRate: 50},
			"Robert Kiyosaki",
		},
		{
			"low savings rate picks Buffett",
			Context{Liabilities: decimal.Zero, SavingsRate: 0, TopCategories: []string{"Shopping"}},
			"Warren Buffett",
		},
		{
			"lifestyle categories pick Sethi",
			Context{Liabilities: decimal.Zero, SavingsRate: 35, TopCategories: []string{"Travel", "Entertainment", "Bills"}},
			"Ramit Sethi",
		},
		{
			"lifestyle outside top three ignored",
			Context{Liabilities: decimal.Zero, SavingsRate: 35, TopCategories: []string{"Travel", "Bills", "Rent", "Food"}},
			"Warren Buffett",
		},
		{
			"default Buffett",
			Context{Liabilities: decimal.Zero, SavingsRate: 35},
			"Warren Buffett",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectPrinciple(tt.ctx); got.Name != tt.want {
				t.Errorf("guru = %s, want %s", got.Name, tt.want)
			}
			if got := SelectPrinciple(tt.ctx); got.CoreIdea == "" || got.Guidance == "" {
				t.Error("guru text must be populated")
			}
		})
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999.5", "999.50"},
		{"1250.5", "1,250.50"},
		{"1234567.89", "1,234,567.89"},
		{"-1500", "-1,500.00"},
	}
	for _, tt := range tests {
		if got := formatINR(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("formatINR(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
