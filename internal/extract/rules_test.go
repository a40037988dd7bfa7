package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "currency anchored with separators",
			text:  "Total Rs. 1,250.50",
			want:  "1250.50",
			found: true,
		},
		{
			name:  "currency anchored picks maximum of the lines",
			text:  "Subtotal Rs 400\nTax Rs 72\nTotal Rs 472",
			want:  "472",
			found: true,
		},
		{
			name:  "rupee glyph",
			text:  "₹ 50,000 debited",
			want:  "50000",
			found: true,
		},
		{
			name:  "currency anchor beats larger bare number",
			text:  "Rs 120\n99999",
			want:  "120",
			found: true,
		},
		{
			name:  "label anchored when no currency marker",
			text:  "Amount: 340\nsomething else",
			want:  "340",
			found: true,
		},
		{
			name:  "label anchored skips year literal",
			text:  "Total 2025\nPaid 180",
			want:  "180",
			found: true,
		},
		{
			name:  "standalone inflated integer collapses",
			text:  "7950",
			want:  "95",
			found: true,
		},
		{
			name:  "standalone decimal kept as is",
			text:  "249.99",
			want:  "249.99",
			found: true,
		},
		{
			name:  "out of range integer not rescued by collapse",
			text:  "8999999",
			found: false,
		},
		{
			name:  "six digit overflow rejected outright",
			text:  "899999",
			found: false,
		},
		{
			name:  "bare year excluded",
			text:  "random text 2025",
			found: false,
		},
		{
			name:  "bare year with decimal is a price",
			text:  "2025.00",
			want:  "2025.00",
			found: true,
		},
		{
			name:  "out of range ignored",
			text:  "Rs 0.50",
			found: false,
		},
		{
			name:  "empty text",
			text:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractAmount(tt.text)
			if found != tt.found {
				t.Fatalf("found = %v, want %v (got %s)", found, tt.found, got)
			}
			if !tt.found {
				return
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("amount = %s, want %s", got, want)
			}
		})
	}
}

func TestExtractDateTime(t *testing.T) {
	date, timeOfDay, found := ExtractDateTime("Completed on 12 January 2025 at 4:30 PM")
	if !found {
		t.Fatal("expected a date/time match")
	}
	if date != "12 January 2025" {
		t.Errorf("date = %q", date)
	}
	if timeOfDay != "4:30 PM" {
		t.Errorf("time = %q", timeOfDay)
	}

	if _, _, found := ExtractDateTime("12 January 2025 with no clock"); found {
		t.Error("date without time must not match: the pair is atomic")
	}
	if _, _, found := ExtractDateTime("4:30 PM with no date"); found {
		t.Error("time without date must not match: the pair is atomic")
	}
}

func TestExtractSenderReceiver(t *testing.T) {
	text := "Debited from Ananya Sharma\nPaid to Fresh Mart Groceries\nUPI transaction ID 421998certainly"

	if sender, ok := ExtractSender(text); !ok || sender != "Ananya Sharma" {
		t.Errorf("sender = %q, ok = %v", sender, ok)
	}
	if receiver, ok := ExtractReceiver(text); !ok || receiver != "Fresh Mart Groceries" {
		t.Errorf("receiver = %q, ok = %v", receiver, ok)
	}
	if _, ok := ExtractSender("no labels here 123"); ok {
		t.Error("expected no sender")
	}
}

func TestExtractTransactionID(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"upi label", "UPI transaction ID: 512345678901", "512345678901", true},
		{"ref no label", "Ref No 98ABC76543", "98ABC76543", true},
		{"too short", "Txn ID 1234", "", false},
		{"no label", "512345678901", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractTransactionID(tt.text)
			if found != tt.found || got != tt.want {
				t.Errorf("got (%q, %v), want (%q, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}
