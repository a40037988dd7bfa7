package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amountField(v string) AmountField {
	return AmountField{Value: decimal.RequireFromString(v), Found: true}
}

func TestScoreAmount(t *testing.T) {
	tests := []struct {
		name  string
		field AmountField
		raw   string
		want  float64
	}{
		{"not found", AmountField{}, "Rs 100", 0.0},
		{"small with anchor", amountField("450"), "Paid Rs 450", 0.85},
		{"large with anchor", amountField("7500"), "₹7500 debited", 0.75},
		{"small without anchor", amountField("450"), "Paid 450", 0.65},
		{"large without anchor", amountField("7500"), "Amount 7500", 0.55},
		{"outside plausible range", amountField("150000"), "Rs 150000", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreAmount(tt.field, tt.raw); got != tt.want {
				t.Errorf("ScoreAmount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		fieldType FieldType
		found     bool
		raw       string
		want      float64
	}{
		{"absent always zero", FieldReceiver, false, "Paid to Store", 0.0},
		{"receiver with strong label", FieldReceiver, true, "Paid to Store", 0.8},
		{"receiver without label", FieldReceiver, true, "Store", 0.5},
		{"sender with strong label", FieldSender, true, "Debited from Account", 0.8},
		{"sender without label", FieldSender, true, "Account", 0.5},
		{"date matched", FieldDate, true, "12 January 2025", 0.75},
		{"time matched", FieldTime, true, "4:30 PM", 0.75},
		{"txn id with upi label", FieldTransactionID, true, "UPI transaction ID 12345678", 0.85},
		{"txn id plain label", FieldTransactionID, true, "Ref No 12345678", 0.4},
		{"unknown field type", FieldType("memo"), true, "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.fieldType, tt.found, tt.raw); got != tt.want {
				t.Errorf("Score(%s) = %v, want %v", tt.fieldType, got, tt.want)
			}
		})
	}
}

func TestParseFullReceipt(t *testing.T) {
	text := `Payment Successful
Paid to Fresh Mart Groceries
₹ 1,250.50
Debited from Ananya Sharma
12 January 2025 at 4:30 PM
UPI transaction ID 517398204461`

	f := Parse(text)

	if !f.Amount.Found || !f.Amount.Value.Equal(decimal.RequireFromString("1250.50")) {
		t.Errorf("amount = %s found=%v", f.Amount.Value, f.Amount.Found)
	}
	if f.Amount.Confidence != 0.85 {
		t.Errorf("amount confidence = %v, want 0.85", f.Amount.Confidence)
	}
	if f.Receiver.Value != "Fresh Mart Groceries" || f.Receiver.Confidence != 0.8 {
		t.Errorf("receiver = %+v", f.Receiver)
	}
	if f.Sender.Value != "Ananya Sharma" || f.Sender.Confidence != 0.8 {
		t.Errorf("sender = %+v", f.Sender)
	}
	if f.Date.Value != "12 January 2025" || f.TimeOfDay.Value != "4:30 PM" {
		t.Errorf("date/time = %+v / %+v", f.Date, f.TimeOfDay)
	}
	if f.TransactionID.Value != "517398204461" || f.TransactionID.Confidence != 0.85 {
		t.Errorf("transaction id = %+v", f.TransactionID)
	}
}

func TestParseEmptyText(t *testing.T) {
	f := Parse("")
	if f.Amount.Found || f.Date.Found || f.Sender.Found || f.Receiver.Found || f.TransactionID.Found {
		t.Errorf("expected no fields on empty text: %+v", f)
	}
	if f.Amount.Confidence != 0 || f.Date.Confidence != 0 {
		t.Error("absent fields must score zero")
	}
}
