package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FieldType identifies which extractor produced a value, for scoring.
type FieldType string

const (
	FieldAmount        FieldType = "amount"
	FieldSender        FieldType = "sender"
	FieldReceiver      FieldType = "receiver"
	FieldDate          FieldType = "date"
	FieldTime          FieldType = "time"
	FieldTransactionID FieldType = "transaction_id"
)

var (
	smallReceiptCeiling = decimal.NewFromInt(10_000)
	typicalCeiling      = decimal.NewFromInt(5_000)
)

// ScoreAmount rates extraction certainty for an amount given the text it
// came from. A currency anchor in the context and a value inside the typical
// small-receipt range both raise the score; values outside [1, 10000] fall
// back to the low base.
func ScoreAmount(field AmountField, rawText string) float64 {
	if !field.Found {
		return 0.0
	}
	lower := strings.ToLower(rawText)
	anchored := strings.Contains(rawText, "₹") ||
		strings.Contains(lower, "rs") ||
		strings.Contains(lower, "inr")

	if field.Value.GreaterThanOrEqual(decimal.NewFromInt(1)) &&
		field.Value.LessThanOrEqual(smallReceiptCeiling) {
		small := field.Value.LessThanOrEqual(typicalCeiling)
		if anchored {
			if small {
				return 0.85
			}
			return 0.75
		}
		if small {
			return 0.65
		}
		return 0.55
	}
	return 0.3
}

// Score rates extraction certainty for the non-amount fields. Absent values
// always score zero; otherwise the presence of a strong label phrase in the
// context decides between the high and low score for the field type.
func Score(fieldType FieldType, found bool, rawText string) float64 {
	if !found {
		return 0.0
	}
	lower := strings.ToLower(rawText)

	switch fieldType {
	case FieldReceiver:
		if strings.Contains(lower, "paid to") || strings.Contains(lower, "to ") {
			return 0.8
		}
		return 0.5
	case FieldSender:
		if strings.Contains(lower, "debited from") || strings.Contains(lower, "from ") {
			return 0.8
		}
		return 0.5
	case FieldDate, FieldTime:
		return 0.75
	case FieldTransactionID:
		if strings.Contains(lower, "upi transaction id") || strings.Contains(lower, "upi txn id") {
			return 0.85
		}
		return 0.4
	}
	return 0.5
}
