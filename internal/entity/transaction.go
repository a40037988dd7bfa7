package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
)

// Transaction is the normalized unit of record for both receipt scans and
// statement imports. Date carries the transaction day only; TimeOfDay keeps
// the original clock string when the evidence had one.
type Transaction struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	Amount        decimal.Decimal    `json:"amount"`
	Date          time.Time          `json:"date"`
	TimeOfDay     string             `json:"time_of_day"`
	Sender        string             `json:"sender"`
	Receiver      string             `json:"receiver"`
	TransactionID *string            `json:"transaction_id,omitempty"`
	Category      constants.Category `json:"category"`
	AIConfidence  float64            `json:"ai_confidence"`
	Corrected     bool               `json:"corrected"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Defaults used when the evidence does not carry the field.
const (
	DefaultSender    = "Self"
	DefaultReceiver  = "Unknown"
	DefaultTimeOfDay = "00:00"
)

// StorageDate is the canonical persisted encoding of the transaction date.
func (t *Transaction) StorageDate() string {
	return t.Date.Format("2006-01-02")
}

// DisplayDate is the user-facing encoding shown in previews and reports.
func (t *Transaction) DisplayDate() string {
	return t.Date.Format("02-01-2006")
}
