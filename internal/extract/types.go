package extract

import "github.com/shopspring/decimal"

// StringField carries an extracted text value. Found distinguishes a real
// match from the not-found sentinel; Value is empty when Found is false.
type StringField struct {
	Value      string
	Found      bool
	Confidence float64
}

// AmountField carries an extracted monetary value.
type AmountField struct {
	Value      decimal.Decimal
	Found      bool
	Confidence float64
}

// Fields is the full set of candidate values pulled from one receipt's text.
type Fields struct {
	Amount        AmountField
	Date          StringField
	TimeOfDay     StringField
	Sender        StringField
	Receiver      StringField
	TransactionID StringField
}
