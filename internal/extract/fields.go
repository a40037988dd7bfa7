package extract

import (
	"regexp"
	"strings"
)

var (
	// Date and time come out of one match so they are never paired across
	// unrelated lines: "12 January 2025 ... 4:30 PM".
	dateTimeRe = regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]{3,}\s+\d{4}).*?(\d{1,2}:\d{2}\s*[APap][Mm])`)

	senderRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Debited\s+from|from)\s*[:\-]?\s*([A-Z][A-Za-z ]+)`),
		regexp.MustCompile(`(?i)(?:Sender|Payer)\s*[:\-]\s*([A-Z][A-Za-z ]+)`),
	}

	receiverRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Paid\s+to|to)\s+([A-Z][A-Za-z ]+)`),
		regexp.MustCompile(`(?i)(?:Receiver|Payee)\s*[:\-]\s*([A-Z][A-Za-z ]+)`),
	}

	transactionIDRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)UPI\s*(?:transaction|txn)\s*ID\s*[:\s-]*([0-9A-Za-z]{8,})`),
		regexp.MustCompile(`(?i)(?:Ref\s*No|Reference\s*ID|Txn\s*ID|Order\s*ID|Transaction\s*ID)\s*[:\s-]*([0-9A-Za-z]{8,})`),
	}
)

// ExtractDateTime returns the transaction date and clock time as an atomic
// pair. Both are absent when the combined pattern does not match.
func ExtractDateTime(text string) (date string, timeOfDay string, found bool) {
	m := dateTimeRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func firstLabelMatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// ExtractSender finds the paying party named after a debit label.
func ExtractSender(text string) (string, bool) {
	return firstLabelMatch(text, senderRes)
}

// ExtractReceiver finds the counterparty named after a payment label.
func ExtractReceiver(text string) (string, bool) {
	return firstLabelMatch(text, receiverRes)
}

// ExtractTransactionID finds a labelled external reference of at least
// eight alphanumerics.
func ExtractTransactionID(text string) (string, bool) {
	return firstLabelMatch(text, transactionIDRes)
}

// Parse runs every field extractor over the raw OCR text and scores each
// result against the context it was found in.
func Parse(text string) Fields {
	var f Fields

	if amount, ok := ExtractAmount(text); ok {
		f.Amount = AmountField{Value: amount, Found: true}
	}
	f.Amount.Confidence = ScoreAmount(f.Amount, text)

	if date, timeOfDay, ok := ExtractDateTime(text); ok {
		f.Date = StringField{Value: date, Found: true}
		f.TimeOfDay = StringField{Value: timeOfDay, Found: true}
	}
	f.Date.Confidence = Score(FieldDate, f.Date.Found, text)
	f.TimeOfDay.Confidence = Score(FieldTime, f.TimeOfDay.Found, text)

	if sender, ok := ExtractSender(text); ok {
		f.Sender = StringField{Value: sender, Found: true}
	}
	f.Sender.Confidence = Score(FieldSender, f.Sender.Found, text)

	if receiver, ok := ExtractReceiver(text); ok {
		f.Receiver = StringField{Value: receiver, Found: true}
	}
	f.Receiver.Confidence = Score(FieldReceiver, f.Receiver.Found, text)

	if id, ok := ExtractTransactionID(text); ok {
		f.TransactionID = StringField{Value: id, Found: true}
	}
	f.TransactionID.Confidence = Score(FieldTransactionID, f.TransactionID.Found, text)

	return f
}
