package statement

// Column-role reconciliation. Banks disagree on header vocabulary, so each
// role resolves through an ordered fallback list; the first present key wins.

var (
	dateKeys        = []string{"date", "txn date"}
	descriptionKeys = []string{"description", "particulars", "narration", "transaction reference", "details"}
	amountKeys      = []string{"debit", "withdrawal", "amount"}
	referenceKeys   = []string{"ref no", "cheque/ref no", "txn id", "ref.no./chq.no."}
)

// UnknownPlaceholder stands in for absent text roles.
const UnknownPlaceholder = "Unknown"

func (r Row) lookup(keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Date returns the raw date cell, or the Unknown placeholder which the
// normalizer turns into its explicit now-fallback.
func (r Row) Date() string {
	if v, ok := r.lookup(dateKeys); ok {
		return v
	}
	return UnknownPlaceholder
}

// Description returns the free-text narration used for enrichment.
func (r Row) Description() string {
	if v, ok := r.lookup(descriptionKeys); ok {
		return v
	}
	return UnknownPlaceholder
}

// Amount returns the raw debit cell; "0" when absent, which the normalizer
// rejects through the positive-amount invariant.
func (r Row) Amount() string {
	if v, ok := r.lookup(amountKeys); ok {
		return v
	}
	return "0"
}

// Reference returns the external reference id. Absent references stay
// absent; they are persisted as null, never as a placeholder string.
func (r Row) Reference() (string, bool) {
	return r.lookup(referenceKeys)
}
