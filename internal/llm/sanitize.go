package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// StripCodeFences removes a markdown code fence wrapper from model output.
// Models routinely wrap JSON in ```json blocks despite instructions.
func StripCodeFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return []byte(strings.TrimSpace(s))
}

// SanitizeEnrichment
// - Strips code fences
// - Renames known synonyms (merchant/merchant_name/name -> receiver)
// - Drops null/empty values and trims strings
// - Removes unknown keys (strict additionalProperties = false friendliness)
func SanitizeEnrichment(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(StripCodeFences(raw), &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	renamed("merchant", "receiver")
	renamed("merchant_name", "receiver")
	renamed("name", "receiver")

	for _, k := range []string{"receiver", "category"} {
		switch v := m[k].(type) {
		case string:
			s := strings.TrimSpace(strings.Trim(strings.TrimSpace(v), `".`))
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case nil:
			if _, ok := m[k]; ok {
				delete(m, k)
				dropped = append(dropped, k+"(null)")
			}
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	allowed := map[string]struct{}{"receiver": {}, "category": {}}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.enrich.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
