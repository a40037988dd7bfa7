package llm

// BuildEnrichmentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as a structured output constraint
// and also use it locally to validate the answer before trusting it.
func BuildEnrichmentJSONSchema(allowedCategories []string) map[string]any {
	props := map[string]any{
		"receiver": map[string]any{"type": "string", "minLength": 1},
		"category": map[string]any{"type": "string"},
	}

	// Constrain category if a taxonomy is provided.
	if len(allowedCategories) > 0 {
		props["category"] = map[string]any{
			"type": "string",
			"enum": allowedCategories,
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"receiver", "category"},
	}
}
