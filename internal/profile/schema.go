package profile

// BuildProfileJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map used to validate extraction profile files before they touch
// the pipeline configuration.
func BuildProfileJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"languages": map[string]any{
				"type":    "string",
				"pattern": `^[A-Za-z0-9_]+(\+[A-Za-z0-9_]+)*$`,
			},
			"dpi": map[string]any{
				"type":    "integer",
				"minimum": 72,
				"maximum": 1200,
			},
			"psm": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 13,
			},
			"oem": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 3,
			},
			"max_pages": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"tessdata_dir": map[string]any{"type": "string"},
			"poppler_dir":  map[string]any{"type": "string"},
			"normalize":    map[string]any{"type": "boolean"},
		},
	}
}
