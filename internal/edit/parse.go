package edit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseResponse decodes a raw model reply into concepts. The reply may be a
// single concept object, a {concepts: [...]} wrapper, or a bare concept
// array, optionally wrapped in a markdown code fence. A reply that does not
// parse as concept-shaped JSON is reported as an error so the caller can
// pass the raw text through untouched.
func ParseResponse(raw string) (*Response, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("parse model response: empty response")
	}

	switch cleaned[0] {
	case '{':
		return parseObject(cleaned)
	case '[':
		var concepts []Concept
		if err := json.Unmarshal([]byte(cleaned), &concepts); err != nil {
			return nil, fmt.Errorf("parse model response: %w", err)
		}
		return &Response{Concepts: concepts}, nil
	case '"':
		// Captured completions are often double-encoded: a JSON string
		// holding the JSON. Unquote one level and retry.
		var inner string
		if err := json.Unmarshal([]byte(cleaned), &inner); err != nil {
			return nil, fmt.Errorf("parse model response: %w", err)
		}
		return ParseResponse(inner)
	default:
		return nil, fmt.Errorf("parse model response: not a JSON object or array")
	}
}

func parseObject(raw string) (*Response, error) {
	var probe struct {
		DefaultConceptID string          `json:"default_concept_id"`
		Concepts         json.RawMessage `json:"concepts"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	if len(probe.Concepts) == 0 || string(probe.Concepts) == "null" {
		var c Concept
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("parse model response: %w", err)
		}
		return &Response{Concepts: []Concept{c}}, nil
	}

	var concepts []Concept
	if err := json.Unmarshal(probe.Concepts, &concepts); err != nil {
		return nil, fmt.Errorf("model response concepts field is not a concept array: %w", err)
	}
	return &Response{DefaultConceptID: probe.DefaultConceptID, Concepts: concepts}, nil
}

// stripFences removes the markdown code fence chat models routinely wrap
// around JSON output.
func stripFences(s string) string {
	out := strings.TrimSpace(s)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
