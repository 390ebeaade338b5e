package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Models wrap JSON answers in markdown fences more often than not. StripFences
// normalizes the raw completion so it can be parsed strictly: fences removed,
// then the outermost object or array sliced out of any surrounding prose.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		if end := strings.LastIndex(text, "]"); end > arrStart {
			return text[arrStart : end+1]
		}
	}
	if objStart != -1 {
		if end := strings.LastIndex(text, "}"); end > objStart {
			return text[objStart : end+1]
		}
	}
	return text
}

// DecodeJSON normalizes a raw completion and unmarshals it into v. Schema
// validation (required fields, enum membership) is the caller's job.
func DecodeJSON(raw string, v any) error {
	text := StripFences(raw)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("invalid JSON in model response: %w", err)
	}
	return nil
}

// ValidateEnum rejects values outside a closed enumeration. An out-of-enum
// value is a parse error, not a silent default.
func ValidateEnum(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s value %q (allowed: %s)", field, value, strings.Join(allowed, ", "))
}
