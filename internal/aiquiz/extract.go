package aiquiz

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencePattern = regexp.MustCompile("(?i)```(?:json)?")
	arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
)

func stripFences(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

// extractObject returns the first brace-delimited span of text that decodes
// as a complete JSON value, skipping any commentary around it.
func extractObject(text string) (json.RawMessage, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		var obj json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&obj); err == nil {
			return obj, true
		}
	}
	return nil, false
}

// extractArray accepts either a bare JSON array or the widest [...] span.
func extractArray(text string) (json.RawMessage, bool) {
	if json.Valid([]byte(text)) && strings.HasPrefix(text, "[") {
		return json.RawMessage(text), true
	}
	match := arrayPattern.FindString(text)
	if match == "" || !json.Valid([]byte(match)) {
		return nil, false
	}
	return json.RawMessage(match), true
}
