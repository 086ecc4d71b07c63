// Package pipeline turns free text into canonical decks by way of one
// model call per request: build prompt, complete, extract JSON, normalize.
package pipeline

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ExtractError means the model output could not be recovered as JSON by
// any strategy. It is not retryable at this layer.
type ExtractError struct{}

func (e *ExtractError) Error() string {
	return "failed to parse structured output"
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON recovers a JSON value from raw model output. Models wrap
// JSON in prose or code fences, so three strategies are tried in order:
// the whole string, the first fenced code block, and the span from the
// first "{" to the last "}". Shape validation is the normalizer's job;
// a bare number that parses is still a successful extraction.
func ExtractJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, nil
	}

	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &v); err == nil {
			return v, nil
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &v); err == nil {
			return v, nil
		}
	}

	return nil, &ExtractError{}
}
