package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON strips the markdown code fences models sometimes wrap
// around JSON output. Without fences the input is returned trimmed.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseVerdict parses a model response into a Verdict. Empty content
// yields ErrEmptyResponse; content that is not a JSON object matching the
// prompt contract yields an error. A nil Verdict is never fabricated from
// partial output: a response without a valid recommendedAction is
// rejected outright.
func ParseVerdict(text string) (*Verdict, error) {
	content := ExtractJSON(text)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var v Verdict
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return nil, fmt.Errorf("unparseable verdict: %w", err)
	}
	if !v.RecommendedAction.Valid() {
		return nil, fmt.Errorf("verdict has invalid recommendedAction %q", v.RecommendedAction)
	}
	return &v, nil
}
