package ai

import (
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object found in response")

// ExtractJSON pulls a JSON object out of model output. Models wrap answers in
// prose or markdown fences, so this tries, in order: a ```json fenced block,
// any ``` fenced block, then the span from the first '{' to the last '}'.
func ExtractJSON(s string) (string, error) {
	if block, ok := fencedBlock(s, "```json"); ok {
		return block, nil
	}
	if block, ok := fencedBlock(s, "```"); ok {
		if strings.HasPrefix(strings.TrimSpace(block), "{") {
			return block, nil
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

func fencedBlock(s, fence string) (string, bool) {
	start := strings.Index(s, fence)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(fence):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	block := strings.TrimSpace(rest[:end])
	if block == "" {
		return "", false
	}
	return block, true
}
