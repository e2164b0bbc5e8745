package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("```[A-Za-z]*")

func stripCodeFences(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(text), ""))
}

// parseObject decodes text as a JSON object, falling back to the span between
// the first '{' and the last '}'.
func parseObject(text string) (map[string]any, error) {
	cleaned := stripCodeFences(text)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err == nil && data != nil {
		return data, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response: %w", ErrAnalysisParse)
	}
	data = nil
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &data); err != nil || data == nil {
		return nil, fmt.Errorf("decode embedded object: %w", ErrAnalysisParse)
	}
	return data, nil
}
