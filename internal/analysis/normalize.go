package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const noJustification = "no justification provided"

var (
	labelNumbering  = regexp.MustCompile(`^\s*\d+\s*[:.)]\s*`)
	priorityPattern = regexp.MustCompile(`(?s)^\s*(\d+)\s*(?:/\s*5)?\s*[-–—:,.)]*\s*(.*)$`)
)

// ParseResult turns raw model text into a normalized AnalysisResult.
func ParseResult(text string) (AnalysisResult, error) {
	data, err := parseObject(text)
	if err != nil {
		return AnalysisResult{}, err
	}
	return normalize(data)
}

func normalize(data map[string]any) (AnalysisResult, error) {
	var missing []string

	summary := firstSentence(stringField(data, "summary"))
	if summary == "" {
		missing = append(missing, "summary")
	}
	priority, ok := normalizePriority(data["priority_score"])
	if !ok {
		missing = append(missing, "priority_score")
	}
	impact := firstSentence(stringField(data, "potential_impact"))
	if impact == "" {
		missing = append(missing, "potential_impact")
	}
	if len(missing) > 0 {
		return AnalysisResult{}, &SchemaError{Fields: missing}
	}

	return AnalysisResult{
		Summary:         summary,
		Type:            normalizeType(stringField(data, "type")),
		PriorityScore:   priority,
		SuggestedLabels: normalizeLabels(data["suggested_labels"]),
		PotentialImpact: impact,
	}, nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return strings.TrimSpace(s)
}

// normalizeType accepts only the exact enum values; anything else is "other".
func normalizeType(raw string) string {
	t := strings.TrimSpace(raw)
	if _, ok := allowedTypes[t]; ok {
		return t
	}
	return TypeOther
}

// firstSentence keeps text before the first "." and ends it with a single period.
// An empty first segment yields "" so the field counts as missing.
func firstSentence(text string) string {
	head, _, _ := strings.Cut(text, ".")
	head = strings.TrimSpace(head)
	if head == "" {
		return ""
	}
	return head + "."
}

func normalizeLabels(raw any) []string {
	var candidates []string
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				candidates = append(candidates, s)
			}
		}
	case string:
		candidates = strings.Split(v, ",")
	}

	out := make([]string, 0, MaxSuggestedLabels)
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		label := strings.TrimSpace(labelNumbering.ReplaceAllString(c, ""))
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
		if len(out) == MaxSuggestedLabels {
			break
		}
	}
	return out
}

// normalizePriority renders the score as "N - justification" with N clamped to 1..5.
func normalizePriority(raw any) (string, bool) {
	var (
		score         int
		justification string
	)
	switch v := raw.(type) {
	case float64:
		score = int(v)
	case string:
		m := priorityPattern.FindStringSubmatch(v)
		if m == nil {
			return "", false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", false
		}
		score = n
		justification = strings.TrimSpace(m[2])
	default:
		return "", false
	}

	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	if justification == "" {
		justification = noJustification
	}
	return fmt.Sprintf("%d - %s", score, justification), true
}
