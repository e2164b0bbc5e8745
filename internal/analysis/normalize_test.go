package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResultFencedExample(t *testing.T) {
	raw := "```json\n" +
		`{"summary":"Fixes a crash. Extra.","type":"bogus","priority_score":"2 - minor","suggested_labels":["0: perf","docs","api","extra"],"potential_impact":"Low risk. More."}` +
		"\n```"

	got, err := ParseResult(raw)
	require.NoError(t, err)
	require.Equal(t, AnalysisResult{
		Summary:         "Fixes a crash.",
		Type:            TypeOther,
		PriorityScore:   "2 - minor",
		SuggestedLabels: []string{"perf", "docs", "api"},
		PotentialImpact: "Low risk.",
	}, got)
}

func TestParseResultEmbeddedInProse(t *testing.T) {
	raw := `Sure! Here is the analysis you asked for:
{"summary":"Login fails on Safari","type":"bug","priority_score":"4 - blocks users","suggested_labels":["auth"],"potential_impact":"Users cannot sign in"}
Let me know if you need anything else.`

	got, err := ParseResult(raw)
	require.NoError(t, err)
	require.Equal(t, "Login fails on Safari.", got.Summary)
	require.Equal(t, TypeBug, got.Type)
	require.Equal(t, "4 - blocks users", got.PriorityScore)
	require.Equal(t, []string{"auth"}, got.SuggestedLabels)
	require.Equal(t, "Users cannot sign in.", got.PotentialImpact)
}

func TestParseResultUnparseable(t *testing.T) {
	for _, raw := range []string{
		"",
		"no json here",
		"} backwards {",
		"{not: valid json}",
		`["an", "array"]`,
	} {
		_, err := ParseResult(raw)
		require.ErrorIs(t, err, ErrAnalysisParse, "input %q", raw)
	}
}

func TestParseResultMissingFields(t *testing.T) {
	_, err := ParseResult(`{"type":"bug","priority_score":"high","suggested_labels":[]}`)
	require.ErrorIs(t, err, ErrSchemaValidation)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	require.Equal(t, []string{"summary", "priority_score", "potential_impact"}, schemaErr.Fields)
	require.Contains(t, err.Error(), "summary")
}

func TestNormalizeType(t *testing.T) {
	tests := map[string]string{
		"bug":             TypeBug,
		" bug ":           TypeBug,
		"feature_request": TypeFeatureRequest,
		"documentation":   TypeDocumentation,
		"question":        TypeQuestion,
		"other":           TypeOther,
		"Bug":             TypeOther,
		"feature request": TypeOther,
		"feature-request": TypeOther,
		"enhancement":     TypeOther,
		"":                TypeOther,
	}
	for in, want := range tests {
		require.Equal(t, want, normalizeType(in), "input %q", in)
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "One. Two.", want: "One."},
		{in: "No period", want: "No period."},
		{in: "Fixes a crash.Extra detail", want: "Fixes a crash."},
		{in: "Upgrade to v1.2 breaks builds.", want: "Upgrade to v1."},
		{in: "Ends with period.", want: "Ends with period."},
		{in: "Is it broken? Maybe.", want: "Is it broken? Maybe."},
		{in: "   ", want: ""},
		{in: "...", want: ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, firstSentence(tt.in), "input %q", tt.in)
	}
}

func TestParseResultCutsAtFirstPeriod(t *testing.T) {
	raw := `{"summary":"Fixes a crash.Extra detail","type":"Bug","priority_score":3,"suggested_labels":["bug"],"potential_impact":"Low risk.More text"}`

	got, err := ParseResult(raw)
	require.NoError(t, err)
	require.Equal(t, "Fixes a crash.", got.Summary)
	require.Equal(t, "Low risk.", got.PotentialImpact)
	require.Equal(t, TypeOther, got.Type)
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{name: "canonical", in: "3 - affects build stability.", want: "3 - affects build stability.", ok: true},
		{name: "out of five", in: "4/5: data loss", want: "4 - data loss", ok: true},
		{name: "clamped high", in: "9 - urgent", want: "5 - urgent", ok: true},
		{name: "clamped low", in: "0 - trivial", want: "1 - trivial", ok: true},
		{name: "bare number string", in: "2", want: "2 - no justification provided", ok: true},
		{name: "json number", in: float64(3), want: "3 - no justification provided", ok: true},
		{name: "words only", in: "high", ok: false},
		{name: "missing", in: nil, ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizePriority(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeLabels(t *testing.T) {
	require.Equal(t, []string{"perf", "docs", "api"}, normalizeLabels([]any{"1. perf", "2) docs", " ", "Docs", 7, "api", "ui"}))
	require.Equal(t, []string{"bug", "ui"}, normalizeLabels("bug, ui"))
	require.Equal(t, []string{}, normalizeLabels(nil))
	require.Equal(t, []string{"3d-rendering"}, normalizeLabels([]any{"3d-rendering"}))
}
