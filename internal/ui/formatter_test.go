package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "pad short string", input: "hello", width: 10, expected: "hello     "},
		{name: "no padding needed", input: "hello", width: 5, expected: "hello"},
		{name: "string longer than width", input: "hello world", width: 5, expected: "hello world"},
		{name: "empty string", input: "", width: 5, expected: "     "},
		{name: "unicode characters", input: "こんにちは", width: 15, expected: "こんにちは     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadRight(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate kept %q", got)
	}
	got := Truncate("a fairly long sentence", 10)
	if runewidth.StringWidth(got) > 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("Truncate = %q", got)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", lines, want)
	}
	if len(wrap("   ", 10)) != 0 {
		t.Errorf("wrap of blank text should be empty")
	}
}

func TestFormatAnalysisAlignsValues(t *testing.T) {
	out := FormatAnalysis(analysis.AnalysisResult{
		Summary:         "App crashes on startup.",
		Type:            "bug",
		PriorityScore:   "5 - blocks every user",
		SuggestedLabels: []string{"bug", "crash"},
		PotentialImpact: "Nobody can use the app.",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if runewidth.StringWidth(line[:labelWidth]) != labelWidth || line[labelWidth] != ' ' {
			t.Errorf("misaligned line %q", line)
		}
	}
	if !strings.Contains(out, "bug, crash") {
		t.Errorf("labels missing from output:\n%s", out)
	}
}

func TestFormatDeveloperInfo(t *testing.T) {
	out := FormatDeveloperInfo(issues.DeveloperInfo{
		Metadata: issues.Metadata{
			State:        "open",
			Author:       "octocat",
			CommentCount: 3,
			Labels:       []string{"bug"},
		},
		TopComments:  []string{"I can reproduce this on linux"},
		DetailedJSON: map[string]any{"title": "x", "repo": "a/b"},
	})

	for _, want := range []string{"octocat", "Comments", "3", "Comment 1", "I can reproduce this on linux", "repo, title"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
