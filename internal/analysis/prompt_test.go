package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"issue-assistant/internal/issues"
)

func TestRenderPrompt(t *testing.T) {
	tmpl := "T={{TITLE}}\nB={{BODY}}\nC={{COMMENTS}}"
	issue := issues.IssueData{
		Title:    "Crash",
		Body:     "It crashes",
		Comments: []string{"one one one one one", "two two two two two", "three three three three three", "four four four four four"},
	}

	got := RenderPrompt(tmpl, issue)
	require.Equal(t, "T=Crash\nB=It crashes\nC=one one one one one | two two two two two | three three three three three", got)
	require.False(t, strings.Contains(got, "four"))
}

func TestRenderPromptNoComments(t *testing.T) {
	got := RenderPrompt("C={{COMMENTS}}", issues.IssueData{Title: "x", Body: "y"})
	require.Equal(t, "C=No comments", got)
}
