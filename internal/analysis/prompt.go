package analysis

import (
	"strings"

	"issue-assistant/internal/issues"
)

const (
	maxPromptComments = 3
	commentSeparator  = " | "
	noComments        = "No comments"
)

// RenderPrompt fills template with the issue's title, body and first comments.
func RenderPrompt(template string, issue issues.IssueData) string {
	comments := noComments
	if len(issue.Comments) > 0 {
		n := len(issue.Comments)
		if n > maxPromptComments {
			n = maxPromptComments
		}
		comments = strings.Join(issue.Comments[:n], commentSeparator)
	}
	return strings.NewReplacer(
		"{{TITLE}}", issue.Title,
		"{{BODY}}", issue.Body,
		"{{COMMENTS}}", comments,
	).Replace(template)
}
