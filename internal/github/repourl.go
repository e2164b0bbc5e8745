package github

import (
	"fmt"
	"regexp"
	"strings"

	"issue-assistant/internal/issues"
)

var repoURLPattern = regexp.MustCompile(`^https?://github\.com/([^/?#]+)/([^/?#]+)`)

// ParseRepoURL extracts owner and repository from a github.com repository URL.
// Trailing path segments, a trailing slash, a .git suffix, query and fragment are ignored.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	m := repoURLPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", fmt.Errorf("parse %q: %w", raw, issues.ErrInvalidRepoURL)
	}
	owner = m[1]
	repo = strings.TrimSuffix(m[2], ".git")
	if repo == "" {
		return "", "", fmt.Errorf("parse %q: %w", raw, issues.ErrInvalidRepoURL)
	}
	return owner, repo, nil
}
