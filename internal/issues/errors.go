package issues

import "errors"

// Fetch-side failures. Messages are shown to API clients as-is.
var (
	ErrInvalidRepoURL      = errors.New("Invalid GitHub repo URL")
	ErrIssueNotFound       = errors.New("Issue not found")
	ErrRateLimitExceeded   = errors.New("GitHub rate limit exceeded. Add or update your GitHub API token.")
	ErrRequestTimedOut     = errors.New("GitHub request timed out. Please retry.")
	ErrUpstreamUnreachable = errors.New("Failed to reach GitHub API. Check your connection or token.")
)

const (
	ErrorCodeInvalidRepoURL      = "invalid_repo_url"
	ErrorCodeIssueNotFound       = "issue_not_found"
	ErrorCodeRateLimitExceeded   = "rate_limit_exceeded"
	ErrorCodeRequestTimedOut     = "request_timed_out"
	ErrorCodeUpstreamUnreachable = "upstream_unreachable"
)

// ErrorCode returns the stable code for a fetch failure, or "" if err is not one.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRepoURL):
		return ErrorCodeInvalidRepoURL
	case errors.Is(err, ErrIssueNotFound):
		return ErrorCodeIssueNotFound
	case errors.Is(err, ErrRateLimitExceeded):
		return ErrorCodeRateLimitExceeded
	case errors.Is(err, ErrRequestTimedOut):
		return ErrorCodeRequestTimedOut
	case errors.Is(err, ErrUpstreamUnreachable):
		return ErrorCodeUpstreamUnreachable
	default:
		return ""
	}
}
