package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"issue-assistant/internal/issues"
	"issue-assistant/internal/version"
)

const issueJSON = `{
  "number": 7,
  "title": "Crash on startup",
  "body": "The binary panics when the config file is missing.",
  "state": "open",
  "comments": 3,
  "user": {"login": "octocat"},
  "labels": [{"name": "bug"}, {"name": "bug"}, {"name": "p1"}],
  "created_at": "2024-03-01T10:00:00Z",
  "updated_at": "2024-03-02T11:30:00Z",
  "html_url": "https://github.com/acme/widgets/issues/7",
  "url": "https://api.github.com/repos/acme/widgets/issues/7"
}`

const commentsJSON = `[
  {"body": "+1"},
  {"body": "  I can reproduce this on linux with the latest build  "},
  {"body": "same here"},
  {"body": "ok"}
]`

func newTestClient(t *testing.T, handler http.Handler, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func issueHandler(issueStatus int, issueBody string, commentsStatus int, commentsBody string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/issues/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(issueStatus)
		_, _ = w.Write([]byte(issueBody))
	})
	mux.HandleFunc("/repos/acme/widgets/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(commentsStatus)
		_, _ = w.Write([]byte(commentsBody))
	})
	return mux
}

func TestFetchIssue(t *testing.T) {
	c := newTestClient(t, issueHandler(http.StatusOK, issueJSON, http.StatusOK, commentsJSON), Options{})

	data, err := c.FetchIssue(context.Background(), "https://github.com/acme/widgets", 7)
	require.NoError(t, err)
	require.Equal(t, "Crash on startup", data.Title)
	require.Equal(t, "The binary panics when the config file is missing.", data.Body)
	require.Equal(t, []string{"I can reproduce this on linux with the latest build"}, data.Comments)
}

func TestFetchIssuePlaceholders(t *testing.T) {
	c := newTestClient(t, issueHandler(http.StatusOK, `{"number": 7, "body": null}`, http.StatusOK, `[]`), Options{})

	data, err := c.FetchIssue(context.Background(), "https://github.com/acme/widgets/", 7)
	require.NoError(t, err)
	require.Equal(t, issues.DefaultTitle, data.Title)
	require.Equal(t, issues.DefaultBody, data.Body)
	require.Empty(t, data.Comments)
}

func TestFetchIssueCommentsFailureIsNotFatal(t *testing.T) {
	c := newTestClient(t, issueHandler(http.StatusOK, issueJSON, http.StatusInternalServerError, `{"message":"boom"}`), Options{})

	data, err := c.FetchIssue(context.Background(), "https://github.com/acme/widgets", 7)
	require.NoError(t, err)
	require.Equal(t, "Crash on startup", data.Title)
	require.Empty(t, data.Comments)
}

func TestFetchIssueSendsBearerToken(t *testing.T) {
	var gotAuth, gotAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/issues/7", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(issueJSON))
	})
	mux.HandleFunc("/repos/acme/widgets/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, mux, Options{Token: "ghp_test"})

	_, err := c.FetchIssue(context.Background(), "https://github.com/acme/widgets", 7)
	require.NoError(t, err)
	require.Equal(t, "Bearer ghp_test", gotAuth)
	require.Equal(t, version.UserAgent(), gotAgent)
}

func TestFetchIssueFailureClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: issues.ErrIssueNotFound},
		{name: "gone", status: http.StatusGone, want: issues.ErrIssueNotFound},
		{name: "forbidden", status: http.StatusForbidden, want: issues.ErrRateLimitExceeded},
		{name: "too many requests", status: http.StatusTooManyRequests, want: issues.ErrRateLimitExceeded},
		{name: "server error", status: http.StatusBadGateway, want: issues.ErrUpstreamUnreachable},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, issueHandler(tt.status, `{"message":"nope"}`, http.StatusOK, `[]`), Options{})

			_, err := c.FetchIssue(context.Background(), "https://github.com/acme/widgets", 7)
			require.ErrorIs(t, err, tt.want)

			_, err = c.FetchDeveloperInfo(context.Background(), "https://github.com/acme/widgets", 7)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetchIssueTimeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := newTestClient(t, handler, Options{Timeout: 50 * time.Millisecond})

	_, err := c.FetchIssue(context.Background(), "https://github.com/acme/widgets", 7)
	require.ErrorIs(t, err, issues.ErrRequestTimedOut)
}

func TestFetchIssueUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.FetchIssue(context.Background(), "https://github.com/acme/widgets", 7)
	require.ErrorIs(t, err, issues.ErrUpstreamUnreachable)
}

func TestFetchIssueInvalidURLMakesNoRequest(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), Options{})

	_, err := c.FetchIssue(context.Background(), "https://gitlab.com/acme/widgets", 7)
	require.ErrorIs(t, err, issues.ErrInvalidRepoURL)
	require.False(t, called)
	require.Equal(t, issues.ErrorCodeInvalidRepoURL, issues.ErrorCode(err))
}

func TestFetchDeveloperInfo(t *testing.T) {
	c := newTestClient(t, issueHandler(http.StatusOK, issueJSON, http.StatusOK, commentsJSON), Options{})

	info, err := c.FetchDeveloperInfo(context.Background(), "https://github.com/acme/widgets.git", 7)
	require.NoError(t, err)

	meta := info.Metadata
	require.Equal(t, "open", meta.State)
	require.Equal(t, "octocat", meta.Author)
	require.Equal(t, 3, meta.CommentCount)
	require.Equal(t, "2024-03-01T10:00:00Z", meta.CreatedAt)
	require.Equal(t, "2024-03-02T11:30:00Z", meta.UpdatedAt)
	require.Equal(t, "https://github.com/acme/widgets/issues/7", meta.HTMLURL)
	require.Equal(t, "https://github.com/acme/widgets", meta.RepoHTMLURL)
	require.Equal(t, []string{"bug", "p1"}, meta.Labels)

	require.Equal(t, []string{"I can reproduce this on linux with the latest build"}, info.TopComments)

	require.Equal(t, "acme/widgets", info.DetailedJSON["repo"])
	require.Equal(t, 7, info.DetailedJSON["issue_number"])
	require.Equal(t, "Crash on startup", info.DetailedJSON["title"])
	require.Equal(t, "https://api.github.com/repos/acme/widgets/issues/7", info.DetailedJSON["api_url"])
}

func TestClassifyContextDeadline(t *testing.T) {
	err := classify(context.DeadlineExceeded)
	require.True(t, errors.Is(err, issues.ErrRequestTimedOut))
}
