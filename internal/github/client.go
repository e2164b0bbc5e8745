package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v72/github"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"

	"issue-assistant/internal/issues"
	"issue-assistant/internal/shared/metrics"
	"issue-assistant/internal/shared/telemetry"
	"issue-assistant/internal/shared/tracing"
	"issue-assistant/internal/version"
)

const (
	DefaultTimeout  = 10 * time.Second
	commentsPerPage = 100
	timestampLayout = time.RFC3339
)

// Options configures the GitHub client.
type Options struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// Client fetches issues and their comments from the GitHub REST API.
type Client struct {
	gh *gh.Client
}

// New builds a Client. An empty token makes unauthenticated requests.
func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var hc *http.Client
	if token := strings.TrimSpace(opts.Token); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = timeout

	client := gh.NewClient(hc)
	client.UserAgent = version.UserAgent()
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Client{gh: client}, nil
}

type fetched struct {
	owner    string
	repo     string
	number   int
	issue    *gh.Issue
	comments []string
}

// FetchIssue returns the issue's title, body and filtered comments.
func (c *Client) FetchIssue(ctx context.Context, repoURL string, number int) (issues.IssueData, error) {
	f, err := c.fetch(ctx, "github.fetch_issue", repoURL, number)
	if err != nil {
		return issues.IssueData{}, err
	}
	title := f.issue.GetTitle()
	if title == "" {
		title = issues.DefaultTitle
	}
	body := f.issue.GetBody()
	if body == "" {
		body = issues.DefaultBody
	}
	return issues.IssueData{
		Title:    title,
		Body:     body,
		Comments: issues.FilterComments(f.comments),
	}, nil
}

// FetchDeveloperInfo returns the extended display view of an issue.
func (c *Client) FetchDeveloperInfo(ctx context.Context, repoURL string, number int) (issues.DeveloperInfo, error) {
	f, err := c.fetch(ctx, "github.fetch_developer_info", repoURL, number)
	if err != nil {
		return issues.DeveloperInfo{}, err
	}
	return buildDeveloperInfo(f), nil
}

func (c *Client) fetch(ctx context.Context, spanName, repoURL string, number int) (f fetched, err error) {
	ctx, span := tracing.Start(ctx, spanName, attribute.Int("github.issue_number", number))
	defer func() {
		if err != nil {
			metrics.IncGitHubFetchFailure(issues.ErrorCode(err))
		}
		tracing.End(span, err)
	}()

	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return fetched{}, err
	}
	span.SetAttributes(attribute.String("github.repo", owner+"/"+repo))
	if number <= 0 {
		return fetched{}, fmt.Errorf("issue number %d: %w", number, issues.ErrIssueNotFound)
	}

	issue, _, err := c.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		kind := classify(err)
		telemetry.Warn("github.issue_failed", map[string]any{
			"repo":  owner + "/" + repo,
			"issue": number,
			"kind":  issues.ErrorCode(kind),
			"error": err.Error(),
		})
		return fetched{}, fmt.Errorf("get issue %s/%s#%d: %w", owner, repo, number, kind)
	}

	return fetched{
		owner:    owner,
		repo:     repo,
		number:   number,
		issue:    issue,
		comments: c.listComments(ctx, owner, repo, number),
	}, nil
}

// listComments returns the first page of comment bodies. A failure yields no comments.
func (c *Client) listComments(ctx context.Context, owner, repo string, number int) []string {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: commentsPerPage},
	}
	comments, _, err := c.gh.Issues.ListComments(ctx, owner, repo, number, opts)
	if err != nil {
		telemetry.Warn("github.comments_failed", map[string]any{
			"repo":  owner + "/" + repo,
			"issue": number,
			"error": err.Error(),
		})
		return nil
	}
	out := make([]string, 0, len(comments))
	for _, comment := range comments {
		out = append(out, comment.GetBody())
	}
	return out
}

func classify(err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var respErr *gh.ErrorResponse
	var netErr net.Error

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return issues.ErrRateLimitExceeded
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound, http.StatusGone:
			return issues.ErrIssueNotFound
		case http.StatusForbidden, http.StatusTooManyRequests:
			return issues.ErrRateLimitExceeded
		}
		return issues.ErrUpstreamUnreachable
	case errors.Is(err, context.DeadlineExceeded):
		return issues.ErrRequestTimedOut
	case errors.As(err, &netErr) && netErr.Timeout():
		return issues.ErrRequestTimedOut
	default:
		return issues.ErrUpstreamUnreachable
	}
}

func buildDeveloperInfo(f fetched) issues.DeveloperInfo {
	issue := f.issue
	labels := labelNames(issue.Labels)
	author := issue.GetUser().GetLogin()
	createdAt := formatTimestamp(issue.GetCreatedAt())
	updatedAt := formatTimestamp(issue.GetUpdatedAt())
	apiURL := issue.GetURL()
	if apiURL == "" {
		apiURL = fmt.Sprintf("https://api.github.com/repos/%s/%s/issues/%d", f.owner, f.repo, f.number)
	}
	body := issue.GetBody()
	if body == "" {
		body = issues.DefaultBody
	}

	meta := issues.Metadata{
		State:        issue.GetState(),
		Author:       author,
		CommentCount: issue.GetComments(),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		HTMLURL:      issue.GetHTMLURL(),
		RepoHTMLURL:  fmt.Sprintf("https://github.com/%s/%s", f.owner, f.repo),
		Labels:       labels,
	}

	detailed := map[string]any{
		"repo":           f.owner + "/" + f.repo,
		"issue_number":   f.number,
		"title":          issue.GetTitle(),
		"body":           body,
		"state":          meta.State,
		"labels":         labels,
		"author":         author,
		"created_at":     createdAt,
		"updated_at":     updatedAt,
		"comments_count": meta.CommentCount,
		"html_url":       meta.HTMLURL,
		"api_url":        apiURL,
	}
	if issue.IsPullRequest() {
		detailed["is_pull_request"] = true
	}
	if reactions := issue.GetReactions(); reactions != nil {
		if raw, err := json.Marshal(reactions); err == nil {
			var m map[string]any
			if json.Unmarshal(raw, &m) == nil {
				delete(m, "url")
				detailed["reactions"] = m
			}
		}
	}

	return issues.DeveloperInfo{
		Metadata:     meta,
		TopComments:  issues.FilterComments(f.comments),
		DetailedJSON: detailed,
	}
}

func labelNames(labels []*gh.Label) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		name := l.GetName()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func formatTimestamp(ts gh.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(timestampLayout)
}
