package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
	"issue-assistant/internal/version"
)

const DefaultServiceURL = "http://localhost:8000"

// APIError is a non-2xx reply from the service.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("service returned %d (%s): %s", e.Status, e.Code, e.Detail)
	}
	return fmt.Sprintf("service returned %d: %s", e.Status, e.Detail)
}

// Client calls a running issue-assistant service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for baseURL. An empty baseURL targets the local default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultServiceURL
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{baseURL: base, http: &http.Client{Timeout: timeout}}
}

type issueRequest struct {
	RepoURL     string `json:"repo_url"`
	IssueNumber int    `json:"issue_number"`
}

func (c *Client) Analyze(ctx context.Context, repoURL string, number int) (analysis.AnalysisResult, error) {
	var out analysis.AnalysisResult
	err := c.post(ctx, "/analyze_issue", issueRequest{RepoURL: repoURL, IssueNumber: number}, &out)
	return out, err
}

func (c *Client) DeveloperInfo(ctx context.Context, repoURL string, number int) (issues.DeveloperInfo, error) {
	var out issues.DeveloperInfo
	err := c.post(ctx, "/developer_info", issueRequest{RepoURL: repoURL, IssueNumber: number}, &out)
	return out, err
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Detail string `json:"detail"`
			Code   string `json:"code"`
		}
		if json.Unmarshal(raw, &errBody) == nil && errBody.Detail != "" {
			apiErr.Detail = errBody.Detail
			apiErr.Code = errBody.Code
		} else {
			apiErr.Detail = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
