package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client sends a single prompt to a model and returns its text output.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse means the provider answered but carried no usable text.
var ErrEmptyResponse = errors.New("model returned no text")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// StatusError is a non-2xx answer from a model provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// PlaceholderClient fails every call with ErrNotConfigured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
