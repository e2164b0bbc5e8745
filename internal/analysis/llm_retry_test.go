package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"issue-assistant/internal/llm"
)

type scriptedLLM struct {
	calls   atomic.Int32
	results []scriptedResult
}

type scriptedResult struct {
	out string
	err error
}

func (s *scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	i := int(s.calls.Add(1)) - 1
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	return s.results[i].out, s.results[i].err
}

func fastRetrying(base llm.Client, attempts int) retryingLLM {
	r := newRetryingLLM(base, Options{MaxAttempts: attempts}).(retryingLLM)
	r.baseDelay = time.Millisecond
	return r
}

func TestRetryingLLMRetriesTransientErrors(t *testing.T) {
	base := &scriptedLLM{results: []scriptedResult{
		{err: &llm.StatusError{Provider: "gemini", StatusCode: 503}},
		{err: fmt.Errorf("gemini request timeout: %w", context.DeadlineExceeded)},
		{out: "ok"},
	}}

	out, err := fastRetrying(base, 3).Complete(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.EqualValues(t, 3, base.calls.Load())
}

func TestRetryingLLMStopsOnPermanentErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "bad request", err: &llm.StatusError{Provider: "gemini", StatusCode: 400}},
		{name: "empty response", err: fmt.Errorf("gemini: %w", llm.ErrEmptyResponse)},
		{name: "unknown", err: errors.New("invalid api key")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			base := &scriptedLLM{results: []scriptedResult{{err: tt.err}, {out: "unreachable"}}}

			_, err := fastRetrying(base, 3).Complete(context.Background(), "p")
			require.ErrorIs(t, err, tt.err)
			require.EqualValues(t, 1, base.calls.Load())
		})
	}
}

func TestRetryingLLMGivesUpAfterMaxAttempts(t *testing.T) {
	base := &scriptedLLM{results: []scriptedResult{{err: &llm.StatusError{Provider: "openai", StatusCode: 429}}}}

	_, err := fastRetrying(base, 2).Complete(context.Background(), "p")
	var statusErr *llm.StatusError
	require.True(t, errors.As(err, &statusErr))
	require.EqualValues(t, 2, base.calls.Load())
}

type slowLLM struct{}

func (slowLLM) Complete(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRetryingLLMAppliesAttemptTimeout(t *testing.T) {
	r := newRetryingLLM(slowLLM{}, Options{MaxAttempts: 2, Timeout: 20 * time.Millisecond}).(retryingLLM)
	r.baseDelay = time.Millisecond

	start := time.Now()
	_, err := r.Complete(context.Background(), "p")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestShouldRetryLLM(t *testing.T) {
	require.False(t, shouldRetryLLM(nil))
	require.True(t, shouldRetryLLM(errors.New("read: connection reset by peer")))
	require.True(t, shouldRetryLLM(errors.New("unexpected EOF")))
	require.False(t, shouldRetryLLM(errors.New("permission denied")))
}
