package analysis

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"issue-assistant/internal/llm"
	"issue-assistant/internal/shared/metrics"
	"issue-assistant/internal/shared/telemetry"
)

const llmRetryBaseDelay = 300 * time.Millisecond

type retryingLLM struct {
	base           llm.Client
	limiter        *rate.Limiter
	maxAttempts    int
	attemptTimeout time.Duration
	baseDelay      time.Duration
}

func newRetryingLLM(base llm.Client, opts Options) llm.Client {
	if base == nil {
		return nil
	}
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}
	return retryingLLM{
		base:           base,
		limiter:        limiter,
		maxAttempts:    attempts,
		attemptTimeout: opts.Timeout,
		baseDelay:      llmRetryBaseDelay,
	}
}

func (r retryingLLM) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		out, err := r.completeOnce(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt == r.maxAttempts || ctx.Err() != nil || !shouldRetryLLM(err) {
			break
		}

		delay := r.baseDelay << (attempt - 1)
		metrics.IncLLMRetry()
		telemetry.Warn("llm.retry", map[string]any{
			"attempt":  attempt,
			"delay_ms": delay.Milliseconds(),
			"error":    err.Error(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (r retryingLLM) completeOnce(ctx context.Context, prompt string) (string, error) {
	if r.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.attemptTimeout)
		defer cancel()
	}
	return r.base.Complete(ctx, prompt)
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, llm.ErrEmptyResponse) || errors.Is(err, llm.ErrNotConfigured) {
		return false
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "gemini") ||
		strings.Contains(msg, "openai") ||
		strings.Contains(msg, "anthropic") ||
		strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
