package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"issue-assistant/internal/issues"
	"issue-assistant/internal/llm"
	"issue-assistant/internal/shared/metrics"
	"issue-assistant/internal/shared/telemetry"
	"issue-assistant/internal/shared/tracing"
)

// Options tunes the model call.
type Options struct {
	PromptVersion     string
	Timeout           time.Duration
	MaxAttempts       int
	RequestsPerMinute int
}

// Service turns issues into analyses using a model.
type Service struct {
	llm           llm.Client
	template      string
	promptVersion string
}

// NewService wraps client with per-attempt timeouts, retries and throttling.
func NewService(client llm.Client, opts Options) *Service {
	version := opts.PromptVersion
	template, ok := llm.PromptTemplate(version)
	if !ok {
		telemetry.Warn("analysis.prompt_version_unknown", map[string]any{
			"requested": version,
			"using":     llm.DefaultPromptVersion,
		})
		version = llm.DefaultPromptVersion
	}
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	return &Service{
		llm:           newRetryingLLM(client, opts),
		template:      template,
		promptVersion: version,
	}
}

// PromptVersion reports the template version in use.
func (s *Service) PromptVersion() string {
	return s.promptVersion
}

// Analyze sends the rendered prompt to the model and normalizes its answer.
func (s *Service) Analyze(ctx context.Context, issue issues.IssueData) (result AnalysisResult, err error) {
	ctx, span := tracing.Start(ctx, "analysis.analyze",
		attribute.String("prompt.version", s.promptVersion),
		attribute.Int("issue.comments", len(issue.Comments)),
	)
	start := time.Now()
	metrics.IncAnalysisStarted()
	defer func() {
		metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
		if err != nil {
			metrics.IncAnalysisFailed()
		} else {
			metrics.IncAnalysisCompleted()
		}
		tracing.End(span, err)
	}()

	prompt := RenderPrompt(s.template, issue)
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %w", ErrModelRequest, err)
	}

	result, err = ParseResult(raw)
	if err != nil {
		fields := map[string]any{"error": err.Error(), "response_bytes": len(raw)}
		if errors.Is(err, ErrSchemaValidation) {
			telemetry.Warn("analysis.schema_invalid", fields)
		} else {
			telemetry.Warn("analysis.parse_failed", fields)
		}
		return AnalysisResult{}, err
	}
	return result, nil
}

// ErrorCode returns the stable code for an analysis failure, or "" if err is not one.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		return ErrorCodeEmptyResponse
	case errors.Is(err, ErrModelRequest):
		return ErrorCodeModelRequest
	case errors.Is(err, ErrSchemaValidation):
		return ErrorCodeSchemaValidation
	case errors.Is(err, ErrAnalysisParse):
		return ErrorCodeAnalysisParse
	default:
		return ""
	}
}
