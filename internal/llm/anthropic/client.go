package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"issue-assistant/internal/llm"
	"issue-assistant/internal/shared/telemetry"
)

const (
	providerName     = "anthropic"
	defaultMaxTokens = 1024
	defaultTimeout   = 60 * time.Second
)

// Config configures the Anthropic client.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int64
	Timeout   time.Duration
}

// Client implements llm.Client on the Anthropic Messages API.
type Client struct {
	client    sdk.Client
	model     sdk.Model
	maxTokens int64
}

// NewClient constructs a new Anthropic client. Retries are left to the caller.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Anthropic")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &Client{
		client:    sdk.NewClient(opts...),
		model:     sdk.Model(strings.TrimSpace(cfg.Model)),
		maxTokens: maxTokens,
	}, nil
}

// Complete returns the concatenated text blocks of the model's reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: sdk.Float(0),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", &llm.StatusError{Provider: providerName, StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("anthropic request timeout: %w", err)
		}
		return "", fmt.Errorf("anthropic request: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(sdk.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	telemetry.Debug("llm.response", map[string]any{
		"provider":          providerName,
		"model":             string(c.model),
		"stop_reason":       string(msg.StopReason),
		"prompt_tokens":     msg.Usage.InputTokens,
		"completion_tokens": msg.Usage.OutputTokens,
	})

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("anthropic: %w", llm.ErrEmptyResponse)
	}
	return out, nil
}

var _ llm.Client = (*Client)(nil)
