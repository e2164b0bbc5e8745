package openai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"issue-assistant/internal/llm"
	"issue-assistant/internal/shared/telemetry"
)

const (
	providerName   = "openai"
	defaultTimeout = 60 * time.Second
)

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

type generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Config configures the OpenAI-compatible client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements llm.Client over any OpenAI-compatible chat completions endpoint.
type Client struct {
	model string
	chat  generator
}

// NewClient constructs a new OpenAI client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	temp := float32(0)
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     strings.TrimSpace(cfg.BaseURL),
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Timeout:     timeout,
		Temperature: &temp,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}
	return &Client{model: cfg.Model, chat: chat}, nil
}

// Complete returns the raw model response for the prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chat.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: prompt},
	})
	if err != nil {
		return "", wrapError(err)
	}
	if resp == nil {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}
	fields := map[string]any{"provider": providerName, "model": c.model}
	if meta := resp.ResponseMeta; meta != nil && meta.Usage != nil {
		fields["prompt_tokens"] = meta.Usage.PromptTokens
		fields["completion_tokens"] = meta.Usage.CompletionTokens
		fields["total_tokens"] = meta.Usage.TotalTokens
	}
	telemetry.Debug("llm.response", fields)

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}
	return content, nil
}

// wrapError lifts an HTTP status embedded in the client's error text into llm.StatusError.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		return fmt.Errorf("openai request timeout: %w", err)
	}
	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		if code, convErr := strconv.Atoi(m[1]); convErr == nil {
			return &llm.StatusError{Provider: providerName, StatusCode: code, Message: err.Error()}
		}
	}
	return fmt.Errorf("openai request: %w", err)
}

var _ llm.Client = (*Client)(nil)
