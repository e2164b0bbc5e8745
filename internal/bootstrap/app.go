package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/github"
	"issue-assistant/internal/llm"
	"issue-assistant/internal/llm/anthropic"
	"issue-assistant/internal/llm/gemini"
	"issue-assistant/internal/llm/openai"
	"issue-assistant/internal/services/health"
	"issue-assistant/internal/shared/config"
	"issue-assistant/internal/shared/server"
	"issue-assistant/internal/shared/telemetry"
	"issue-assistant/internal/triage"
	"issue-assistant/internal/webui"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	GitHub   *github.Client
	Analysis *analysis.Service
	Triage   *triage.Service
}

// Build wires the pipeline and the HTTP router from cfg.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	gh, err := NewGitHubClient(cfg)
	if err != nil {
		return nil, err
	}
	analysisSvc, err := NewAnalysisService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	triageSvc := &triage.Service{Fetcher: gh, Analyzer: analysisSvc}

	router := server.NewRouter(server.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigin,
		RateLimitRPM:     cfg.RateLimitRPM,
		RateLimitBurst:   cfg.RateLimitBurst,
	},
		health.NewService(),
		triage.NewHandler(triageSvc),
		webui.NewHandler(),
	)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"llm_provider":   cfg.LLMProvider,
		"llm_model":      cfg.LLMModel,
		"prompt_version": analysisSvc.PromptVersion(),
		"github_auth":    cfg.GitHubToken != "",
	})

	return &App{
		Config:   cfg,
		Router:   router,
		GitHub:   gh,
		Analysis: analysisSvc,
		Triage:   triageSvc,
	}, nil
}

// NewGitHubClient builds the GitHub client from cfg.
func NewGitHubClient(cfg config.Config) (*github.Client, error) {
	gh, err := github.New(github.Options{
		Token:   cfg.GitHubToken,
		BaseURL: cfg.GitHubAPIURL,
		Timeout: cfg.GitHubTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}
	return gh, nil
}

// NewAnalysisService builds the analysis service on the configured model provider.
func NewAnalysisService(ctx context.Context, cfg config.Config) (*analysis.Service, error) {
	model, err := NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return analysis.NewService(model, analysis.Options{
		PromptVersion:     cfg.PromptVersion,
		Timeout:           cfg.LLMTimeout,
		MaxAttempts:       cfg.LLMMaxAttempts,
		RequestsPerMinute: cfg.LLMRequestsPerM,
	}), nil
}

// NewLLMClient builds the model client for the configured provider.
func NewLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		c, err := anthropic.NewClient(anthropic.Config{
			APIKey:  cfg.APIKey(),
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("anthropic client: %w", err)
		}
		return c, nil
	case config.ProviderOpenAI:
		c, err := openai.NewClient(ctx, openai.Config{
			APIKey:  cfg.APIKey(),
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		return c, nil
	default:
		c, err := gemini.NewClient(gemini.Config{
			APIKey:  cfg.APIKey(),
			Model:   cfg.LLMModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, nil
	}
}
