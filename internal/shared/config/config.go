package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"
	"github.com/spf13/viper"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ErrMissingAPIKey is returned when the active model provider has no credentials.
var ErrMissingAPIKey = errors.New("model API key not set")

// Config holds application configuration. It is built once at startup and passed by value.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	LLMProvider     string
	LLMModel        string
	PromptVersion   string
	LLMTimeout      time.Duration
	LLMMaxAttempts  int
	LLMRequestsPerM int

	GeminiAPIKey    string
	GeminiBaseURL   string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string

	GitHubToken   string
	GitHubAPIURL  string
	GitHubTimeout time.Duration

	RateLimitRPM   int
	RateLimitBurst int

	LogLevel  string
	LogFormat string

	OTLPEndpoint    string
	OTelServiceName string
}

// Load reads and validates configuration. A missing model key is fatal for callers.
func Load(ctx context.Context) (Config, error) {
	cfg, err := Read(ctx)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read resolves configuration without validating provider credentials.
func Read(ctx context.Context) (Config, error) {
	return read(ctx, newSecretFetcher, ghauth.TokenForHost)
}

type secretFetcherFactory func(ctx context.Context) (SecretFetcher, error)

type ghTokenLookup func(host string) (string, string)

func read(ctx context.Context, secrets secretFetcherFactory, ghToken ghTokenLookup) (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	provider := normalizeProvider(v.GetString("llm_provider"))
	cfg := Config{
		Port:            v.GetString("port"),
		Env:             normalizeEnv(v.GetString("env")),
		CORSAllowOrigin: splitAndTrim(v.GetString("cors_allow_origins")),
		LLMProvider:     provider,
		LLMModel:        strings.TrimSpace(v.GetString("llm_model")),
		PromptVersion:   strings.TrimSpace(v.GetString("prompt_version")),
		LLMTimeout:      seconds(v.GetInt("llm_timeout_seconds"), 60),
		LLMMaxAttempts:  atLeast(v.GetInt("llm_max_attempts"), 1),
		LLMRequestsPerM: atLeast(v.GetInt("llm_rpm"), 0),
		GeminiAPIKey:    strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiBaseURL:   strings.TrimSpace(v.GetString("gemini_base_url")),
		AnthropicAPIKey: strings.TrimSpace(v.GetString("anthropic_api_key")),
		OpenAIAPIKey:    strings.TrimSpace(v.GetString("openai_api_key")),
		OpenAIBaseURL:   strings.TrimSpace(v.GetString("openai_base_url")),
		GitHubToken:     strings.TrimSpace(v.GetString("github_token")),
		GitHubAPIURL:    strings.TrimSpace(v.GetString("github_api_url")),
		GitHubTimeout:   seconds(v.GetInt("github_timeout_seconds"), 10),
		RateLimitRPM:    atLeast(v.GetInt("rate_limit_rpm"), 0),
		RateLimitBurst:  atLeast(v.GetInt("rate_limit_burst"), 1),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		OTLPEndpoint:    strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint")),
		OTelServiceName: v.GetString("otel_service_name"),
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModel(provider)
	}

	if cfg.GitHubToken == "" && v.GetBool("github_token_from_gh") && ghToken != nil {
		if token, _ := ghToken("github.com"); token != "" {
			cfg.GitHubToken = token
		}
	}

	if err := resolveSecrets(ctx, v, &cfg, secrets); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the active provider has credentials.
func (c Config) Validate() error {
	if c.APIKey() == "" {
		return fmt.Errorf("%w: %s not set", ErrMissingAPIKey, c.apiKeyEnv())
	}
	return nil
}

// APIKey returns the credential for the active provider.
func (c Config) APIKey() string {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

func (c Config) apiKeyEnv() string {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("env", "dev")
	v.SetDefault("cors_allow_origins", "http://localhost:3000")
	v.SetDefault("llm_provider", ProviderGemini)
	v.SetDefault("llm_model", "")
	v.SetDefault("prompt_version", "v2")
	v.SetDefault("llm_timeout_seconds", 60)
	v.SetDefault("llm_max_attempts", 3)
	v.SetDefault("llm_rpm", 0)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_api_key_secret", "")
	v.SetDefault("gemini_base_url", "")
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("anthropic_api_key_secret", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_api_key_secret", "")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("github_token", "")
	v.SetDefault("github_token_from_gh", false)
	v.SetDefault("github_api_url", "")
	v.SetDefault("github_timeout_seconds", 10)
	v.SetDefault("rate_limit_rpm", 60)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_service_name", "issue-assistant")
	v.SetDefault("config_file", "")
}

func readConfigFile(v *viper.Viper) error {
	path := strings.TrimSpace(v.GetString("config_file"))
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "claude-sonnet-4-5"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-2.5-flash"
	}
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

func atLeast(n, min int) int {
	if n < min {
		return min
	}
	return n
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderAnthropic, "claude":
		return ProviderAnthropic
	case ProviderOpenAI:
		return ProviderOpenAI
	default:
		return ProviderGemini
	}
}
