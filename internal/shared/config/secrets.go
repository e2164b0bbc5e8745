package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/spf13/viper"
)

// SecretFetcher resolves a named secret to its payload.
type SecretFetcher interface {
	FetchSecret(ctx context.Context, secretPath string) (string, error)
	Close() error
}

type secretManagerFetcher struct {
	client    *secretmanager.Client
	projectID string
}

func newSecretFetcher(ctx context.Context) (SecretFetcher, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return &secretManagerFetcher{client: client, projectID: projectIDFromEnv()}, nil
}

func (f *secretManagerFetcher) FetchSecret(ctx context.Context, secretPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	name, err := normalizeSecretPath(secretPath, f.projectID)
	if err != nil {
		return "", err
	}
	result, err := f.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access secret version %s: %w", name, err)
	}
	return strings.TrimSpace(string(result.GetPayload().GetData())), nil
}

func (f *secretManagerFetcher) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func projectIDFromEnv() string {
	for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// normalizeSecretPath accepts a full version path, a secret path without version, or a bare name.
func normalizeSecretPath(secretPath, projectID string) (string, error) {
	secretPath = strings.TrimSpace(secretPath)
	if strings.HasPrefix(secretPath, "projects/") && strings.Contains(secretPath, "/versions/") {
		return secretPath, nil
	}
	if strings.HasPrefix(secretPath, "projects/") && strings.Contains(secretPath, "/secrets/") {
		return secretPath + "/versions/latest", nil
	}
	if projectID == "" {
		return "", fmt.Errorf("secret %q needs a project: set GOOGLE_CLOUD_PROJECT or use a full path", secretPath)
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, path.Base(secretPath)), nil
}

type secretBinding struct {
	secretKey string
	target    *string
}

// resolveSecrets fills empty provider keys from Secret Manager when a secret name is configured.
func resolveSecrets(ctx context.Context, v *viper.Viper, cfg *Config, factory secretFetcherFactory) error {
	bindings := []secretBinding{
		{secretKey: "gemini_api_key_secret", target: &cfg.GeminiAPIKey},
		{secretKey: "anthropic_api_key_secret", target: &cfg.AnthropicAPIKey},
		{secretKey: "openai_api_key_secret", target: &cfg.OpenAIAPIKey},
	}

	var pending []secretBinding
	for _, b := range bindings {
		if *b.target == "" && strings.TrimSpace(v.GetString(b.secretKey)) != "" {
			pending = append(pending, b)
		}
	}
	if len(pending) == 0 || factory == nil {
		return nil
	}

	fetcher, err := factory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = fetcher.Close() }()

	for _, b := range pending {
		name := strings.TrimSpace(v.GetString(b.secretKey))
		value, err := fetcher.FetchSecret(ctx, name)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", strings.ToUpper(b.secretKey), err)
		}
		*b.target = value
	}
	return nil
}
