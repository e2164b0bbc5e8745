package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"issue-assistant/internal/bootstrap"
	"issue-assistant/internal/shared/config"
	"issue-assistant/internal/triage"
)

func defaultAnalyzer(ctx context.Context, cfg config.Config) (triage.Analyzer, error) {
	return bootstrap.NewAnalysisService(ctx, cfg)
}

func defaultFetcher(cfg config.Config) (triage.Fetcher, error) {
	return bootstrap.NewGitHubClient(cfg)
}

func newPipeline(ctx context.Context, cfg config.Config, withModel bool) (pipeline, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	svc := &triage.Service{Fetcher: fetcher}
	if withModel {
		analyzer, err := newAnalyzer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		svc.Analyzer = analyzer
	}
	return svc, nil
}

func parseIssueNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("issue number must be a positive integer, got %q", raw)
	}
	return n, nil
}

// describeFailure renders a pipeline error the way the HTTP service reports it.
func describeFailure(err error) error {
	code, detail := triage.Describe(err)
	return fmt.Errorf("%s: %s", code, detail)
}
