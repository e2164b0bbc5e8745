package ui

import (
	"context"
	"fmt"
	"io"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
)

// Service is the subset of the service API the interactive session uses.
type Service interface {
	Analyze(ctx context.Context, repoURL string, number int) (analysis.AnalysisResult, error)
	DeveloperInfo(ctx context.Context, repoURL string, number int) (issues.DeveloperInfo, error)
}

// Ask prompts for an issue and an action, calls the service and writes the formatted result to w.
func Ask(ctx context.Context, p Prompter, svc Service, w io.Writer) error {
	repoURL, err := p.RepoURL()
	if err != nil {
		return err
	}
	number, err := p.IssueNumber()
	if err != nil {
		return err
	}
	action, err := p.SelectAction()
	if err != nil {
		return err
	}

	switch action {
	case ActionDeveloperInfo:
		info, err := svc.DeveloperInfo(ctx, repoURL, number)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, FormatDeveloperInfo(info))
		return err
	case ActionAnalyze:
		result, err := svc.Analyze(ctx, repoURL, number)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, FormatAnalysis(result))
		return err
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
