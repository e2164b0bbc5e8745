package triage

import (
	"context"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
)

// Fetcher loads issues from the tracker.
type Fetcher interface {
	FetchIssue(ctx context.Context, repoURL string, number int) (issues.IssueData, error)
	FetchDeveloperInfo(ctx context.Context, repoURL string, number int) (issues.DeveloperInfo, error)
}

// Analyzer turns an issue into a triage summary.
type Analyzer interface {
	Analyze(ctx context.Context, issue issues.IssueData) (analysis.AnalysisResult, error)
}

// Service runs the fetch then analyze pipeline for one issue.
type Service struct {
	Fetcher  Fetcher
	Analyzer Analyzer
}

// AnalyzeIssue fetches the issue and analyzes it. Steps run sequentially.
func (s *Service) AnalyzeIssue(ctx context.Context, repoURL string, number int) (analysis.AnalysisResult, error) {
	issue, err := s.Fetcher.FetchIssue(ctx, repoURL, number)
	if err != nil {
		return analysis.AnalysisResult{}, err
	}
	return s.Analyzer.Analyze(ctx, issue)
}

// DeveloperInfo returns the extended display view of the issue.
func (s *Service) DeveloperInfo(ctx context.Context, repoURL string, number int) (issues.DeveloperInfo, error) {
	return s.Fetcher.FetchDeveloperInfo(ctx, repoURL, number)
}
