package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
	"issue-assistant/internal/shared/config"
	"issue-assistant/internal/shared/telemetry"
	"issue-assistant/internal/version"
)

var (
	cfgFile  string
	logLevel string
)

// pipeline is the part of the triage service the local commands drive.
type pipeline interface {
	AnalyzeIssue(ctx context.Context, repoURL string, number int) (analysis.AnalysisResult, error)
	DeveloperInfo(ctx context.Context, repoURL string, number int) (issues.DeveloperInfo, error)
}

// Overridden in tests.
var (
	readConfig  = config.Read
	newAnalyzer = defaultAnalyzer
	newFetcher  = defaultFetcher
)

var rootCmd = &cobra.Command{
	Use:   "issuectl",
	Short: "issuectl - AI triage for GitHub issues",
	Long: `issuectl summarizes and classifies GitHub issues with a language model.

It can run the pipeline locally or talk to a running issue-assistant service.

Example:
  issuectl analyze https://github.com/facebook/react 1234 --format yaml
  issuectl ask --server http://localhost:8000`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if strings.TrimSpace(cfgFile) != "" {
			_ = os.Setenv("CONFIG_FILE", cfgFile)
		}
		telemetry.SetOutput(cmd.ErrOrStderr())
		telemetry.Init(logLevel, "text")
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")
}
