package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"issue-assistant/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <repo_url> <issue_number>",
	Short: "Fetch an issue and analyze it locally",
	Long: `Fetch a GitHub issue with its comments and ask the configured model for a
summary, type, priority, labels and impact. Requires the model API key.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", formatJSON, "output format: json, yaml or table")
	analyzeCmd.Flags().String("provider", "", "override LLM_PROVIDER")
	analyzeCmd.Flags().String("model", "", "override LLM_MODEL")
	analyzeCmd.Flags().String("prompt-version", "",
		fmt.Sprintf("override PROMPT_VERSION (%s)", strings.Join(llm.PromptVersions(), ", ")))
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	number, err := parseIssueNumber(args[1])
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	ctx := cmd.Context()
	cfg, err := readConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("provider"); strings.TrimSpace(v) != "" {
		cfg.LLMProvider = strings.ToLower(strings.TrimSpace(v))
	}
	if v, _ := cmd.Flags().GetString("model"); strings.TrimSpace(v) != "" {
		cfg.LLMModel = strings.TrimSpace(v)
	}
	if v, _ := cmd.Flags().GetString("prompt-version"); strings.TrimSpace(v) != "" {
		v = strings.TrimSpace(v)
		if _, ok := llm.PromptTemplate(v); !ok {
			return fmt.Errorf("unknown prompt version %q (want one of %s)", v, strings.Join(llm.PromptVersions(), ", "))
		}
		cfg.PromptVersion = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := newPipeline(ctx, cfg, true)
	if err != nil {
		return err
	}
	result, err := p.AnalyzeIssue(ctx, args[0], number)
	if err != nil {
		return describeFailure(err)
	}
	return writeOutput(cmd.OutOrStdout(), format, result)
}
