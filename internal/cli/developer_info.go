package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var developerInfoCmd = &cobra.Command{
	Use:   "developer-info <repo_url> <issue_number>",
	Short: "Show issue metadata and filtered comments",
	Long:  `Fetch issue metadata, top comments and raw fields from GitHub. No model key is needed.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDeveloperInfo,
}

func init() {
	developerInfoCmd.Flags().StringP("format", "f", formatJSON, "output format: json, yaml or table")
	rootCmd.AddCommand(developerInfoCmd)
}

func runDeveloperInfo(cmd *cobra.Command, args []string) error {
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
	p, err := newPipeline(ctx, cfg, false)
	if err != nil {
		return err
	}
	info, err := p.DeveloperInfo(ctx, args[0], number)
	if err != nil {
		return describeFailure(err)
	}
	return writeOutput(cmd.OutOrStdout(), format, info)
}
