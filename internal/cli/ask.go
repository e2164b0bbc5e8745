package cli

import (
	"time"

	"github.com/spf13/cobra"

	"issue-assistant/internal/ui"
)

// newPrompter is overridden in tests.
var newPrompter = func() ui.Prompter { return &ui.DefaultPrompter{} }

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Interactively analyze an issue through a running service",
	Long: `Prompt for a repository URL, an issue number and an action, then call the
issue-assistant service and print the result as a table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		return ui.Ask(cmd.Context(), newPrompter(), ui.NewClient(server, timeout), cmd.OutOrStdout())
	},
}

func init() {
	askCmd.Flags().String("server", ui.DefaultServiceURL, "issue-assistant service base URL")
	askCmd.Flags().Duration("timeout", 2*time.Minute, "request timeout")
	rootCmd.AddCommand(askCmd)
}
