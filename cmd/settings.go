package cmd

import (
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the stored configuration",
	Long: `Commands for inspecting and changing the stored configuration.

Available Commands:
  show      Display the current configuration (secrets masked)
  set       Change configuration fields
  reset     Reset the configuration to defaults

Examples:
  gitodo settings show
  gitodo settings set --provider gitlab --folder work
  gitodo settings set --gh-owner me --gh-repo todos --prompt-secrets
  gitodo settings reset`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
