package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitodo/internal/model"
	"gitodo/internal/settings"
)

var settingsResetYes bool

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the configuration to defaults",
	Long:  `Replaces the stored configuration with defaults. All credentials are discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !settingsResetYes && !confirm("Discard all stored credentials and reset to defaults?") {
			fmt.Println("Cancelled.")

			return nil
		}

		kv, err := getStore()
		if err != nil {
			return err
		}

		settings.NewStore(kv, logger).Save(model.DefaultSettings())
		fmt.Println("Configuration reset to defaults.")

		return nil
	},
}

func init() {
	settingsResetCmd.Flags().BoolVarP(&settingsResetYes, "yes", "y", false, "skip confirmation prompt")
	settingsCmd.AddCommand(settingsResetCmd)
}
