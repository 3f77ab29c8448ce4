package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitodo/internal/cli"
	"gitodo/internal/encoding"
	"gitodo/internal/settings"
)

var settingsShowJSON bool

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := getStore()
		if err != nil {
			return err
		}

		cfg := settings.NewStore(kv, logger).Load()
		if cfg == nil {
			fmt.Println("No configuration stored. Run 'gitodo settings set' to create one.")

			return nil
		}

		if settingsShowJSON {
			data, err := encoding.ToJSONIndent(cfg)
			if err != nil {
				return err
			}

			fmt.Println(string(data))

			return nil
		}

		fmt.Print(cli.RenderSettings(cfg))

		return nil
	},
}

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsShowJSON, "json", false,
		"print the raw configuration as JSON (secrets included)")
	settingsCmd.AddCommand(settingsShowCmd)
}
