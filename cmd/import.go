package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitodo/internal/cli"
	"gitodo/internal/settings"
	"gitodo/internal/urlconfig"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import <link-or-token>",
	Short: "Import a shared configuration",
	Long: `Decodes a shared configuration link or bare token, shows what it contains
(with secrets masked), and saves it as the stored configuration.

The imported configuration replaces the stored one wholesale.

Examples:
  gitodo import 'https://app.gitodo.dev/?config=eyJnaCI6...'
  gitodo import eyJnaCI6... --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := urlconfig.TokenFromInput(args[0])

		cfg := urlconfig.NewCodec(logger).Decode(token)
		if cfg == nil {
			return errors.New("the link does not contain a valid configuration")
		}

		fmt.Print(cli.RenderSettings(cfg))

		if !importYes && !confirm("Replace the stored configuration with this one?") {
			fmt.Println("Cancelled.")

			return nil
		}

		kv, err := getStore()
		if err != nil {
			return err
		}

		settings.NewStore(kv, logger).Save(*cfg)
		fmt.Println("Configuration imported.")

		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(importCmd)
}
