package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitodo/internal/application"
	"gitodo/internal/settings"
	"gitodo/internal/urlconfig"
)

var (
	shareBaseURL   string
	shareTokenOnly bool
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Build a shareable configuration link",
	Long: `Encodes the stored configuration into a compact URL token.

The link carries your credentials in encoded (not encrypted) form. Treat it
exactly like the credentials themselves.

Examples:
  gitodo share
  gitodo share --base-url https://todos.example.com
  gitodo share --token-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := getStore()
		if err != nil {
			return err
		}

		cfg := settings.NewStore(kv, logger).Load()
		if cfg == nil {
			return errors.New("no configuration stored; run 'gitodo settings set' first")
		}

		codec := urlconfig.NewCodec(logger)

		if shareTokenOnly {
			token := codec.EncodeToken(*cfg)
			if token == "" {
				return errors.New("configuration could not be encoded")
			}

			fmt.Println(token)

			return nil
		}

		link := codec.Encode(*cfg, shareBaseURL)
		if link == "" {
			return errors.New("configuration could not be encoded")
		}

		fmt.Println(link)

		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareBaseURL, "base-url", application.AppOrigin,
		"base URL the config parameter is appended to")
	shareCmd.Flags().BoolVar(&shareTokenOnly, "token-only", false, "print only the bare token")
	rootCmd.AddCommand(shareCmd)
}
