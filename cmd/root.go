package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gitodo/internal/application"
	"gitodo/internal/store"
)

var (
	storeBackend string

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Settings and local state manager for git-backed todos",
	Long: `Gitodo manages the configuration of a todo manager that keeps tasks as
markdown files in a GitHub or GitLab repository.

It persists provider credentials and AI settings locally, migrates older
configuration formats, and shares configurations via compact URL tokens.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getStore opens the key-value store selected by --store, once per process.
func getStore() (store.KeyValueStore, error) {
	kv, err := store.GetDB(store.Backend(storeBackend))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return kv, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", string(store.BackendBolt),
		"storage backend (bolt or sqlite)")
}
