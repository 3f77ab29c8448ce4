package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitodo/internal/cli"
	"gitodo/internal/model"
	"gitodo/internal/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect local UI state",
	Long: `Commands for inspecting the locally persisted UI state: task checkpoints,
the retained draft, and the view mode.

Examples:
  gitodo state checkpoints 4f2a91
  gitodo state draft
  gitodo state draft --clear
  gitodo state viewmode archived`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var stateCheckpointsCmd = &cobra.Command{
	Use:   "checkpoints <task-id>",
	Short: "List the stored checkpoints for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := getStore()
		if err != nil {
			return err
		}

		checkpoints := state.NewStore(kv, logger).Checkpoints(args[0])
		fmt.Print(cli.RenderCheckpoints(args[0], checkpoints))

		return nil
	},
}

var stateDraftClear bool

var stateDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Show or clear the retained draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := getStore()
		if err != nil {
			return err
		}

		stateStore := state.NewStore(kv, logger)

		if stateDraftClear {
			stateStore.ClearDraft()
			fmt.Println("Draft cleared.")

			return nil
		}

		draft := stateStore.Draft()
		if draft == nil {
			fmt.Println("No draft stored (or it has expired).")

			return nil
		}

		fmt.Printf("Draft for %s (%s)\n\n%s\n", draft.TodoID, draft.Path, draft.EditContent)

		return nil
	},
}

var stateViewModeCmd = &cobra.Command{
	Use:   "viewmode [active|archived]",
	Short: "Show or set the todo list view mode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := getStore()
		if err != nil {
			return err
		}

		stateStore := state.NewStore(kv, logger)

		if len(args) == 0 {
			fmt.Println(stateStore.ViewMode())

			return nil
		}

		mode := model.NormalizeViewMode(args[0])
		stateStore.SetViewMode(mode)
		fmt.Printf("View mode set to %s.\n", mode)

		return nil
	},
}

func init() {
	stateDraftCmd.Flags().BoolVar(&stateDraftClear, "clear", false, "remove the stored draft")

	stateCmd.AddCommand(stateCheckpointsCmd)
	stateCmd.AddCommand(stateDraftCmd)
	stateCmd.AddCommand(stateViewModeCmd)
	rootCmd.AddCommand(stateCmd)
}
