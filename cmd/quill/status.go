package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// keyLister is implemented by backends that can enumerate stored blobs.
type keyLister interface {
	Keys(ctx context.Context, pattern string) ([]string, error)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the workspace components",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		state := ws.State()
		if lister, ok := ws.Storage.(keyLister); ok {
			keys, err := lister.Keys(ctx, "")
			if err != nil {
				fatal("Error listing stored keys", err)
			}
			state["keys"] = keys
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
