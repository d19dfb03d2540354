package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newTitle   string
	newContent string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long:  `New creates an untitled, unpublished note at the top of the list and prints its ID.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		n, err := ws.Service.CreateNote(ctx)
		if err != nil {
			fatal("Error creating note", err)
		}

		if cmd.Flags().Changed("title") || cmd.Flags().Changed("content") {
			if err := ws.Service.UpdateNote(ctx, n.ID, newTitle, newContent); err != nil {
				fatal("Error saving note", err)
			}
		}

		fmt.Println(n.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newTitle, "title", "", "Initial title")
	newCmd.Flags().StringVar(&newContent, "content", "", "Initial content markup")
}
