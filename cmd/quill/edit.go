package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/pkg/core"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Save a new title or content for a note",
	Long:  `Edit saves the given fields of a note. Fields that are not passed keep their stored value.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		title, content := fieldsFor(cmd, mustGetNote(ws.Service, args[0]))
		if err := ws.Service.UpdateNote(ctx, args[0], title, content); err != nil {
			fatal("Error saving note", err)
		}
		fmt.Printf("Note saved: %s\n", args[0])
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "Publish a note",
	Long:  `Publish saves the given fields and marks the note as published. Notes without content cannot be published.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		title, content := fieldsFor(cmd, mustGetNote(ws.Service, args[0]))
		err := ws.Service.PublishNote(ctx, args[0], title, content)
		if errors.Is(err, core.ErrEmptyContent) {
			fatal("Error publishing note", errors.New("please add some content before publishing"))
		}
		if err != nil {
			fatal("Error publishing note", err)
		}
		fmt.Printf("Note published: %s\n", args[0])
	},
}

// fieldsFor merges the --title and --content flags over the stored note.
func fieldsFor(cmd *cobra.Command, n core.Note) (string, string) {
	title, content := n.Title, n.Content
	if cmd.Flags().Changed("title") {
		title = editTitle
	}
	if cmd.Flags().Changed("content") {
		content = editContent
	}
	return title, content
}

func init() {
	for _, c := range []*cobra.Command{editCmd, publishCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVar(&editTitle, "title", "", "New title")
		c.Flags().StringVar(&editContent, "content", "", "New content markup")
	}
}
