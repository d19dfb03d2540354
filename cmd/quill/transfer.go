package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/pkg/persist"
)

var transferFormat string

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge notes from an exported collection",
	Long: `Import reads a collection written by "quill export" (or by the browser
edition) and adds the notes whose IDs are not present yet.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		c, err := persist.CodecByName(codecFor(args[0]))
		if err != nil {
			fatal("Error selecting format", err)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Error reading file", err)
		}
		notes, err := c.Decode(data)
		if err != nil {
			fatal("Error decoding notes", err)
		}

		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		added, err := ws.Service.Import(ctx, notes)
		if err != nil {
			fatal("Error importing notes", err)
		}
		fmt.Printf("Imported %d of %d notes\n", added, len(notes))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole collection to stdout",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		c, err := persist.CodecByName(codecFor(""))
		if err != nil {
			fatal("Error selecting format", err)
		}

		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		data, err := c.Encode(ws.Service.ListNotes())
		if err != nil {
			fatal("Error encoding notes", err)
		}
		os.Stdout.Write(data)
	},
}

// codecFor picks --format, then the file extension, then json.
func codecFor(path string) string {
	if transferFormat != "" {
		return transferFormat
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
	for _, c := range []*cobra.Command{importCmd, exportCmd} {
		c.Flags().StringVarP(&transferFormat, "format", "f", "", "Collection format: "+strings.Join(persist.CodecNames(), ", "))
	}
}
