package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/pkg/format"
)

var (
	formatKind  string
	formatStart int
	formatEnd   int
	formatURL   string
)

var formatCmd = &cobra.Command{
	Use:   "format [id]",
	Short: "Wrap a range of a note's content in markup",
	Long: `Format wraps the runes [start, end) of the content in the markup of --kind
and saves the note. Kinds: ` + kindNames() + `.
Links need --url.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		kind, err := format.ParseKind(formatKind)
		if err != nil {
			fatal("Error parsing --kind", err)
		}

		n := mustGetNote(ws.Service, args[0])
		buf := format.NewBuffer(n.Content)
		if err := buf.Select(formatStart, formatEnd); err != nil {
			fatal("Error selecting range", err)
		}

		engine := format.NewEngine(format.StaticURL(strings.TrimSpace(formatURL)))
		_, changed, err := engine.Apply(ctx, kind, buf)
		if err != nil {
			fatal("Error applying format", err)
		}
		if !changed {
			fmt.Println("Nothing to format.")
			return
		}

		if err := ws.Service.UpdateNote(ctx, n.ID, n.Title, buf.String()); err != nil {
			fatal("Error saving note", err)
		}
		fmt.Println(buf.String())
	},
}

func kindNames() string {
	names := make([]string, len(format.Kinds))
	for i, k := range format.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringVarP(&formatKind, "kind", "k", string(format.Bold), "Markup to apply")
	formatCmd.Flags().IntVar(&formatStart, "start", 0, "First rune of the range")
	formatCmd.Flags().IntVar(&formatEnd, "end", 0, "End of the range (exclusive)")
	formatCmd.Flags().StringVar(&formatURL, "url", "", "Target of a link")
}
