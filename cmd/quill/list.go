package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/quill/internal/app"
	"github.com/aretw0/quill/pkg/core"
)

var (
	listJSON      bool
	listMatch     string
	listPublished bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
			fatal("Error parsing --match", doublestar.ErrBadPattern)
		}

		notes, err := filterNotes(ws.Service.ListNotes(), listMatch, listPublished)
		if err != nil {
			fatal("Error filtering notes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		if len(notes) == 0 {
			fmt.Println(app.EmptyListPlaceholder)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, n := range notes {
			icon := app.IconDraft
			if n.Published {
				icon = app.IconPublished
			}
			fmt.Fprintf(w, "%s\t%s %s\t%s\n", n.ID, icon, n.Title, n.DisplayDate().Local().Format(app.DateLayout))
		}
		w.Flush()
	},
}

// filterNotes keeps notes whose title matches the glob pattern and, with
// publishedOnly, that are published. Order is preserved.
func filterNotes(notes []core.Note, pattern string, publishedOnly bool) ([]core.Note, error) {
	filtered := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if publishedOnly && !n.Published {
			continue
		}
		if pattern != "" {
			ok, err := doublestar.Match(pattern, n.Title)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		filtered = append(filtered, n)
	}
	return filtered, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only notes whose title matches a glob, e.g. 'Meeting*'")
	listCmd.Flags().BoolVar(&listPublished, "published", false, "Only published notes")
}
