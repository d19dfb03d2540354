package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/pkg/core"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note after confirmation. Pass --yes to skip the question.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		ws := openWorkspace(ctx)
		defer closeWorkspace(ctx, ws)

		id := args[0]
		mustGetNote(ws.Service, id)

		confirm := core.Confirmed
		if !deleteYes {
			confirm = stdinConfirmer(os.Stdin, os.Stderr)
		}

		err := ws.Service.DeleteNote(ctx, id, confirm)
		if errors.Is(err, core.ErrNotConfirmed) {
			fmt.Println("Aborted.")
			return
		}
		if err != nil {
			fatal("Error deleting note", err)
		}
		fmt.Printf("Note deleted: %s\n", id)
	},
}

// stdinConfirmer asks the question on out and accepts "y" or "yes" from in.
func stdinConfirmer(in io.Reader, out io.Writer) core.Confirmer {
	return core.ConfirmFunc(func(_ context.Context, message string) bool {
		fmt.Fprintf(out, "%s [y/N] ", message)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}
