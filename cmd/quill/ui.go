package main

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/tui"
)

var (
	uiLogFile  string
	uiAutosave time.Duration
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal editor",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		// The editor owns the terminal; logs go to a file or nowhere.
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if uiLogFile != "" {
			f, err := tea.LogToFile(uiLogFile, "quill")
			if err != nil {
				fatal("Error opening log file", err)
			}
			defer f.Close()
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
		}
		slog.SetDefault(logger)

		opts := []quill.Option{quill.WithLogger(logger)}
		if uiAutosave > 0 {
			opts = append(opts, quill.WithAutosaveDelay(uiAutosave))
		}
		ws := openWorkspace(ctx, opts...)
		defer closeWorkspace(ctx, ws)

		if err := tui.Run(ctx, ws); err != nil {
			fatal("Error running editor", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringVar(&uiLogFile, "log-file", "", "Write logs to this file while the editor runs")
	uiCmd.Flags().DurationVar(&uiAutosave, "autosave", 0, "Autosave quiet period (default 2s)")
}
