package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
)

var (
	verbose   bool
	dataDir   string
	adapter   string
	codec     string
	redisAddr string
	bucketURL string
	feedURL   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A single-user note editor with pluggable storage",
	Long: `Quill keeps an ordered collection of notes and saves it as a single blob
in a key-value store: a data directory, Redis or a cloud bucket.
Run "quill ui" for the terminal editor.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&dataDir, "data", "d", "", "Data directory (default: nearest .quill directory)")
	flags.StringVar(&adapter, "adapter", quill.AdapterFS, "Storage adapter: fs, memory, redis or bucket")
	flags.StringVar(&codec, "codec", "json", "Collection format: json or yaml")
	flags.StringVar(&redisAddr, "redis-addr", "", "Redis address for the redis adapter")
	flags.StringVar(&bucketURL, "bucket", "", "gocloud.dev bucket URL for the bucket adapter")
	flags.StringVar(&feedURL, "feed", "", "gocloud.dev pubsub topic URL announcing published notes")
}
