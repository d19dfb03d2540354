package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/core"
)

// openWorkspace wires a workspace from the persistent flags.
func openWorkspace(ctx context.Context, extra ...quill.Option) *quill.Workspace {
	path := dataDir
	if path == "" && adapter == quill.AdapterFS {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Error getting working directory", err)
		}
		path = quill.DefaultDataPath(wd)
	}

	opts := []quill.Option{
		quill.WithAdapter(adapter),
		quill.WithCodec(codec),
		quill.WithRedisAddr(redisAddr),
		quill.WithBucketURL(bucketURL),
		quill.WithFeedURL(feedURL),
		quill.WithLogger(slog.Default()),
	}
	opts = append(opts, extra...)

	ws, err := quill.Open(ctx, path, opts...)
	if err != nil {
		fatal("Error opening notes", err)
	}
	return ws
}

func closeWorkspace(ctx context.Context, ws *quill.Workspace) {
	if err := ws.Close(ctx); err != nil {
		slog.Warn("failed to close workspace", "error", err)
	}
}

func mustGetNote(svc *core.Service, id string) core.Note {
	n, err := svc.GetNote(id)
	if err != nil {
		fatal("Error reading note "+id, err)
	}
	return n
}
