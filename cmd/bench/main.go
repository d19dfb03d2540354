package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/quill"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	size := flag.Int("size", 2000, "Content length of each note in bytes")
	codec := flag.String("codec", "json", "Collection format: json or yaml")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quill_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := []quill.Option{quill.WithLogger(logger), quill.WithCodec(*codec)}

	ws, err := quill.Open(ctx, benchDir, opts...)
	if err != nil {
		panic(err)
	}

	// Every mutation rewrites the whole collection, so the cost of the
	// last create grows with the collection size.
	fmt.Printf("Creating %d notes in %s...\n", *count, benchDir)
	body := "<p>" + strings.Repeat("x", *size) + "</p>"
	startGen := time.Now()
	var slowest time.Duration
	for i := 0; i < *count; i++ {
		start := time.Now()
		n, err := ws.Service.CreateNote(ctx)
		if err != nil {
			panic(err)
		}
		if err := ws.Service.UpdateNote(ctx, n.ID, fmt.Sprintf("Note %d", i), body); err != nil {
			panic(err)
		}
		if d := time.Since(start); d > slowest {
			slowest = d
		}
	}
	generation := time.Since(startGen)

	// Reload from disk, as a new CLI invocation would.
	startLoad := time.Now()
	svc, err := quill.New(benchDir, opts...)
	if err != nil {
		panic(err)
	}
	load := time.Since(startLoad)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s):\n", svc.Len(), *codec)
	fmt.Printf("  Create+save total: %v\n", generation)
	fmt.Printf("  Slowest save:      %v\n", slowest)
	fmt.Printf("  Load:              %v\n", load)
	fmt.Printf("--------------------------------------------------\n")
}
