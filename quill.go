package quill

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/clock"
	"github.com/aretw0/quill/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// Service is a public alias for the note service.
type Service = core.Service

// Workspace is a wired service with its storage, returned by Open.
type Workspace = platform.Workspace

// --- Configuration ---

// Option defines a functional option for configuring Quill.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
	AdapterRedis  = platform.AdapterRedis
	AdapterBucket = platform.AdapterBucket
)

// WithAdapter selects the storage backend by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithCodec selects the serialization format ("json" or "yaml").
func WithCodec(name string) Option {
	return platform.WithCodec(name)
}

// WithKey overrides the storage key of the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage backend.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithRedisAddr sets the server address of the redis adapter.
func WithRedisAddr(addr string) Option {
	return platform.WithRedisAddr(addr)
}

// WithBucketURL sets the gocloud.dev bucket URL of the bucket adapter.
func WithBucketURL(url string) Option {
	return platform.WithBucketURL(url)
}

// WithFeedURL announces published notes on a gocloud.dev pubsub topic.
func WithFeedURL(url string) Option {
	return platform.WithFeedURL(url)
}

// WithAnnouncer registers a custom publication hook.
func WithAnnouncer(a core.Announcer) Option {
	return platform.WithAnnouncer(a)
}

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return platform.WithClock(c)
}

// WithAutosaveDelay sets the quiet period of the editor autosave.
func WithAutosaveDelay(d time.Duration) Option {
	return platform.WithAutosaveDelay(d)
}

// WithQuota caps the memory adapter at the given number of bytes.
func WithQuota(bytes int) Option {
	return platform.WithQuota(bytes)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithWatcherErrorHandler registers a callback for runtime failures of the
// filesystem watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly rejects every write.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// Open wires a workspace at uri and loads the collection.
func Open(ctx context.Context, uri string, opts ...Option) (*Workspace, error) {
	return platform.Open(ctx, uri, opts...)
}

// New creates a note service at uri.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// Init initializes a storage backend explicitly.
func Init(uri string, opts ...Option) (core.Storage, error) {
	return platform.Init(uri, opts...)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding a .quill data directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// DefaultDataPath returns the data directory used for startDir.
func DefaultDataPath(startDir string) string {
	return platform.DefaultDataPath(startDir)
}
