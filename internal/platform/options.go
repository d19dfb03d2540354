package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/quill/pkg/clock"
	"github.com/aretw0/quill/pkg/core"
)

// Adapter names understood by Init.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
	AdapterRedis  = "redis"
	AdapterBucket = "bucket"
)

// DefaultAutosaveDelay is the quiet period before an edited note is saved.
const DefaultAutosaveDelay = 2 * time.Second

// DefaultRedisAddr is used by the redis adapter when no address is given.
const DefaultRedisAddr = "localhost:6379"

// options holds the internal configuration for a Quill workspace.
type options struct {
	storage       core.Storage
	logger        *slog.Logger
	adapter       string
	codec         string
	key           string
	redisAddr     string
	bucketURL     string
	feedURL       string
	announcer     core.Announcer
	clock         clock.Clock
	idGenerator   func() string
	autosaveDelay time.Duration
	config        map[string]interface{}
}

// Option defines a functional option for configuring Quill.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:       AdapterFS,
		codec:         "json",
		redisAddr:     DefaultRedisAddr,
		autosaveDelay: DefaultAutosaveDelay,
		config:        make(map[string]interface{}),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithAdapter selects the storage backend by name: "fs" (default),
// "memory", "redis" or "bucket".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithCodec selects the serialization format of the collection ("json" or "yaml").
func WithCodec(name string) Option {
	return func(o *options) {
		o.codec = name
	}
}

// WithKey overrides the storage key the collection is kept under.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a storage backend. If provided, the adapter name is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithRedisAddr sets the server address for the redis adapter.
func WithRedisAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.redisAddr = addr
		}
	}
}

// WithBucketURL sets the gocloud.dev bucket URL for the bucket adapter,
// e.g. "mem://" or "file:///var/lib/quill".
func WithBucketURL(url string) Option {
	return func(o *options) {
		o.bucketURL = url
	}
}

// WithFeedURL announces every published note on the gocloud.dev topic at url.
func WithFeedURL(url string) Option {
	return func(o *options) {
		o.feedURL = url
	}
}

// WithAnnouncer registers a publication hook. It takes precedence over WithFeedURL.
func WithAnnouncer(a core.Announcer) Option {
	return func(o *options) {
		o.announcer = a
	}
}

// WithClock sets the time source for timestamps and autosave timers.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithIDGenerator replaces the default note ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.idGenerator = fn
	}
}

// WithAutosaveDelay sets the quiet period of the editor autosave.
func WithAutosaveDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.autosaveDelay = d
		}
	}
}

// WithQuota caps the memory adapter at the given number of bytes.
func WithQuota(bytes int) Option {
	return func(o *options) {
		o.config["quota"] = bytes
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the data directory to already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Every write returns core.ErrReadOnly.
// 2. The data directory is not created.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), the data directory is redirected into a temporary one.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

func (o *options) readOnly() bool {
	v, _ := o.config["read_only"].(bool)
	return v
}
