// Package fs implements core.Storage on the local filesystem: one file per
// key inside a data directory, written atomically and watched with fsnotify.
package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/quill/pkg/core"
)

// DefaultExt is appended to every key to form its file name.
const DefaultExt = ".json"

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	Ext          string // e.g. ".json" or ".yaml"
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// Store keeps each key in its own file under Path.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string][sha256.Size]byte
	watcherActive bool
	lastWrite     *time.Time
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Ext == "" {
		config.Ext = DefaultExt
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Store{
		Path:    config.Path,
		config:  config,
		written: make(map[string][sha256.Size]byte),
	}
}

// Initialize creates the data directory, or checks that it exists when
// MustExist is set.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Get implements core.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Set implements core.Storage. The file is replaced atomically.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, value, 0644); err != nil {
		return err
	}

	now := time.Now()
	s.mu.Lock()
	s.written[key] = sha256.Sum256(value)
	s.lastWrite = &now
	s.mu.Unlock()

	s.config.Logger.Debug("key written", "key", key, "path", path, "bytes", len(value))
	return nil
}

// Keys lists the stored keys whose name matches the doublestar pattern.
// An empty pattern matches everything.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern: %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(s.Path), pattern+s.config.Ext)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(m, "/") || strings.HasPrefix(m, TempFilePrefix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(m, s.config.Ext))
	}
	sort.Strings(keys)
	return keys, nil
}

// Watch reports changes to key made outside this Store. Events stop and the
// channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	if _, err := s.pathFor(key); err != nil {
		return nil, err
	}

	events := make(chan core.Event, 16)
	w := newWatchWorker(s, key, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) pathFor(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Path, key+s.config.Ext), nil
}

// ValidateKey rejects keys that would escape the data directory.
func ValidateKey(key string) error {
	switch {
	case key == "", key == ".", key == "..":
		return fmt.Errorf("invalid key: %q", key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("invalid key %q: must not contain path separators", key)
	case strings.HasPrefix(key, TempFilePrefix):
		return fmt.Errorf("invalid key %q: reserved prefix", key)
	}
	return nil
}

// isOwnWrite reports whether data is exactly what this Store last wrote to key.
func (s *Store) isOwnWrite(key string, data []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, ok := s.written[key]
	return ok && sum == sha256.Sum256(data)
}

var (
	_ core.Storage   = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
)
