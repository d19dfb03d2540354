// Package bucket implements core.Storage on a gocloud.dev blob bucket, so the
// collection can live in memory, on local disk or in any cloud object store
// that has a registered driver.
package bucket

import (
	"context"
	"fmt"
	"log/slog"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/aretw0/quill/pkg/core"
)

// Store keeps each key as an object named key+ext.
type Store struct {
	bucket   *blob.Bucket
	url      string
	ext      string
	readOnly bool
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithExt sets the object name suffix. The default is ".json".
func WithExt(ext string) Option {
	return func(s *Store) {
		s.ext = ext
	}
}

// WithReadOnly rejects every write with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(s *Store) {
		s.readOnly = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps an open bucket. The Store takes ownership of it.
func New(b *blob.Bucket, opts ...Option) *Store {
	s := &Store{
		bucket: b,
		ext:    ".json",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the bucket at url, e.g. "mem://" or "file:///var/lib/quill".
func Open(ctx context.Context, url string, opts ...Option) (*Store, error) {
	b, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", url, err)
	}
	s := New(b, opts...)
	s.url = url
	return s, nil
}

// Close closes the underlying bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}

// Initialize checks that the bucket is reachable.
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := s.bucket.IsAccessible(ctx); err != nil {
		return fmt.Errorf("bucket %s is not accessible: %w", s.url, err)
	}
	return nil
}

// Get implements core.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key+s.ext)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, core.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set implements core.Storage. Blob writers only commit on Close, so a
// failed upload leaves the previous object in place.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}

	opts := &blob.WriterOptions{ContentType: contentType(s.ext)}
	if err := s.bucket.WriteAll(ctx, key+s.ext, value, opts); err != nil {
		return fmt.Errorf("bucket write %s: %w", key, err)
	}
	s.logger.Debug("object written", "key", key, "bytes", len(value))
	return nil
}

func contentType(ext string) string {
	switch ext {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

var _ core.Storage = (*Store)(nil)
