// Package redis implements core.Storage on a Redis server. Every write is
// announced on a per-key channel so other processes can watch it.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/aretw0/quill/pkg/core"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "quill:"

// Store is a Redis-backed key-value storage.
type Store struct {
	rdb         *redis.Client
	prefix      string
	origin      string
	pingTimeout time.Duration
	readOnly    bool
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithPingTimeout bounds the connectivity check done by Initialize.
func WithPingTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pingTimeout = d
		}
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

// New wraps an existing client.
func New(rdb *redis.Client, opts ...Option) *Store {
	s := &Store{
		rdb:         rdb,
		prefix:      DefaultPrefix,
		origin:      uuid.NewString(),
		pingTimeout: 5 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial creates a client for addr and wraps it.
func Dial(addr string, opts ...Option) *Store {
	return New(redis.NewClient(&redis.Options{Addr: addr}), opts...)
}

// Close releases the client connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Initialize checks connectivity.
func (s *Store) Initialize(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()
	if err := s.rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("could not connect to redis: %w", err)
	}
	return nil
}

// Get implements core.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Set implements core.Storage. The value and its change notice are sent in
// one MULTI/EXEC transaction.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.prefix+key, value, 0)
		pipe.Publish(ctx, s.channel(key), s.origin)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	s.logger.Debug("key written", "key", key, "bytes", len(value))
	return nil
}

// Watch reports writes to key made by other Store instances.
func (s *Store) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	sub := s.rdb.Subscribe(ctx, s.channel(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", key, err)
	}

	events := make(chan core.Event, 16)
	messages := sub.Channel()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-messages:
				if !ok {
					return nil
				}
				if msg.Payload == s.origin {
					continue
				}
				select {
				case events <- core.Event{Type: core.EventModify, Key: key, Timestamp: time.Now().Unix()}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("redis watch failed", "key", key, "error", err)
	}))

	return events, nil
}

func (s *Store) channel(key string) string {
	return s.prefix + "changed:" + key
}

var (
	_ core.Storage   = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
)
