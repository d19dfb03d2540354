// Package memory provides a map-backed core.Storage, the stand-in for the
// browser's local storage in tests and ephemeral sessions.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/quill/pkg/core"
)

// Store is an in-memory key-value storage with an optional byte quota.
type Store struct {
	mu       sync.RWMutex
	data     map[string][]byte
	quota    int
	readOnly bool
	failNext error
	watchers map[string][]chan core.Event
}

// Option configures a Store.
type Option func(*Store)

// WithQuota limits the total size of stored values in bytes.
// Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(s *Store) {
		s.quota = bytes
	}
}

// WithReadOnly rejects every write with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(s *Store) {
		s.readOnly = enabled
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data:     make(map[string][]byte),
		watchers: make(map[string][]chan core.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize implements core.Storage.
func (s *Store) Initialize(ctx context.Context) error {
	return nil
}

// Get implements core.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set implements core.Storage.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}
	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	if s.quota > 0 {
		used := len(value)
		for k, v := range s.data {
			if k != key {
				used += len(v)
			}
		}
		if used > s.quota {
			return fmt.Errorf("%w: %d of %d bytes", core.ErrQuotaExceeded, used, s.quota)
		}
	}

	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Put writes a value as another process would: it bypasses quota checks and
// notifies watchers of key.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	_, existed := s.data[key]
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	subs := append([]chan core.Event(nil), s.watchers[key]...)
	s.mu.Unlock()

	evType := core.EventModify
	if !existed {
		evType = core.EventCreate
	}
	e := core.Event{Type: evType, Key: key, Timestamp: time.Now().Unix()}
	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// FailNext makes the next Set return err.
func (s *Store) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Watch implements core.Watchable. Only writes made through Put are reported.
func (s *Store) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	ch := make(chan core.Event, 16)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.watchers[key]
		for i, c := range subs {
			if c == ch {
				s.watchers[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}

var (
	_ core.Storage   = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
)
