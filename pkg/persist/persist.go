// Package persist stores the note collection as a single blob in a
// key-value core.Storage.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quill/pkg/core"
)

// DefaultKey is the fixed key the collection blob is stored under.
const DefaultKey = "notes"

// Adapter implements core.Persistence on top of a core.Storage.
type Adapter struct {
	storage core.Storage
	codec   Codec
	key     string
	logger  *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCodec selects the blob format. Defaults to JSON.
func WithCodec(c Codec) Option {
	return func(a *Adapter) {
		if c != nil {
			a.codec = c
		}
	}
}

// WithKey overrides the storage key. Defaults to DefaultKey.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used to report unreadable blobs.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New wraps storage into a persistence adapter.
func New(storage core.Storage, opts ...Option) *Adapter {
	a := &Adapter{
		storage: storage,
		codec:   NewJSONCodec(),
		key:     DefaultKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key of the collection blob.
func (a *Adapter) Key() string { return a.key }

// Codec returns the codec in use.
func (a *Adapter) Codec() Codec { return a.codec }

// Storage returns the wrapped storage.
func (a *Adapter) Storage() core.Storage { return a.storage }

// Load reads the collection. A missing blob is an empty collection;
// an unreadable or undecodable one is logged and treated the same way.
func (a *Adapter) Load(ctx context.Context) []core.Note {
	data, err := a.storage.Get(ctx, a.key)
	if errors.Is(err, core.ErrKeyNotFound) {
		a.logger.Debug("no saved notes found", "key", a.key)
		return []core.Note{}
	}
	if err != nil {
		a.logger.Error("failed to load notes", "key", a.key, "error", err)
		return []core.Note{}
	}

	notes, err := a.codec.Decode(data)
	if err != nil {
		a.logger.Error("failed to load notes", "key", a.key, "codec", a.codec.Name(), "error", err)
		return []core.Note{}
	}
	if notes == nil {
		notes = []core.Note{}
	}

	a.logger.Debug("notes loaded", "count", len(notes))
	return notes
}

// Save serializes the full collection and overwrites the stored blob.
func (a *Adapter) Save(ctx context.Context, notes []core.Note) error {
	data, err := a.codec.Encode(notes)
	if err != nil {
		return &core.StorageError{Op: "save", Key: a.key, Err: err}
	}
	if err := a.storage.Set(ctx, a.key, data); err != nil {
		return &core.StorageError{Op: "save", Key: a.key, Err: err}
	}

	a.logger.Debug("notes saved", "count", len(notes))
	return nil
}

var _ core.Persistence = (*Adapter)(nil)

// AdapterState exposes internal state for observability.
type AdapterState struct {
	Key     string `json:"key"`
	Codec   string `json:"codec"`
	Storage string `json:"storage"`
}

// State implements introspection.Introspectable.
func (a *Adapter) State() any {
	storage := fmt.Sprintf("%T", a.storage)
	if comp, ok := a.storage.(introspection.Component); ok {
		storage = comp.ComponentType()
	}
	return AdapterState{Key: a.key, Codec: a.codec.Name(), Storage: storage}
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string {
	return a.codec.Name() + " persistence"
}

var _ introspection.Introspectable = (*Adapter)(nil)
var _ introspection.Component = (*Adapter)(nil)
