package core

import "context"

// Storage is the key-value contract the collection is persisted to.
// Adhering to this interface keeps the core independent of the
// underlying mechanism (filesystem, Redis, object storage, memory).
type Storage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	// Implementations must either replace the value entirely or leave it untouched.
	Set(ctx context.Context, key string, value []byte) error

	// Initialize ensures the underlying storage is ready (e.g. create directories, ping a server).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by storages that can report changes made
// to a key by another process.
type Watchable interface {
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Persistence loads and saves the whole note collection.
type Persistence interface {
	// Load never fails: missing or unreadable data yields an empty collection.
	Load(ctx context.Context) []Note

	// Save overwrites the persisted collection.
	Save(ctx context.Context, notes []Note) error
}

// Announcer is notified after a note has been published.
type Announcer interface {
	Announce(ctx context.Context, n Note) error
}

// Confirmer gates destructive operations behind an explicit confirmation.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, message string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// Confirmed is a Confirmer for callers that already obtained a confirmation.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
