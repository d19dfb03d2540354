package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound      = errors.New("note not found")
	ErrKeyNotFound   = errors.New("key not found")
	ErrEmptyContent  = errors.New("note content is empty")
	ErrNotConfirmed  = errors.New("operation was not confirmed")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrReadOnly      = errors.New("storage is in read-only mode")
)

// StorageError reports a failed read or write of the persisted collection.
type StorageError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
