// Package core holds the domain of Quill: the Note entity, the contracts of
// the storage it is persisted to, and the Service that owns the collection.
package core

import (
	"strings"
	"time"
)

// DefaultTitle is used whenever a note title is empty or whitespace-only.
const DefaultTitle = "Untitled"

// Note is the central entity of the domain.
// Content is an opaque markup string; it is never parsed.
//
// The JSON layout matches the blob written by the browser edition, so
// collections can move between the two without conversion.
type Note struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Content     string     `json:"content" yaml:"content"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
	Published   bool       `json:"published" yaml:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
}

// DisplayDate is the date shown next to a note in listings:
// the publication date for published notes, the last save otherwise.
func (n Note) DisplayDate() time.Time {
	if n.Published && n.PublishedAt != nil {
		return *n.PublishedAt
	}
	return n.UpdatedAt
}

// NormalizeTitle trims a title and falls back to DefaultTitle when nothing is left.
func NormalizeTitle(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return DefaultTitle
	}
	return t
}

func (n Note) clone() Note {
	c := n
	if n.PublishedAt != nil {
		at := *n.PublishedAt
		c.PublishedAt = &at
	}
	return c
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.clone()
	}
	return out
}

// EventType represents the type of change observed on the storage.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a stored key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
