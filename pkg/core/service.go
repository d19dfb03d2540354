package core

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/quill/pkg/clock"
)

// DeletePrompt is the message passed to the Confirmer before a delete.
const DeletePrompt = "Are you sure you want to delete this note?"

// Service owns the ordered note collection and keeps it in sync with
// persistence. Every mutating operation persists the whole collection
// before returning; if that write fails the mutation is rolled back so
// memory never runs ahead of durable state.
type Service struct {
	mu          sync.RWMutex
	persistence Persistence
	notes       []Note
	clock       clock.Clock
	newID       func() string
	announcer   Announcer
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the time source used for timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithAnnouncer registers a hook notified after each successful publish.
func WithAnnouncer(a Announcer) ServiceOption {
	return func(s *Service) {
		s.announcer = a
	}
}

// WithServiceLogger sets the logger for the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new Service. Call Load to read the persisted collection.
func NewService(p Persistence, opts ...ServiceOption) *Service {
	s := &Service{
		persistence: p,
		notes:       []Note{},
		clock:       clock.Real{},
		newID:       newNoteID,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newNoteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// now strips the monotonic reading and location so timestamps survive a
// persistence round-trip unchanged.
func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

// Load replaces the in-memory collection with the persisted one.
func (s *Service) Load(ctx context.Context) {
	notes := s.persistence.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

// Reload re-reads the collection after an external change.
func (s *Service) Reload(ctx context.Context) {
	s.Load(ctx)
}

// ListNotes returns a copy of the collection in display order.
func (s *Service) ListNotes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Len returns the number of notes.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// GetNote returns the note with the given ID, or ErrNotFound.
func (s *Service) GetNote(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, ErrNotFound
	}
	return s.notes[i].clone(), nil
}

// CreateNote inserts a fresh draft at the head of the collection.
func (s *Service) CreateNote(ctx context.Context) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := Note{
		ID:        s.uniqueID(),
		Title:     DefaultTitle,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
		Published: false,
	}

	snapshot := s.notes
	s.notes = append([]Note{n}, s.notes...)
	if err := s.persistence.Save(ctx, s.notes); err != nil {
		s.notes = snapshot
		return Note{}, err
	}

	s.logger.Debug("note created", "id", n.ID)
	return n.clone(), nil
}

// UpdateNote saves a new title and content. Unknown IDs are ignored.
func (s *Service) UpdateNote(ctx context.Context, id, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("update ignored, note not found", "id", id)
		return nil
	}

	prev := s.notes[i].clone()
	n := &s.notes[i]
	n.Title = NormalizeTitle(title)
	n.Content = content
	n.UpdatedAt = s.now()

	if err := s.persistence.Save(ctx, s.notes); err != nil {
		s.notes[i] = prev
		return err
	}

	s.logger.Debug("note saved", "id", id, "title", n.Title, "content_length", len(content))
	return nil
}

// PublishNote saves title and content and marks the note as published.
// Content that is empty after trimming is rejected with ErrEmptyContent.
// Unknown IDs are ignored.
func (s *Service) PublishNote(ctx context.Context, id, title, content string) error {
	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("publish ignored, note not found", "id", id)
		return nil
	}
	if strings.TrimSpace(content) == "" {
		s.mu.Unlock()
		return ErrEmptyContent
	}

	prev := s.notes[i].clone()
	now := s.now()
	n := &s.notes[i]
	n.Title = NormalizeTitle(title)
	n.Content = content
	n.UpdatedAt = now
	n.Published = true
	n.PublishedAt = &now

	if err := s.persistence.Save(ctx, s.notes); err != nil {
		s.notes[i] = prev
		s.mu.Unlock()
		return err
	}
	published := n.clone()
	s.mu.Unlock()

	s.logger.Info("note published", "id", id, "title", published.Title)
	if s.announcer != nil {
		if err := s.announcer.Announce(ctx, published); err != nil {
			s.logger.Warn("failed to announce published note", "id", id, "error", err)
		}
	}
	return nil
}

// DeleteNote removes a note once confirm agrees. A nil Confirmer or a
// refusal yields ErrNotConfirmed. Unknown IDs are ignored.
func (s *Service) DeleteNote(ctx context.Context, id string, confirm Confirmer) error {
	s.mu.RLock()
	exists := s.indexOf(id) >= 0
	s.mu.RUnlock()
	if !exists {
		s.logger.Debug("delete ignored, note not found", "id", id)
		return nil
	}

	// Asked outside the lock: confirmations may block on user input.
	if confirm == nil || !confirm.Confirm(ctx, DeletePrompt) {
		return ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	snapshot := s.notes
	remaining := make([]Note, 0, len(s.notes)-1)
	remaining = append(remaining, s.notes[:i]...)
	remaining = append(remaining, s.notes[i+1:]...)
	s.notes = remaining

	if err := s.persistence.Save(ctx, s.notes); err != nil {
		s.notes = snapshot
		return err
	}

	s.logger.Debug("note deleted", "id", id)
	return nil
}

// Import merges notes into the collection. Notes whose ID already exists
// are skipped. Imported notes keep their relative order and are placed
// ahead of existing ones. It returns the number of notes added.
func (s *Service) Import(ctx context.Context, notes []Note) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.notes))
	for _, n := range s.notes {
		seen[n.ID] = true
	}

	var added []Note
	for _, n := range notes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		n.Title = NormalizeTitle(n.Title)
		if n.UpdatedAt.Before(n.CreatedAt) {
			n.UpdatedAt = n.CreatedAt
		}
		if !n.Published {
			n.PublishedAt = nil
		}
		added = append(added, n.clone())
	}
	if len(added) == 0 {
		return 0, nil
	}

	snapshot := s.notes
	s.notes = append(added, s.notes...)
	if err := s.persistence.Save(ctx, s.notes); err != nil {
		s.notes = snapshot
		return 0, err
	}
	return len(added), nil
}

func (s *Service) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueID guards against a custom generator handing out a duplicate.
func (s *Service) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}
