package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Notes           int    `json:"notes"`
	Published       int    `json:"published"`
	PersistenceType string `json:"persistence_type"`
	Announcer       bool   `json:"announcer"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	published := 0
	for _, n := range s.notes {
		if n.Published {
			published++
		}
	}

	persistenceType := "unknown"
	if s.persistence != nil {
		persistenceType = "persistence"
		// Try to get component type if persistence implements introspection.Component
		if comp, ok := s.persistence.(introspection.Component); ok {
			persistenceType = comp.ComponentType()
		}
	}

	return ServiceState{
		Notes:           len(s.notes),
		Published:       published,
		PersistenceType: persistenceType,
		Announcer:       s.announcer != nil,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
