// Package lifecycle exposes storage change notifications as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quill/pkg/core"
)

type storageSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits storage change events.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &storageSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

// Watch subscribes to key on storage and wraps the subscription in a Source.
// Storages that cannot be watched yield (nil, false, nil).
func Watch(ctx context.Context, storage core.Storage, key string) (lifecycle.Source, bool, error) {
	w, ok := storage.(core.Watchable)
	if !ok {
		return nil, false, nil
	}
	events, err := w.Watch(ctx, key)
	if err != nil {
		return nil, true, err
	}
	return NewSource(events), true, nil
}

func (s *storageSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storageSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
