// Package feed announces published notes on a gocloud.dev pubsub topic.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"

	"github.com/aretw0/quill/pkg/core"
)

// EventPublished is the value of the "event" metadata entry.
const EventPublished = "published"

// Message is the body sent for each published note.
type Message struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Announcer sends a Message on a topic for every published note.
type Announcer struct {
	topic *pubsub.Topic
	url   string
}

// New wraps an open topic. The Announcer takes ownership of it.
func New(topic *pubsub.Topic) *Announcer {
	return &Announcer{topic: topic}
}

// Open opens the topic at url, e.g. "mem://notes".
func Open(ctx context.Context, url string) (*Announcer, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open topic %s: %w", url, err)
	}
	return &Announcer{topic: topic, url: url}, nil
}

// Announce implements core.Announcer.
func (a *Announcer) Announce(ctx context.Context, n core.Note) error {
	msg := Message{ID: n.ID, Title: n.Title, Content: n.Content}
	if n.PublishedAt != nil {
		msg.PublishedAt = *n.PublishedAt
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return a.topic.Send(ctx, &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			"event": EventPublished,
			"id":    n.ID,
		},
	})
}

// Shutdown flushes pending messages and closes the topic.
func (a *Announcer) Shutdown(ctx context.Context) error {
	return a.topic.Shutdown(ctx)
}

// String returns the topic URL, if known.
func (a *Announcer) String() string {
	if a.url == "" {
		return "pubsub"
	}
	return a.url
}

var _ core.Announcer = (*Announcer)(nil)
