package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quill/pkg/adapters/feed"
	"github.com/aretw0/quill/pkg/clock"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/persist"
)

// Workspace is a fully wired Quill instance: storage, persistence and the
// note service, plus the settings the front ends need.
type Workspace struct {
	Service       *core.Service
	Storage       core.Storage
	Persistence   *persist.Adapter
	Clock         clock.Clock
	AutosaveDelay time.Duration
	Logger        *slog.Logger

	closers []func(context.Context) error
}

// Open initializes storage at uri and loads the collection.
// The uri is adapter-specific: the data directory for "fs", ignored otherwise.
func Open(ctx context.Context, uri string, opts ...Option) (*Workspace, error) {
	o := buildOptions(opts)

	codec, err := persist.CodecByName(o.codec)
	if err != nil {
		return nil, err
	}

	storage, err := initStorage(ctx, uri, codec, o)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Storage:       storage,
		AutosaveDelay: o.autosaveDelay,
		Logger:        o.logger,
		Clock:         o.clock,
	}
	if ws.Clock == nil {
		ws.Clock = clock.Real{}
	}
	if c, ok := storage.(io.Closer); ok && o.storage == nil {
		ws.closers = append(ws.closers, func(context.Context) error { return c.Close() })
	}

	persistOpts := []persist.Option{persist.WithCodec(codec), persist.WithLogger(o.logger)}
	if o.key != "" {
		persistOpts = append(persistOpts, persist.WithKey(o.key))
	}
	ws.Persistence = persist.New(storage, persistOpts...)

	svcOpts := []core.ServiceOption{
		core.WithClock(ws.Clock),
		core.WithIDGenerator(o.idGenerator),
		core.WithServiceLogger(o.logger),
	}
	switch {
	case o.announcer != nil:
		svcOpts = append(svcOpts, core.WithAnnouncer(o.announcer))
	case o.feedURL != "":
		a, err := feed.Open(ctx, o.feedURL)
		if err != nil {
			_ = ws.Close(ctx)
			return nil, err
		}
		ws.closers = append(ws.closers, a.Shutdown)
		svcOpts = append(svcOpts, core.WithAnnouncer(a))
	}

	ws.Service = core.NewService(ws.Persistence, svcOpts...)
	ws.Service.Load(ctx)

	o.logger.Debug("workspace opened", "adapter", o.adapter, "codec", codec.Name(), "notes", ws.Service.Len())
	return ws, nil
}

// New opens a workspace and returns its service. Backends holding network
// resources (redis, bucket, feed) should be opened with Open so they can be closed.
func New(uri string, opts ...Option) (*core.Service, error) {
	ws, err := Open(context.Background(), uri, opts...)
	if err != nil {
		return nil, err
	}
	return ws.Service, nil
}

// Close releases backend connections.
func (w *Workspace) Close(ctx context.Context) error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}

// State collects the introspection state of every component that exposes one.
func (w *Workspace) State() map[string]any {
	state := map[string]any{}
	for _, c := range []any{w.Service, w.Persistence, w.Storage} {
		in, ok := c.(introspection.Introspectable)
		if !ok {
			continue
		}
		name := fmt.Sprintf("%T", c)
		if comp, ok := c.(introspection.Component); ok {
			name = comp.ComponentType()
		}
		state[name] = in.State()
	}
	return state
}
