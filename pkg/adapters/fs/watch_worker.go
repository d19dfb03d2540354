package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/debounce"
)

// watchQuietPeriod coalesces the burst of events an editor or an atomic
// rename produces into one notification.
const watchQuietPeriod = 50 * time.Millisecond

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	key       string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debounce.Debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, key string, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		key:        key,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory, not the file: atomic renames replace the inode.
	if err := watcher.Add(w.store.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.store.Path, err)
	}

	w.watcher = watcher
	w.debouncer = debounce.New(watchQuietPeriod, nil)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"key":               w.key,
		}
	})
}

func (w *watchWorker) logger() *slog.Logger {
	return w.store.config.Logger
}

// mapEventType translates an fsnotify operation on the watched file.
func (w *watchWorker) mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) || name != w.key+w.store.config.Ext {
		return false
	}

	eType := w.mapEventType(event)
	if eType == "" {
		return false
	}

	w.logger().Debug("event received", "name", event.Name, "op", event.Op.String())
	w.sendEvent(ctx, core.Event{
		Type:      eType,
		Key:       w.key,
		Timestamp: time.Now().Unix(),
	})
	return true
}

// sendEvent delivers e once the quiet period elapses. The last event of a
// burst wins; writes this Store made itself are dropped.
func (w *watchWorker) sendEvent(ctx context.Context, e core.Event) {
	w.debouncer.Schedule(func() {
		defer func() {
			// The channel may have been closed by a concurrent shutdown.
			_ = recover()
		}()

		if e.Type != core.EventDelete {
			data, err := os.ReadFile(filepath.Join(w.store.Path, w.key+w.store.config.Ext))
			if err == nil && w.store.isOwnWrite(w.key, data) {
				return
			}
		}

		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) handleWatcherError(err error) {
	w.logger().Error("fsnotify error", "error", err)
	if w.store.config.ErrorHandler != nil {
		w.store.config.ErrorHandler(err)
	}
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.logger().Enabled(ctx, slog.LevelDebug) {
				w.logger().Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.logger().Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)
	w.debouncer.Cancel()
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
