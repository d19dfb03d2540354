package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/aretw0/quill/pkg/core"
)

func newTestStore(t *testing.T, config Config) *Store {
	t.Helper()
	if config.Path == "" {
		config.Path = t.TempDir()
	}
	s := NewStore(config)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return s
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Config{})

	if _, err := s.Get(ctx, "notes"); !errors.Is(err, core.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := s.Set(ctx, "notes", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "notes")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("unexpected value: %s", got)
	}

	if _, err := os.Stat(filepath.Join(s.Path, "notes.json")); err != nil {
		t.Errorf("expected notes.json on disk: %v", err)
	}
}

func TestStore_CustomExt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Config{Ext: "yaml"})

	if err := s.Set(ctx, "notes", []byte("[]\n")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Path, "notes.yaml")); err != nil {
		t.Errorf("expected notes.yaml on disk: %v", err)
	}
}

func TestStore_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Config{})

	for _, key := range []string{"", ".", "..", "../escape", `a\b`, "sub/notes", TempFilePrefix + "x"} {
		if err := s.Set(ctx, key, []byte("x")); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestStore_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	s := newTestStore(t, Config{Path: dir, ReadOnly: true})

	if err := s.Set(ctx, "notes", []byte("x")); !errors.Is(err, core.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	got, err := s.Get(ctx, "notes")
	if err != nil || string(got) != "[]" {
		t.Fatalf("read-only Get = %q, %v", got, err)
	}
}

func TestStore_MustExist(t *testing.T) {
	s := NewStore(Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
	if err := s.Initialize(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Config{})

	for _, key := range []string{"notes", "notes-backup", "settings"} {
		if err := s.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.Path, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	all, err := s.Keys(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"notes", "notes-backup", "settings"}; !reflect.DeepEqual(all, want) {
		t.Errorf("Keys() = %v, want %v", all, want)
	}

	notes, err := s.Keys(ctx, "notes*")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"notes", "notes-backup"}; !reflect.DeepEqual(notes, want) {
		t.Errorf("Keys(notes*) = %v, want %v", notes, want)
	}

	if _, err := s.Keys(ctx, "[unclosed"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestStore_State(t *testing.T) {
	s := newTestStore(t, Config{})
	if err := s.Set(context.Background(), "notes", []byte("[]")); err != nil {
		t.Fatal(err)
	}

	state, ok := s.State().(StoreState)
	if !ok {
		t.Fatalf("unexpected state type %T", s.State())
	}
	if state.Keys != 1 || state.LastWrite == nil || state.Ext != ".json" {
		t.Errorf("unexpected state: %+v", state)
	}
	if s.ComponentType() != "storage" {
		t.Errorf("unexpected component type %q", s.ComponentType())
	}
}

func TestStore_WatchExternalWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestStore(t, Config{})
	if err := s.Set(ctx, "notes", []byte("[]")); err != nil {
		t.Fatal(err)
	}

	events, err := s.Watch(ctx, "notes")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	waitForWatcher(t, s, true)

	// Our own write must not come back as an external change.
	if err := s.Set(ctx, "notes", []byte(`[{"id":"own"}]`)); err != nil {
		t.Fatal(err)
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(s.Path, "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-events:
		t.Fatalf("unexpected event %v", e)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(filepath.Join(s.Path, "notes.json"), []byte(`[{"id":"ext"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		if e.Key != "notes" {
			t.Errorf("unexpected key %q", e.Key)
		}
		if e.Type != core.EventModify && e.Type != core.EventCreate {
			t.Errorf("unexpected event type %q", e.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for external change")
	}

	cancel()
	select {
	case <-drain(events):
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
	waitForWatcher(t, s, false)
}

// drain discards pending events and closes the returned channel once
// events is closed.
func drain(events <-chan core.Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range events {
		}
	}()
	return done
}
