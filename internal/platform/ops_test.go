package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/adapters/bucket"
	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/adapters/redis"
	"github.com/aretw0/quill/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("FS Creates Data Directory", func(t *testing.T) {
		dataPath := filepath.Join(t.TempDir(), ".quill")

		storage, err := platform.Init(dataPath)
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		store, ok := storage.(*fs.Store)
		if !ok {
			t.Fatalf("Expected fs store, got %T", storage)
		}
		if store.Path != dataPath {
			t.Errorf("Expected path %s, got %s", dataPath, store.Path)
		}
		if info, err := os.Stat(dataPath); err != nil || !info.IsDir() {
			t.Errorf("Data directory not created")
		}
	})

	t.Run("FS MustExist Fails if Directory Missing", func(t *testing.T) {
		dataPath := filepath.Join(t.TempDir(), "missing")

		if _, err := platform.Init(dataPath, platform.WithMustExist(true)); err == nil {
			t.Error("Expected failure for missing directory")
		}
	})

	t.Run("FS Codec Selects Extension", func(t *testing.T) {
		dataPath := t.TempDir()

		storage, err := platform.Init(dataPath, platform.WithCodec("yaml"))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if err := storage.Set(context.Background(), "notes", []byte("[]\n")); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(dataPath, "notes.yaml")); err != nil {
			t.Errorf("expected notes.yaml: %v", err)
		}
	})

	t.Run("Dev Sandbox Redirects Paths Outside Temp", func(t *testing.T) {
		storage, err := platform.Init("relative-data", platform.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		store := storage.(*fs.Store)
		want := filepath.Join(os.TempDir(), "quill-dev", "relative-data")
		if store.Path != want {
			t.Errorf("Expected sandboxed path %s, got %s", want, store.Path)
		}
		_ = os.RemoveAll(want)
	})

	t.Run("Memory Adapter", func(t *testing.T) {
		storage, err := platform.Init("", platform.WithAdapter(platform.AdapterMemory), platform.WithQuota(4))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := storage.(*memory.Store); !ok {
			t.Fatalf("Expected memory store, got %T", storage)
		}
		err = storage.Set(context.Background(), "notes", []byte("too large"))
		if !errors.Is(err, core.ErrQuotaExceeded) {
			t.Errorf("Expected quota error, got %v", err)
		}
	})

	t.Run("Redis Adapter", func(t *testing.T) {
		s := miniredis.RunT(t)

		storage, err := platform.Init("", platform.WithAdapter(platform.AdapterRedis), platform.WithRedisAddr(s.Addr()))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		rs, ok := storage.(*redis.Store)
		if !ok {
			t.Fatalf("Expected redis store, got %T", storage)
		}
		defer rs.Close()
	})

	t.Run("Bucket Adapter Requires URL", func(t *testing.T) {
		if _, err := platform.Init("", platform.WithAdapter(platform.AdapterBucket)); err == nil {
			t.Error("Expected error without bucket URL")
		}

		storage, err := platform.Init("", platform.WithAdapter(platform.AdapterBucket), platform.WithBucketURL("mem://"))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := storage.(*bucket.Store); !ok {
			t.Fatalf("Expected bucket store, got %T", storage)
		}
	})

	t.Run("Unknown Adapter and Codec", func(t *testing.T) {
		if _, err := platform.Init("", platform.WithAdapter("sqlite")); err == nil {
			t.Error("Expected error for unknown adapter")
		}
		if _, err := platform.Init(t.TempDir(), platform.WithCodec("toml")); err == nil {
			t.Error("Expected error for unknown codec")
		}
	})

	t.Run("Injected Storage Wins", func(t *testing.T) {
		injected := memory.NewStore()
		storage, err := platform.Init("ignored", platform.WithStorage(injected), platform.WithAdapter("sqlite"))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if storage != injected {
			t.Error("Expected injected storage to be returned")
		}
	})
}
