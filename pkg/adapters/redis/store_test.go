package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/redis"
	"github.com/aretw0/quill/pkg/core"
)

func newStore(t *testing.T, s *miniredis.Miniredis, opts ...redis.Option) *redis.Store {
	t.Helper()
	store := redis.New(goredis.NewClient(&goredis.Options{Addr: s.Addr()}), opts...)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	store := newStore(t, s)

	_, err := store.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "notes", []byte(`[]`)))

	got, err := store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	raw, err := s.Get("quill:notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
}

func TestStore_Prefix(t *testing.T) {
	s := miniredis.RunT(t)
	store := newStore(t, s, redis.WithPrefix("tenant-a:"))

	require.NoError(t, store.Set(context.Background(), "notes", []byte("x")))
	assert.True(t, s.Exists("tenant-a:notes"))
	assert.False(t, s.Exists("quill:notes"))
}

func TestStore_ReadOnly(t *testing.T) {
	s := miniredis.RunT(t)
	store := newStore(t, s, redis.WithReadOnly(true))

	err := store.Set(context.Background(), "notes", []byte("x"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestStore_InitializeUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	store := redis.Dial(addr, redis.WithPingTimeout(200*time.Millisecond))
	defer store.Close()
	assert.Error(t, store.Initialize(context.Background()))
}

func TestStore_WatchOtherWriter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := miniredis.RunT(t)
	watcher := newStore(t, s)
	other := newStore(t, s)

	events, err := watcher.Watch(ctx, "notes")
	require.NoError(t, err)

	// Own writes are not reported.
	require.NoError(t, watcher.Set(ctx, "notes", []byte("own")))
	require.NoError(t, other.Set(ctx, "notes", []byte("theirs")))

	select {
	case e := <-events:
		assert.Equal(t, core.EventModify, e.Type)
		assert.Equal(t, "notes", e.Key)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notice")
	}

	select {
	case e, ok := <-events:
		if ok {
			t.Fatalf("unexpected extra event %v", e)
		}
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
