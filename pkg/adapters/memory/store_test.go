package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/core"
)

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	_, err := s.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "notes", []byte("[]")))
	got, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	// Returned slices are copies.
	got[0] = 'x'
	again, _ := s.Get(ctx, "notes")
	assert.Equal(t, "[]", string(again))
}

func TestStore_Quota(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore(memory.WithQuota(8))

	require.NoError(t, s.Set(ctx, "notes", []byte("12345678")))

	err := s.Set(ctx, "notes", []byte("123456789"))
	assert.ErrorIs(t, err, core.ErrQuotaExceeded)

	got, _ := s.Get(ctx, "notes")
	assert.Equal(t, "12345678", string(got), "failed write leaves previous value intact")
}

func TestStore_ReadOnlyAndFailNext(t *testing.T) {
	ctx := context.Background()

	ro := memory.NewStore(memory.WithReadOnly(true))
	assert.ErrorIs(t, ro.Set(ctx, "k", nil), core.ErrReadOnly)

	s := memory.NewStore()
	boom := errors.New("boom")
	s.FailNext(boom)
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), boom)
	assert.NoError(t, s.Set(ctx, "k", []byte("v")))
}

func TestStore_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := memory.NewStore()

	events, err := s.Watch(ctx, "notes")
	require.NoError(t, err)

	s.Put("notes", []byte("[]"))
	s.Put("other", []byte("[]"))
	s.Put("notes", []byte("[ ]"))

	select {
	case e := <-events:
		assert.Equal(t, core.EventCreate, e.Type)
		assert.Equal(t, "notes", e.Key)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for create event")
	}
	select {
	case e := <-events:
		assert.Equal(t, core.EventModify, e.Type)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for modify event")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, time.Second, 10*time.Millisecond)
}
