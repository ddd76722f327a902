package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imran-moonward/mynote/pkg/core"
)

func newTestStorage(t *testing.T, cfg Config) *Storage {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "store")
	}
	s := NewStorage(cfg)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t, Config{Ext: "json"})

	_, found, err := s.Get(ctx, core.StorageKey)
	require.NoError(t, err)
	assert.False(t, found, "missing file is not an error")

	require.NoError(t, s.Set(ctx, core.StorageKey, `{"notes":[]}`))

	v, found, err := s.Get(ctx, core.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"notes":[]}`, v)

	assert.Equal(t, filepath.Join(s.Path, "mynote_state.json"), s.FileFor(core.StorageKey))
	_, err = os.Stat(s.FileFor(core.StorageKey))
	assert.NoError(t, err)
}

func TestStorage_FileForSanitizes(t *testing.T) {
	s := NewStorage(Config{Path: "/vault"})
	assert.Equal(t, filepath.Join("/vault", "a_b_c.blob"), s.FileFor("a/b:c"))
	assert.Equal(t, filepath.Join("/vault", "__x.blob"), s.FileFor("../x"))
}

func TestStorage_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mynote_state.blob"), []byte("seed"), 0644))

	s := newTestStorage(t, Config{Path: dir, ReadOnly: true})
	err := s.Set(context.Background(), core.StorageKey, "x")
	assert.ErrorIs(t, err, core.ErrReadOnly)

	v, found, err := s.Get(context.Background(), core.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "seed", v)
}

func TestStorage_InitializeMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	err := NewStorage(Config{Path: missing, MustExist: true}).Initialize(context.Background())
	assert.ErrorContains(t, err, "does not exist")

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err = NewStorage(Config{Path: file, MustExist: true}).Initialize(context.Background())
	assert.ErrorContains(t, err, "not a directory")

	created := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, NewStorage(Config{Path: created}).Initialize(context.Background()))
	assert.DirExists(t, created)
}

func TestStorage_State(t *testing.T) {
	s := newTestStorage(t, Config{})
	require.NoError(t, s.Set(context.Background(), "k", "v"))

	state, ok := s.State().(StorageState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Keys)
	assert.Equal(t, DefaultExt, state.Ext)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "fs-storage", s.ComponentType())
}

func TestStorage_WatchExternalChange(t *testing.T) {
	s := newTestStorage(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, core.StorageKey)
	require.NoError(t, err)

	// Own writes are not reported.
	require.NoError(t, s.Set(ctx, core.StorageKey, "mine"))
	select {
	case e := <-events:
		t.Fatalf("unexpected event for own write: %v", e)
	case <-time.After(300 * time.Millisecond):
	}

	// Someone else rewrites the file.
	require.NoError(t, os.WriteFile(s.FileFor(core.StorageKey), []byte("theirs"), 0644))
	select {
	case e := <-events:
		assert.Equal(t, core.EventModify, e.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for external change")
	}

	cancel()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
}

func TestDebouncer_Coalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	calls := make(chan struct{}, 10)
	for i := 0; i < 5; i++ {
		d.trigger(func() { calls <- struct{}{} })
	}
	time.Sleep(150 * time.Millisecond)
	d.stop()
	assert.Len(t, calls, 1)

	d.trigger(func() { calls <- struct{}{} })
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, calls, 1, "no triggers after stop")
}
