package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imran-moonward/mynote"
	"github.com/imran-moonward/mynote/pkg/adapters/fs"
	"github.com/imran-moonward/mynote/pkg/core"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch_UnsupportedAdapterReturnsError(t *testing.T) {
	a, err := mynote.Open("", mynote.WithAdapter("memory"))
	require.NoError(t, err)
	defer a.Close(context.Background())

	err = runWatch(context.Background(), a, &lockedBuffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support watching")

	// the app is still usable, so the caller can close it before exiting
	_, err = a.CreateNote(context.Background(), mynote.Draft{Text: "x"})
	assert.NoError(t, err)
}

func TestRunWatch_ReloadsExternalChange(t *testing.T) {
	dir := t.TempDir()
	a, err := mynote.Open(dir)
	require.NoError(t, err)
	defer a.Close(context.Background())
	require.NoError(t, a.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, a, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching 0 notes")
	}, 2*time.Second, 10*time.Millisecond)

	file := a.Notes().Storage().(*fs.Storage).FileFor(core.StorageKey)
	external := `{"notes":[{"id":1,"client":{"id":1,"name":"Imran Ali"},"category":"Active Duty","note":"from elsewhere"}]}`
	require.NoError(t, os.WriteFile(file, []byte(external), 0644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "reloaded: 1 notes")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not return after cancel")
	}
}
