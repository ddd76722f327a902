package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imran-moonward/mynote/pkg/core"
)

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))

	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, s.Writes())
}

func TestStorage_FailureInjection(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	s.FailWrites(boom)
	assert.ErrorIs(t, s.Set(ctx, "k", "v"), boom)
	s.FailWrites(nil)
	require.NoError(t, s.Set(ctx, "k", "v"))

	s.FailReads(boom)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
}

func TestStorage_ReadOnly(t *testing.T) {
	s := NewReadOnly(map[string]string{"k": "seed"})
	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), core.ErrReadOnly)

	v, ok := s.Value("k")
	assert.True(t, ok)
	assert.Equal(t, "seed", v)
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorage_OnWrite(t *testing.T) {
	s := New()
	var got string
	s.OnWrite(func(key, value string) { got = key + "=" + value })
	require.NoError(t, s.Set(context.Background(), "a", "b"))
	assert.Equal(t, "a=b", got)
}
