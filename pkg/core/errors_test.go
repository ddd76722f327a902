package core_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imran-moonward/mynote/pkg/core"
)

func TestStorageError_Is(t *testing.T) {
	readErr := &core.StorageError{Op: core.OpRead, Key: core.StorageKey, Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, readErr, core.ErrStorageRead)
	assert.ErrorIs(t, readErr, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, readErr, core.ErrStorageWrite)

	writeErr := &core.StorageError{Op: core.OpWrite, Key: core.StorageKey, Err: core.ErrReadOnly}
	assert.ErrorIs(t, writeErr, core.ErrStorageWrite)
	assert.ErrorIs(t, writeErr, core.ErrReadOnly)
	assert.NotErrorIs(t, writeErr, core.ErrStorageRead)

	var se *core.StorageError
	wrapped := errors.Join(errors.New("context"), writeErr)
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, core.OpWrite, se.Op)
	assert.Contains(t, writeErr.Error(), `storage write "mynote/state"`)
}
