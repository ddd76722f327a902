package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrReadOnly     = errors.New("storage is in read-only mode")
	ErrNotFound     = errors.New("note not found")
	ErrDuplicateID  = errors.New("note id already exists")
	ErrInvalidNote  = errors.New("invalid note")
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
)

// Storage operations reported by StorageError.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// StorageError describes a failed load or persist of the note record.
// It matches ErrStorageRead or ErrStorageWrite (depending on Op) and the
// underlying cause with errors.Is.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() []error {
	kind := ErrStorageRead
	if e.Op == OpWrite {
		kind = ErrStorageWrite
	}
	return []error{kind, e.Err}
}
