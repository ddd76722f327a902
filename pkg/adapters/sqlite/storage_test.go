package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/imran-moonward/mynote/pkg/core"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state.sqlite"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func TestStorageRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	if _, found, err := s.Get(ctx, core.StorageKey); err != nil || found {
		t.Fatalf("Get on empty db = found %v, err %v; want false, nil", found, err)
	}

	if err := s.Set(ctx, core.StorageKey, "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, core.StorageKey, "second"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	v, found, err := s.Get(ctx, core.StorageKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || v != "second" {
		t.Errorf("Get = %q, %v; want \"second\", true", v, found)
	}

	at, err := s.UpdatedAt(ctx, core.StorageKey)
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if time.Since(at) > time.Minute {
		t.Errorf("UpdatedAt = %v, too old", at)
	}
	if _, err := s.UpdatedAt(ctx, "missing"); err != core.ErrNotFound {
		t.Errorf("UpdatedAt(missing) err = %v, want ErrNotFound", err)
	}
}

func TestStorageReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Path() != filepath.Join(dir, FileName) {
		t.Errorf("Path = %s, want file inside dir", s.Path())
	}
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", "persisted"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	ro, err := New(dir, true)
	if err != nil {
		t.Fatalf("New read-only: %v", err)
	}
	defer ro.Close()
	if err := ro.Initialize(ctx); err != nil {
		t.Fatalf("Initialize read-only: %v", err)
	}
	v, found, err := ro.Get(ctx, "k")
	if err != nil || !found || v != "persisted" {
		t.Errorf("Get after reopen = %q, %v, %v", v, found, err)
	}
	if err := ro.Set(ctx, "k", "x"); err != core.ErrReadOnly {
		t.Errorf("Set on read-only = %v, want ErrReadOnly", err)
	}
}

func TestStoreClose(t *testing.T) {
	s := openTest(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestJournalModeIsNotWAL(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}

	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode = %q; read-only opens need a non-WAL database", mode)
	}
}
