package notes

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/imran-moonward/mynote/pkg/core"
)

// Pending tracks a background write started by Persist.
type Pending struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) finish(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the write has completed (successfully or not).
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the write result. It is nil until Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the write completes or ctx is done. Giving up on the
// wait does not cancel the write.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load replaces notes, categories and clients with the record in storage.
//
// Nothing stored yet is not an error: the state is left as is. A backend
// failure or a payload that cannot be decoded returns a *core.StorageError
// matching core.ErrStorageRead, and the state is left untouched. The
// selected note is never changed.
func (s *Store) Load(ctx context.Context) error {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.failures.Add(1)
		return &core.StorageError{Op: core.OpRead, Key: s.key, Err: err}
	}
	if !found {
		s.logger.Debug("nothing stored yet", "key", s.key)
		return nil
	}

	rec, err := s.codec.Decode([]byte(raw))
	if err != nil {
		s.failures.Add(1)
		s.logger.Warn("stored record is not readable", "key", s.key, "codec", s.codec.Name(), "error", err)
		return &core.StorageError{Op: core.OpRead, Key: s.key, Err: err}
	}

	s.mu.Lock()
	s.notes = rec.Notes
	s.categories = rec.Categories
	s.clients = rec.ClientList
	s.mu.Unlock()

	s.loads.Add(1)
	s.logger.Debug("loaded record", "key", s.key, "notes", len(rec.Notes))
	s.publish(core.EventLoad, 0)
	return nil
}

// Persist snapshots notes, categories and clients now and writes them to
// storage in the background. It returns immediately; the returned Pending
// reports completion. The write is not canceled when ctx is.
//
// Write failures are wrapped in a *core.StorageError (core.ErrStorageWrite),
// logged, reported through the WithErrorHandler callback (unless
// SkipErrorHandler is given) and returned by Pending. Writes are applied in
// Persist call order: a snapshot is never stored over a newer one.
func (s *Store) Persist(ctx context.Context, opts ...PersistOption) *Pending {
	cfg := persistConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Numbered under the same lock as the snapshot so that seq order is
	// snapshot order.
	s.mu.RLock()
	rec := s.snapshotLocked()
	seq := s.seq.Add(1)
	s.mu.RUnlock()

	p := newPending()

	data, err := s.codec.Encode(rec)
	if err != nil {
		p.finish(s.writeFailed(fmt.Errorf("encode: %w", err), cfg.notify()))
		return p
	}

	s.inflight.Add(1)
	lifecycle.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		defer s.inflight.Done()
		p.finish(s.write(ctx, seq, string(data), cfg.notify()))
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		p.finish(s.writeFailed(fmt.Errorf("write panic: %w", err), cfg.notify()))
	}))

	return p
}

type persistConfig struct {
	skipHandler bool
}

func (c persistConfig) notify() bool { return !c.skipHandler }

// PersistOption configures a single Persist call.
type PersistOption func(*persistConfig)

// SkipErrorHandler keeps a failure of this write away from the
// WithErrorHandler callback. The caller reports it from Pending instead.
func SkipErrorHandler() PersistOption {
	return func(c *persistConfig) {
		c.skipHandler = true
	}
}

func (s *Store) write(ctx context.Context, seq uint64, data string, notify bool) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if seq < s.written {
		s.logger.Debug("skipping stale snapshot", "seq", seq, "stored", s.written)
		return nil
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return s.writeFailed(err, notify)
	}
	s.written = seq

	s.persists.Add(1)
	s.logger.Debug("persisted record", "key", s.key, "seq", seq, "bytes", len(data))
	s.publish(core.EventPersist, 0)
	return nil
}

func (s *Store) writeFailed(err error, notify bool) error {
	s.failures.Add(1)
	serr := &core.StorageError{Op: core.OpWrite, Key: s.key, Err: err}
	s.logger.Error("persist failed", "key", s.key, "error", err)
	if notify && s.onError != nil {
		s.onError(serr)
	}
	return serr
}

// PersistAndWait persists and blocks until the write completes.
func (s *Store) PersistAndWait(ctx context.Context, opts ...PersistOption) error {
	return s.Persist(ctx, opts...).Wait(ctx)
}

// Flush waits for every write started so far.
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
