// Package app wires a note store and a snackbar into the flows of the note
// taking screens: startup, listing, the editor and deletion.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/imran-moonward/mynote/pkg/core"
	"github.com/imran-moonward/mynote/pkg/notes"
	"github.com/imran-moonward/mynote/pkg/snackbar"
)

// User facing messages.
const (
	MsgLoadFailed   = "Could not load notes!"
	MsgSaveFailed   = "Could not save notes!"
	MsgNoteAdded    = "Note Added Successfully!"
	MsgNoteNotAdded = "Could not save Note!"
	MsgNoteUpdated  = "Note Updated Successfully!"
	MsgNoteNotSaved = "Could not update Note!"
	MsgNoteDeleted  = "Note Deleted!"
)

type options struct {
	logger    *slog.Logger
	noteOpts  []notes.Option
	snackOpts []snackbar.Option
}

// Option configures an App.
type Option func(*options)

// WithLogger sets the logger shared by the app and both stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNoteOptions forwards options to the note store.
func WithNoteOptions(opts ...notes.Option) Option {
	return func(o *options) {
		o.noteOpts = append(o.noteOpts, opts...)
	}
}

// WithSnackOptions forwards options to the snackbar.
func WithSnackOptions(opts ...snackbar.Option) Option {
	return func(o *options) {
		o.snackOpts = append(o.snackOpts, opts...)
	}
}

// App owns one note store and one snackbar. Screens receive the App instead
// of reaching for process-wide stores.
type App struct {
	notes  *notes.Store
	snacks *snackbar.Store
	logger *slog.Logger
}

// New creates the stores and connects persist failures to the snackbar.
func New(opts ...Option) *App {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	a := &App{logger: o.logger}
	a.snacks = snackbar.New(append([]snackbar.Option{snackbar.WithLogger(o.logger)}, o.snackOpts...)...)
	noteOpts := append([]notes.Option{notes.WithLogger(o.logger)}, o.noteOpts...)
	a.notes = notes.New(append(noteOpts, notes.WithErrorHandler(a.storeFailed))...)
	return a
}

// Notes returns the note store.
func (a *App) Notes() *notes.Store { return a.notes }

// Snacks returns the snackbar.
func (a *App) Snacks() *snackbar.Store { return a.snacks }

func (a *App) storeFailed(err error) {
	if !errors.Is(err, core.ErrStorageWrite) {
		return
	}
	a.snacks.Push(MsgSaveFailed, core.SeverityError)
}

// Start loads the stored notes. A failure is shown as an error snack and
// returned; the store keeps its defaults.
func (a *App) Start(ctx context.Context) error {
	if err := a.notes.Load(ctx); err != nil {
		a.logger.Error("load failed", "error", err)
		a.snacks.Push(MsgLoadFailed, core.SeverityError)
		return err
	}
	return nil
}

// Refresh reloads the stored notes. Failures are only logged.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.notes.Load(ctx); err != nil {
		a.logger.Warn("refresh failed", "error", err)
		return err
	}
	return nil
}

// Background persists the current state when the app goes inactive.
func (a *App) Background(ctx context.Context) *notes.Pending {
	return a.notes.Persist(ctx)
}

// NewNoteID returns the id the next created note will get.
func (a *App) NewNoteID() int {
	return a.notes.NextID()
}

// CreateNote validates the draft, adds it as a new note and persists.
func (a *App) CreateNote(ctx context.Context, d Draft) (core.Note, error) {
	n, err := d.resolve(a.notes.NextID(), a.notes.Clients(), a.notes.Categories())
	if err != nil {
		a.snacks.Push(MsgNoteNotAdded, core.SeverityError)
		return core.Note{}, err
	}
	if err := a.notes.AddNote(n); err != nil {
		a.snacks.Push(MsgNoteNotAdded, core.SeverityError)
		return core.Note{}, err
	}
	a.snacks.Push(MsgNoteAdded, core.SeveritySuccess)

	if err := a.notes.PersistAndWait(ctx, notes.SkipErrorHandler()); err != nil {
		a.snacks.Push(MsgNoteNotAdded, core.SeverityError)
		return n, err
	}
	a.logger.Info("note created", "id", n.ID, "client", n.Client.Name)
	return n, nil
}

// EditNote selects the note with the given id for editing.
func (a *App) EditNote(id int) error {
	n, ok := a.notes.Note(id)
	if !ok {
		return fmt.Errorf("edit note %d: %w", id, core.ErrNotFound)
	}
	a.notes.SetSelectedNote(&n)
	return nil
}

// CancelEdit leaves the editor without saving.
func (a *App) CancelEdit() {
	a.notes.SetSelectedNote(nil)
}

// SubmitEdit applies the draft to the selected note, persists and clears the
// selection. Empty draft fields keep their stored values.
func (a *App) SubmitEdit(ctx context.Context, d Draft) (core.Note, error) {
	sel, ok := a.notes.SelectedNote()
	if !ok {
		a.snacks.Push(MsgNoteNotSaved, core.SeverityError)
		return core.Note{}, fmt.Errorf("submit edit: no note selected: %w", core.ErrNotFound)
	}

	patch, err := d.patch(sel.ID, a.notes.Clients(), a.notes.Categories())
	if err != nil {
		a.snacks.Push(MsgNoteNotSaved, core.SeverityError)
		return core.Note{}, err
	}
	if !a.notes.UpdateNote(patch) {
		a.notes.SetSelectedNote(nil)
		a.snacks.Push(MsgNoteNotSaved, core.SeverityError)
		return core.Note{}, fmt.Errorf("submit edit %d: %w", sel.ID, core.ErrNotFound)
	}
	updated, _ := a.notes.Note(sel.ID)
	a.snacks.Push(MsgNoteUpdated, core.SeveritySuccess)
	a.notes.SetSelectedNote(nil)

	if err := a.notes.PersistAndWait(ctx, notes.SkipErrorHandler()); err != nil {
		a.snacks.Push(MsgNoteNotSaved, core.SeverityError)
		return updated, err
	}
	a.logger.Info("note updated", "id", updated.ID)
	return updated, nil
}

// Submit creates a note when nothing is selected and updates the selected
// one otherwise.
func (a *App) Submit(ctx context.Context, d Draft) (core.Note, error) {
	if _, ok := a.notes.SelectedNote(); ok {
		return a.SubmitEdit(ctx, d)
	}
	return a.CreateNote(ctx, d)
}

// DeleteNote removes the note with the given id and persists.
func (a *App) DeleteNote(ctx context.Context, id int) error {
	if !a.notes.RemoveNoteByID(id) {
		return fmt.Errorf("delete note %d: %w", id, core.ErrNotFound)
	}
	if sel, ok := a.notes.SelectedNote(); ok && sel.ID == id {
		a.notes.SetSelectedNote(nil)
	}
	a.snacks.Push(MsgNoteDeleted, core.SeverityInfo)
	a.logger.Info("note deleted", "id", id)
	return a.notes.PersistAndWait(ctx)
}

// Close waits for pending writes, releases both stores and closes the
// storage backend when it holds resources.
func (a *App) Close(ctx context.Context) error {
	err := a.notes.Flush(ctx)
	a.notes.Close()
	a.snacks.Close()
	if c, ok := a.notes.Storage().(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}
