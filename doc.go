// Package mynote is the composition root of the note store.
//
// It connects the note and snackbar stores (pkg/notes, pkg/snackbar) and the
// editor flows (pkg/app) with a storage adapter (filesystem, SQLite or
// memory) selected through functional options.
//
// The whole collection of notes, categories and clients is kept in memory and
// persisted as a single record under one key. Loading replaces the collection;
// persisting snapshots it and writes in the background.
//
// Usage:
//
//	a, err := mynote.Open(".mynote", mynote.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer a.Close(ctx)
//
//	if err := a.Start(ctx); err != nil {
//		// the failure is also queued as an error snack
//	}
//	n, err := a.CreateNote(ctx, mynote.Draft{ClientName: "Imran Ali", Text: "Met goal"})
package mynote
