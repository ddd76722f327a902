package platform

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/imran-moonward/mynote/pkg/adapters/fs"
	"github.com/imran-moonward/mynote/pkg/adapters/memory"
	"github.com/imran-moonward/mynote/pkg/adapters/sqlite"
	"github.com/imran-moonward/mynote/pkg/app"
	"github.com/imran-moonward/mynote/pkg/core"
	"github.com/imran-moonward/mynote/pkg/notes"
	"github.com/imran-moonward/mynote/pkg/snackbar"
)

// Open builds the storage backend for uri, initializes it and wires a note
// store and a snackbar on top of it. The stored notes are not loaded yet;
// call App.Start for that.
//
//	a, err := platform.Open(".mynote", platform.WithAdapter("sqlite"))
//
// The uri is adapter-specific: a directory for "fs" and "sqlite", ignored by
// "memory".
func Open(uri string, opts ...Option) (*app.App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, err := openStorage(uri, o)
	if err != nil {
		return nil, err
	}

	appOpts := []app.Option{
		app.WithNoteOptions(
			notes.WithStorage(storage),
			notes.WithCodec(o.codec),
			notes.WithEventBuffer(o.eventBuffer),
		),
		app.WithSnackOptions(
			snackbar.WithTimeout(o.snackTimeout),
			snackbar.WithEventBuffer(o.eventBuffer),
		),
	}
	if o.logger != nil {
		appOpts = append(appOpts, app.WithLogger(o.logger))
	}
	return app.New(appOpts...), nil
}

// OpenStorage builds and initializes only the storage backend.
func OpenStorage(uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return openStorage(uri, o)
}

func openStorage(uri string, o *options) (core.Storage, error) {
	var storage core.Storage
	if o.storage != nil {
		storage = o.storage
	} else {
		var err error
		switch o.adapter {
		case AdapterFS, "":
			storage = fs.NewStorage(fs.Config{
				Path:         resolvePath(uri, o),
				MustExist:    o.mustExist,
				ReadOnly:     o.readOnly,
				Ext:          "." + o.codec.Name(),
				Logger:       o.logger,
				ErrorHandler: o.watchErrors,
			})
		case AdapterSQLite:
			storage, err = openSQLite(resolvePath(uri, o), o)
		case AdapterMemory:
			storage = memory.New()
		default:
			return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := storage.Initialize(context.Background()); err != nil {
		if c, ok := storage.(io.Closer); ok && o.storage == nil {
			_ = c.Close()
		}
		return nil, fmt.Errorf("initialize %s storage: %w", o.adapter, err)
	}
	return storage, nil
}

func openSQLite(dir string, o *options) (core.Storage, error) {
	if o.mustExist && !isDir(dir) {
		return nil, fmt.Errorf("storage directory %s does not exist", dir)
	}
	return sqlite.New(filepath.Join(dir, sqlite.FileName), o.readOnly)
}

// resolvePath applies the dev sandbox to file-backed adapters. Read-only
// opens and an explicit WithDevSafety(false) use the real path.
func resolvePath(path string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	resolved := ResolveStorePath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		switch {
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypass:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	return resolved
}

