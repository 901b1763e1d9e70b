package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/modalkit/internal/engine"
)

// setDocument makes doc the session's document.
func (a *App) setDocument(doc *engine.Engine, path string) {
	a.mu.Lock()
	a.doc = doc
	a.path = path
	a.mu.Unlock()

	a.exec.SetEditor(doc)
	a.exec.SetHistory(doc)
	a.regs.SetFileName(path)
}

// Open loads path into a fresh document. A file that does not exist yet
// opens empty and is created by Save.
func (a *App) Open(path string) error {
	if a.isClosed() {
		return ErrClosed
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.setDocument(engine.New(a.engineOptions()...), path)
		a.logger.Info("new file", "path", path)
		return nil
	case err != nil:
		return NewOperationError("open", path, err)
	}
	defer f.Close()

	doc, err := engine.NewFromReader(f, a.engineOptions()...)
	if err != nil {
		return NewOperationError("open", path, err)
	}
	a.setDocument(doc, path)
	a.logger.Info("file opened", "path", path, "lines", doc.LineCount())
	return nil
}

// SetContent replaces the document with a fresh one holding content. The
// undo history starts over.
func (a *App) SetContent(content string) {
	opts := append(a.engineOptions(), engine.WithContent(content))
	a.setDocument(engine.New(opts...), a.Path())
}

// Content returns the document text.
func (a *App) Content() string {
	return a.Document().Content()
}

// Save writes the document to the file it was opened from.
func (a *App) Save() error {
	path := a.Path()
	if path == "" {
		return ErrNoPath
	}
	return a.SaveAs(path)
}

// SaveAs writes the document to path and makes path the document's file.
// The file is replaced atomically.
func (a *App) SaveAs(path string) error {
	if a.isClosed() {
		return ErrClosed
	}
	doc := a.Document()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return NewOperationError("save", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := doc.WriteTo(tmp); err != nil {
		tmp.Close()
		return NewOperationError("save", path, err)
	}
	if err := tmp.Close(); err != nil {
		return NewOperationError("save", path, err)
	}
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return NewOperationError("save", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return NewOperationError("save", path, err)
	}

	doc.MarkSaved()
	a.mu.Lock()
	a.path = path
	a.mu.Unlock()
	a.regs.SetFileName(path)
	a.logger.Info("file saved", "path", path)
	return nil
}
