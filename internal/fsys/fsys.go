// Package fsys is the filesystem collaborator used by the extractor,
// the template registry and the renderer. It is a thin layer over afero
// so tests can swap in an in-memory filesystem.
package fsys

import (
	"os"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/spf13/afero"
)

// FileSystem reads and writes text files.
type FileSystem interface {
	// Read returns the content of path. A missing file yields ErrNotFound.
	Read(path string) (string, error)
	// Write creates or overwrites path with data.
	Write(path string, data string) error
}

// AferoFS implements FileSystem on top of an afero.Fs.
type AferoFS struct {
	fs afero.Fs
}

// New wraps fs. A nil fs means the real OS filesystem.
func New(fs afero.Fs) *AferoFS {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &AferoFS{fs: fs}
}

// NewOS returns a FileSystem backed by the operating system.
func NewOS() *AferoFS {
	return New(afero.NewOsFs())
}

// Fs exposes the underlying afero filesystem.
func (a *AferoFS) Fs() afero.Fs {
	return a.fs
}

func (a *AferoFS) Read(path string) (string, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(errors.ErrNotFound, "The file '%s' does not exist.", path)
		}
		return "", errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrIOFailure)
	}
	return string(data), nil
}

func (a *AferoFS) Write(path string, data string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := a.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Mark(errors.Wrapf(err, "failed to create %s", dir), errors.ErrIOFailure)
		}
	}
	if err := afero.WriteFile(a.fs, path, []byte(data), 0644); err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to write %s", path), errors.ErrIOFailure)
	}
	return nil
}

// WriteAtomic writes data to a temp file next to path and renames it into place.
func WriteAtomic(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fs, tmpPath, data, 0644); err != nil {
		return err
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		// Clean up temp file on failure
		_ = fs.Remove(tmpPath)
		return err
	}
	return nil
}
