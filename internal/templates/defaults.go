package templates

import (
	"embed"
	"io/fs"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/spf13/afero"
)

//go:embed defaults/*
var defaultFiles embed.FS

// DefaultTemplate is the template used when none is configured.
const DefaultTemplate = "standard"

// InstallDefaults copies the bundled metadata and template files into dir.
// Existing files are kept unless overwrite is set. It returns the names of
// the files written.
func InstallDefaults(afs afero.Fs, dir string, overwrite bool) ([]string, error) {
	entries, err := fs.ReadDir(defaultFiles, "defaults")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bundled templates")
	}

	if err := afs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to create %s", dir), errors.ErrIOFailure)
	}

	var written []string
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if !overwrite {
			if exists, _ := afero.Exists(afs, target); exists {
				continue
			}
		}

		data, err := defaultFiles.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return written, errors.Wrapf(err, "failed to read bundled %s", entry.Name())
		}
		if err := afero.WriteFile(afs, target, data, 0o644); err != nil {
			return written, errors.Mark(errors.Wrapf(err, "failed to write %s", target), errors.ErrIOFailure)
		}
		written = append(written, entry.Name())
	}
	return written, nil
}
