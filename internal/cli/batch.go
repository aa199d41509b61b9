package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/discovery"
	"github.com/mvp-joe/genny/internal/docgen"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/logger"
)

// executeBatch documents every file under opts.dir matching opts.match,
// one after another, then commits once.
func executeBatch(ctx context.Context, ws *workspace, opts genOptions, out, errOut io.Writer) error {
	if opts.outDir == "" {
		opts.outDir = opts.dir
	}

	files, err := discoverSources(ws, opts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No files under %s match %s\n", opts.dir, opts.match)
		return nil
	}

	fmt.Fprintln(out, heading("generating docs..."))
	if generateAll(ctx, ws, opts, files, errOut) > 0 {
		commitDocs(ws, opts)
	}

	if !opts.watch {
		return nil
	}

	return watchSources(ctx, ws, []string{opts.dir}, out, func(changed []string) {
		// Template changes affect every file
		targets := files
		if sources := matchingSources(ws, opts, changed); len(sources) > 0 && len(sources) == len(changed) {
			targets = sources
		}
		if generateAll(ctx, ws, opts, targets, errOut) > 0 {
			commitDocs(ws, opts)
		}
	})
}

func discoverSources(ws *workspace, opts genOptions) ([]string, error) {
	fd, err := discovery.New(ws.fs.Fs(), opts.dir, []string{opts.match}, discovery.DefaultIgnore)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "invalid --match pattern %q", opts.match),
			"patterns use glob syntax, e.g. **/*.py")
	}
	files, err := fd.Discover()
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to scan %s", opts.dir), errors.ErrIOFailure)
	}
	return files, nil
}

// matchingSources keeps the changed files that the batch documents.
func matchingSources(ws *workspace, opts genOptions, changed []string) []string {
	files, err := discoverSources(ws, opts)
	if err != nil {
		return nil
	}
	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[filepath.Clean(f)] = true
	}

	var sources []string
	for _, f := range changed {
		if known[filepath.Clean(f)] {
			sources = append(sources, f)
		}
	}
	return sources
}

// generateAll exports documentation for files and returns how many
// succeeded. Failures are listed in the summary and do not stop the batch.
func generateAll(ctx context.Context, ws *workspace, opts genOptions, files []string, errOut io.Writer) int {
	progress := newBatchProgress(errOut, len(files), false)

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}

		dest := outputPath(opts.dir, opts.outDir, file, opts.format)
		if err := exportFile(ws, opts, file, dest); err != nil {
			logger.Debugw("generation failed", logger.FieldFile, file, logger.FieldError, err)
			progress.OnFileFailed(file, err)
			continue
		}
		progress.OnFileGenerated(file)
	}

	progress.OnComplete()
	return progress.generated
}

func exportFile(ws *workspace, opts genOptions, file, dest string) error {
	gen := ws.generator(opts.template)
	if err := gen.Generate(file, ""); err != nil {
		return err
	}

	status, err := gen.Export(opts.format, dest)
	if err != nil {
		return err
	}
	if status != docgen.ExportOK {
		return errors.Newf("export to %s failed: %s", dest, status)
	}
	return nil
}
