package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/mvp-joe/genny/internal/discovery"
	"github.com/mvp-joe/genny/internal/docgen"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/logger"
	"github.com/mvp-joe/genny/internal/templates"
	"github.com/mvp-joe/genny/internal/watcher"
	"github.com/spf13/cobra"
)

// genOptions holds the gen flags after settings defaults are applied.
type genOptions struct {
	code        string
	template    string
	format      string
	destination string
	preview     bool
	noCommit    bool
	dir         string
	match       string
	outDir      string
	watch       bool
}

var genFlags genOptions

// genCmd represents the gen command
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate documentation from a Python file",
	Long: `Gen extracts the structure of a Python file and renders it with a template.

Flags fall back to the settings defaults (default_code, default_template,
default_format, default_destination). With a destination the document is
exported there; without one it is printed. When repo_path is set, exported
documentation is committed to that repository.

Examples:
  # Print markdown for a file
  genny gen --code app/models.py

  # Export HTML using the overview template
  genny gen --code app/models.py --template overview --format html --destination docs/models.html

  # Preview the markdown rendering in the terminal
  genny gen --code app/models.py --preview

  # Document every Python file under app/ into docs/
  genny gen --dir app --out-dir docs --format markdown

  # Regenerate whenever the source or a template changes
  genny gen --code app/models.py --destination docs/models.md --watch
`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVarP(&genFlags.code, "code", "c", "", "Path to the code file")
	genCmd.Flags().StringVarP(&genFlags.template, "template", "t", "", "Template to use for documentation")
	genCmd.Flags().StringVarP(&genFlags.format, "format", "f", "", "Output format (markdown, html, json, yaml)")
	genCmd.Flags().StringVarP(&genFlags.destination, "destination", "d", "", "Destination file path for the generated documentation")
	genCmd.Flags().BoolVar(&genFlags.preview, "preview", false, "Render the document as markdown in the terminal instead of printing raw output")
	genCmd.Flags().BoolVar(&genFlags.noCommit, "no-commit", false, "Do not commit exported documentation to repo_path")
	genCmd.Flags().StringVar(&genFlags.dir, "dir", "", "Document every matching file under this directory")
	genCmd.Flags().StringVar(&genFlags.match, "match", discovery.DefaultPattern, "Glob selecting files under --dir")
	genCmd.Flags().StringVar(&genFlags.outDir, "out-dir", "", "Output directory for --dir (default is --dir itself)")
	genCmd.Flags().BoolVarP(&genFlags.watch, "watch", "w", false, "Regenerate when the source or templates change")
}

func runGen(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return executeGen(ctx, ws, genFlags, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// withDefaults fills unset options from the settings.
func (o genOptions) withDefaults(ws *workspace) genOptions {
	if o.code == "" {
		o.code = ws.settings.DefaultCode
	}
	if o.template == "" {
		o.template = ws.settings.DefaultTemplate
	}
	if o.format == "" {
		o.format = ws.settings.DefaultFormat
	}
	if o.destination == "" {
		o.destination = ws.settings.DefaultDestination
	}
	if o.match == "" {
		o.match = discovery.DefaultPattern
	}
	return o
}

func executeGen(ctx context.Context, ws *workspace, opts genOptions, out, errOut io.Writer) error {
	opts = opts.withDefaults(ws)

	if !docgen.IsSupportedFormat(opts.format) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrUnsupportedFormat, "Unsupported format: %s", opts.format),
			"use one of: %s", strings.Join(docgen.Formats, ", "))
	}

	if opts.dir != "" {
		return executeBatch(ctx, ws, opts, out, errOut)
	}

	if opts.code == "" {
		fmt.Fprintln(out, "Code file not provided and no default set in settings. Exiting.")
		return nil
	}

	fmt.Fprintln(out, heading("generating docs..."))
	err := generateFile(ws, opts, out)
	if !opts.watch {
		return err
	}
	if err != nil {
		fmt.Fprintln(errOut, errorStyle.Render("Error: "+err.Error()))
	}

	return watchSources(ctx, ws, []string{opts.code}, out, func(changed []string) {
		if err := generateFile(ws, opts, out); err != nil {
			fmt.Fprintln(errOut, errorStyle.Render("Error: "+err.Error()))
		}
	})
}

// generateFile documents opts.code and either exports or prints it.
func generateFile(ws *workspace, opts genOptions, out io.Writer) error {
	gen := ws.generator(opts.template)
	if err := gen.Generate(opts.code, ""); err != nil {
		return err
	}

	if opts.destination == "" {
		fmt.Fprintln(out, "No destination provided. The documentation will be printed here:")
		return printDocument(gen, opts, out)
	}

	status, err := gen.Export(opts.format, opts.destination)
	if err != nil {
		return err
	}
	if status != docgen.ExportOK {
		return errors.Newf("export to %s failed: %s", opts.destination, status)
	}

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Generated successfully at %s", opts.destination)))
	commitDocs(ws, opts)
	return nil
}

// printDocument writes the document in the requested format, or a
// terminal rendering of its markdown form with --preview.
func printDocument(gen *docgen.Generator, opts genOptions, out io.Writer) error {
	if !opts.preview {
		text, err := gen.Format(opts.format)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create markdown renderer")
	}

	rendered, err := renderer.Render(docgen.FormatMarkdownDoc(gen.Document()))
	if err != nil {
		return errors.Wrap(err, "failed to render markdown")
	}
	fmt.Fprint(out, rendered)
	return nil
}

// commitDocs commits exported documentation when repo_path is set.
// Outcomes are reported by the version-control collaborator.
func commitDocs(ws *workspace, opts genOptions) {
	if opts.noCommit {
		return
	}
	vc := ws.versionControl()
	if vc == nil {
		return
	}
	logger.Debugw("committing documentation", logger.FieldPath, ws.settings.RepoPath)
	vc.CommitChanges(ws.settings.CommitMessage)
}

// outputPath maps a source file under dir to its documentation file under
// outDir, keeping the relative layout.
func outputPath(dir, outDir, source, format string) string {
	rel, err := filepath.Rel(dir, source)
	if err != nil {
		rel = filepath.Base(source)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + formatExtension(format)
	return filepath.Join(outDir, rel)
}

func formatExtension(format string) string {
	switch format {
	case docgen.FormatMarkdown:
		return ".md"
	case docgen.FormatJSON:
		return ".json"
	case docgen.FormatYAML:
		return ".yaml"
	case docgen.FormatHTML:
		return ".html"
	}
	return "." + format
}

// watchSources blocks until ctx is done, calling regenerate with every
// debounced batch of changes to paths or to the templates.
func watchSources(ctx context.Context, ws *workspace, paths []string, out io.Writer, regenerate func(changed []string)) error {
	watched := append([]string{}, paths...)
	if _, err := os.Stat(ws.settings.TemplatesDir); err == nil {
		watched = append(watched, ws.settings.TemplatesDir)
	}
	// The registry file is watched on its own so exported .json documents
	// never retrigger generation
	metadata := filepath.Join(ws.settings.TemplatesDir, templates.MetadataFile)
	if _, err := os.Stat(metadata); err == nil {
		watched = append(watched, metadata)
	}

	fw, err := watcher.NewFileWatcher(watcher.Options{
		Paths:      watched,
		Extensions: []string{".py", ".tmpl"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to start watcher")
	}
	defer fw.Stop()

	if err := fw.Start(ctx, func(changed []string) {
		logger.Infow("change detected", logger.FieldCount, len(changed))
		regenerate(changed)
	}); err != nil {
		return errors.Wrap(err, "failed to start watcher")
	}

	fmt.Fprintln(out, hintStyle.Render("Watching for changes. Press Ctrl+C to stop."))
	<-ctx.Done()
	return nil
}
