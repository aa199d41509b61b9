// Package docgen turns an extracted structure model into documentation.
//
// Generate resolves a template's sections and styles against the model
// and keeps the resulting document; Export renders that document as
// markdown, JSON, YAML or HTML and writes it out. Rendering and writing
// problems are reported through the notifier and surface as an
// ExportFailed status rather than an error.
package docgen

import (
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/fsys"
	"github.com/mvp-joe/genny/internal/structure"
	"github.com/mvp-joe/genny/internal/templates"
)

// Output formats accepted by Export.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatYAML     = "yaml"
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatMarkdown, FormatHTML, FormatYAML}

// IsSupportedFormat reports whether format is one of Formats.
func IsSupportedFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ExportStatus is the outcome of Export.
type ExportStatus int

const (
	// ExportOK means the document was written.
	ExportOK ExportStatus = iota
	// ExportNothing means there was no generated document to write.
	ExportNothing
	// ExportFailed means rendering or writing failed; the notifier has the reason.
	ExportFailed
)

func (s ExportStatus) String() string {
	switch s {
	case ExportOK:
		return "ok"
	case ExportNothing:
		return "nothing to export"
	default:
		return "failed"
	}
}

// Parser extracts a structure model from a source file.
type Parser interface {
	ParseCode(path string) (*structure.Model, error)
}

// TemplateSource resolves template metadata by name.
type TemplateSource interface {
	Get(name string) (templates.Template, error)
}

// Renderer renders a named HTML template.
type Renderer interface {
	Render(templateID string, data any) (string, error)
}

// Options configures a Generator.
type Options struct {
	FS        fsys.FileSystem
	Parser    Parser
	Templates TemplateSource
	Engine    Renderer
	// Template is the initially selected template; defaults to "standard".
	Template string
	// Notify receives progress and error messages. Nil drops them.
	Notify func(string)
}

// Generator holds the most recently generated document.
type Generator struct {
	fs        fsys.FileSystem
	parser    Parser
	templates TemplateSource
	engine    Renderer
	notify    func(string)

	current string
	docs    structure.Dict
}

// New creates a Generator.
func New(opts Options) *Generator {
	current := opts.Template
	if current == "" {
		current = templates.DefaultTemplate
	}
	return &Generator{
		fs:        opts.FS,
		parser:    opts.Parser,
		templates: opts.Templates,
		engine:    opts.Engine,
		notify:    opts.Notify,
		current:   current,
	}
}

func (g *Generator) report(msg string) {
	if g.notify != nil {
		g.notify(msg)
	}
}

// CurrentTemplate returns the selected template name.
func (g *Generator) CurrentTemplate() string {
	return g.current
}

// Document returns the last generated document, or nil.
func (g *Generator) Document() structure.Dict {
	return g.docs
}

// Generate parses codeFile and builds its document with template. An
// empty template keeps the current selection. A missing file or template
// is reported and returned and leaves the previous document in place;
// parse failures are returned as-is.
func (g *Generator) Generate(codeFile, template string) error {
	if template != "" {
		g.current = template
	}

	if _, err := g.fs.Read(codeFile); err != nil {
		g.report(fmt.Sprintf("Error: %v", err))
		return err
	}

	tmpl, err := g.templates.Get(g.current)
	if err != nil {
		g.report(fmt.Sprintf("Error: Template '%s' not found.", g.current))
		return err
	}

	model, err := g.parser.ParseCode(codeFile)
	if err != nil {
		return err
	}

	g.docs = Resolve(model.ToDict(), tmpl, filepath.Base(codeFile))
	return nil
}

// Format renders the current document without writing it.
func (g *Generator) Format(format string) (string, error) {
	if !IsSupportedFormat(format) {
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "Unsupported format: %s", format)
	}
	if g.docs == nil {
		return "", errors.Wrap(errors.ErrNotFound, "No documentation generated to export.")
	}

	switch format {
	case FormatJSON:
		return FormatJSONDoc(g.docs)
	case FormatYAML:
		return FormatYAMLDoc(g.docs)
	case FormatHTML:
		if g.engine == nil {
			return "", errors.New("no HTML rendering engine configured")
		}
		return g.engine.Render(g.current, Context(g.docs))
	default:
		return FormatMarkdownDoc(g.docs), nil
	}
}

// Export renders the current document as format and writes it to
// destination. Only an unsupported format is returned as an error.
func (g *Generator) Export(format, destination string) (ExportStatus, error) {
	if !IsSupportedFormat(format) {
		return ExportFailed, errors.Wrapf(errors.ErrUnsupportedFormat, "Unsupported format: %s", format)
	}
	if g.docs == nil || g.docs.Len() == 0 {
		g.report("No documentation generated to export.")
		return ExportNothing, nil
	}

	output, err := g.Format(format)
	if err != nil {
		g.report(fmt.Sprintf("Error exporting documents: %v", err))
		return ExportFailed, nil
	}

	if err := g.fs.Write(destination, output); err != nil {
		g.report(fmt.Sprintf("Error exporting documents: %v", err))
		return ExportFailed, nil
	}

	g.report(fmt.Sprintf("Export successful! File saved to: %s", destination))
	return ExportOK, nil
}
