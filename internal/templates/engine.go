package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/spf13/afero"
)

const (
	// TemplateExt is the file extension of rendering templates.
	TemplateExt = ".tmpl"
	// FallbackTemplate is used when a named template has no file.
	FallbackTemplate = "fallback"
)

// Engine renders html/template files stored in the templates directory.
type Engine struct {
	fs     afero.Fs
	dir    string
	notify func(string)
}

// NewEngine creates an engine loading templates from dir.
func NewEngine(fs afero.Fs, dir string, notify func(string)) *Engine {
	return &Engine{fs: fs, dir: dir, notify: notify}
}

var funcs = template.FuncMap{
	"capitalize": Capitalize,
	"join":       join,
	"isMap": func(v any) bool {
		_, ok := v.(map[string]any)
		return ok
	},
	"json": func(v any) (string, error) {
		data, err := json.MarshalIndent(v, "", "    ")
		return string(data), err
	},
}

// join renders every element of a slice with fmt and joins them with sep.
func join(sep string, items any) string {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice {
		return fmt.Sprint(items)
	}
	parts := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		parts = append(parts, fmt.Sprint(v.Index(i).Interface()))
	}
	return strings.Join(parts, sep)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Render executes "<templateID>.tmpl" with data. When that file does not
// exist the fallback template is used instead and the substitution is
// reported. It fails when neither file exists.
func (e *Engine) Render(templateID string, data any) (string, error) {
	file := templateID + TemplateExt
	source, err := afero.ReadFile(e.fs, filepath.Join(e.dir, file))
	if os.IsNotExist(err) {
		if e.notify != nil {
			e.notify(fmt.Sprintf("Template '%s' not found. Using fallback template.", file))
		}
		file = FallbackTemplate + TemplateExt
		source, err = afero.ReadFile(e.fs, filepath.Join(e.dir, file))
		if os.IsNotExist(err) {
			return "", errors.Wrapf(errors.ErrNotFound, "Error rendering template '%s': no %s or %s in %s",
				templateID, templateID+TemplateExt, file, e.dir)
		}
	}
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "Error rendering template '%s'", templateID), errors.ErrIOFailure)
	}

	tmpl, err := template.New(file).Funcs(funcs).Parse(string(source))
	if err != nil {
		return "", errors.Wrapf(err, "Error rendering template '%s'", templateID)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "Error rendering template '%s'", templateID)
	}
	return buf.String(), nil
}
