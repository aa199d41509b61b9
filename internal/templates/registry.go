// Package templates stores named documentation templates and renders the
// HTML form of generated documents.
//
// A template has two halves: its metadata (which sections to include and
// how detailed each should be), kept in a JSON side file managed by
// Registry, and an optional html/template file "<name>.tmpl" used by Engine.
package templates

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/fsys"
	"github.com/spf13/afero"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MetadataFile is the registry side file inside the templates directory.
const MetadataFile = "templates_metadata.json"

// Section styles.
const (
	StyleDetailed = "detailed"
	StyleSummary  = "summary"
)

// Template is a template's section and style configuration.
type Template struct {
	Sections []string          `json:"sections"`
	Style    map[string]string `json:"style"`
}

// Registry is the durable store of template metadata. Every mutation is
// persisted before returning; persistence failures are reported through
// the notifier and never returned.
type Registry struct {
	fs        afero.Fs
	dir       string
	notify    func(string)
	templates *orderedmap.OrderedMap[string, Template]
}

// NewRegistry loads the registry stored under dir. A missing or corrupt
// side file yields an empty registry.
func NewRegistry(fs afero.Fs, dir string, notify func(string)) *Registry {
	r := &Registry{
		fs:     fs,
		dir:    dir,
		notify: notify,
	}
	r.templates = r.load()
	return r
}

// Dir returns the templates directory.
func (r *Registry) Dir() string {
	return r.dir
}

func (r *Registry) metadataPath() string {
	return filepath.Join(r.dir, MetadataFile)
}

func (r *Registry) load() *orderedmap.OrderedMap[string, Template] {
	loaded := orderedmap.New[string, Template]()

	data, err := afero.ReadFile(r.fs, r.metadataPath())
	if err != nil {
		return loaded
	}
	if err := json.Unmarshal(data, loaded); err != nil {
		r.report(fmt.Sprintf("Error decoding JSON from %s. Using an empty registry.", r.metadataPath()))
		return orderedmap.New[string, Template]()
	}
	return loaded
}

func (r *Registry) save() {
	data, err := json.MarshalIndent(r.templates, "", "    ")
	if err != nil {
		err = errors.Mark(err, errors.ErrSerialization)
		r.report(fmt.Sprintf("Error saving metadata to %s: %v", r.metadataPath(), err))
		return
	}
	if err := fsys.WriteAtomic(r.fs, r.metadataPath(), data); err != nil {
		r.report(fmt.Sprintf("Error saving metadata to %s: %v", r.metadataPath(), err))
	}
}

func (r *Registry) report(msg string) {
	if r.notify != nil {
		r.notify(msg)
	}
}

// Add stores a new template. It returns false, leaving the registry
// untouched, when name is already taken.
func (r *Registry) Add(name string, sections []string, style map[string]string) bool {
	if _, exists := r.templates.Get(name); exists {
		r.report(fmt.Sprintf("Template '%s' already exists.", name))
		return false
	}
	if sections == nil {
		sections = []string{}
	}
	if style == nil {
		style = map[string]string{}
	}
	r.templates.Set(name, Template{Sections: sections, Style: style})
	r.save()
	return true
}

// Get returns the configuration of name.
func (r *Registry) Get(name string) (Template, error) {
	t, ok := r.templates.Get(name)
	if !ok {
		return Template{}, errors.Wrapf(errors.ErrNotFound, "Template '%s' not found.", name)
	}
	return t, nil
}

// Delete removes name from the registry and deletes its template file
// if there is one.
func (r *Registry) Delete(name string) error {
	if _, ok := r.templates.Delete(name); !ok {
		return errors.Wrapf(errors.ErrNotFound, "Template '%s' not found.", name)
	}
	r.save()

	file := filepath.Join(r.dir, name+TemplateExt)
	if exists, _ := afero.Exists(r.fs, file); exists {
		if err := r.fs.Remove(file); err != nil {
			r.report(fmt.Sprintf("Could not remove template file %s: %v", file, err))
		}
	}
	return nil
}

// List returns template names in insertion order.
func (r *Registry) List() []string {
	names := make([]string, 0, r.templates.Len())
	for pair := r.templates.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
