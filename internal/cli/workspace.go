package cli

import (
	"github.com/mvp-joe/genny/internal/config"
	"github.com/mvp-joe/genny/internal/docgen"
	"github.com/mvp-joe/genny/internal/fsys"
	"github.com/mvp-joe/genny/internal/git"
	"github.com/mvp-joe/genny/internal/logger"
	"github.com/mvp-joe/genny/internal/parsers"
	"github.com/mvp-joe/genny/internal/templates"
	"github.com/spf13/afero"
)

// workspace bundles the settings and collaborators a command works with.
type workspace struct {
	root      string
	settings  *config.Config
	fs        *fsys.AferoFS
	registry  *templates.Registry
	engine    *templates.Engine
	extractor *parsers.PythonExtractor
}

// newVersionControl is replaced in tests with a mock.
var newVersionControl = func(path string, notify func(string)) git.VersionControl {
	return git.New(path, notify)
}

// openWorkspace loads the settings of the current project and wires the
// collaborators on the OS filesystem.
func openWorkspace() (*workspace, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, err
	}

	return newWorkspace(root, settings, afero.NewOsFs()), nil
}

func newWorkspace(root string, settings *config.Config, afs afero.Fs) *workspace {
	files := fsys.New(afs)
	return &workspace{
		root:      root,
		settings:  settings,
		fs:        files,
		registry:  templates.NewRegistry(afs, settings.TemplatesDir, logger.Notifier("templates")),
		engine:    templates.NewEngine(afs, settings.TemplatesDir, logger.Notifier("templates")),
		extractor: parsers.NewPythonExtractor(files),
	}
}

// generator returns a fresh document generator using template.
func (w *workspace) generator(template string) *docgen.Generator {
	return docgen.New(docgen.Options{
		FS:        w.fs,
		Parser:    w.extractor,
		Templates: w.registry,
		Engine:    w.engine,
		Template:  template,
		Notify:    logger.Notifier("docgen"),
	})
}

// versionControl returns the collaborator for the configured repository,
// or nil when repo_path is not set.
func (w *workspace) versionControl() git.VersionControl {
	if w.settings.RepoPath == "" {
		return nil
	}
	return newVersionControl(w.settings.RepoPath, logger.Notifier("git"))
}
