package config

import (
	"path/filepath"

	"github.com/mvp-joe/genny/internal/docgen"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/templates"
)

// Dir is the per-project directory holding settings and templates.
const Dir = ".genny"

// SettingsFile is the settings file name inside Dir.
const SettingsFile = "settings.yml"

// DefaultCommitMessage is used when gen commits exported documentation.
const DefaultCommitMessage = "committed via CLI"

// Config represents genny's settings.
// It can be loaded from .genny/settings.yml with environment variable overrides.
type Config struct {
	DefaultCode        string `yaml:"default_code" mapstructure:"default_code"`               // source file used when gen gets no --code
	DefaultTemplate    string `yaml:"default_template" mapstructure:"default_template"`       // template name
	DefaultFormat      string `yaml:"default_format" mapstructure:"default_format"`           // json, markdown, html or yaml
	DefaultDestination string `yaml:"default_destination" mapstructure:"default_destination"` // export path; empty prints
	RepoPath           string `yaml:"repo_path" mapstructure:"repo_path"`                     // git repository for commits
	TemplatesDir       string `yaml:"templates_dir" mapstructure:"templates_dir"`             // registry and .tmpl files
	CommitMessage      string `yaml:"commit_message" mapstructure:"commit_message"`
}

// Keys lists the setting keys in display order.
var Keys = []string{
	"default_code",
	"default_template",
	"default_format",
	"default_destination",
	"repo_path",
	"templates_dir",
	"commit_message",
}

// Default returns the settings used for a project rooted at rootDir.
func Default(rootDir string) *Config {
	return &Config{
		DefaultTemplate: templates.DefaultTemplate,
		DefaultFormat:   docgen.FormatMarkdown,
		TemplatesDir:    filepath.Join(rootDir, Dir, "templates"),
		CommitMessage:   DefaultCommitMessage,
	}
}

// Path returns the settings file location for rootDir.
func Path(rootDir string) string {
	return filepath.Join(rootDir, Dir, SettingsFile)
}

// field maps a setting key to its struct field.
func (c *Config) field(key string) (*string, bool) {
	switch key {
	case "default_code":
		return &c.DefaultCode, true
	case "default_template":
		return &c.DefaultTemplate, true
	case "default_format":
		return &c.DefaultFormat, true
	case "default_destination":
		return &c.DefaultDestination, true
	case "repo_path":
		return &c.RepoPath, true
	case "templates_dir":
		return &c.TemplatesDir, true
	case "commit_message":
		return &c.CommitMessage, true
	}
	return nil, false
}

// Get returns the value of key.
func (c *Config) Get(key string) (string, bool) {
	f, ok := c.field(key)
	if !ok {
		return "", false
	}
	return *f, true
}

// Set assigns value to key. Unknown keys yield ErrUnknownSetting.
func (c *Config) Set(key, value string) error {
	f, ok := c.field(key)
	if !ok {
		return errors.Wrapf(ErrUnknownSetting, "Invalid setting: %s", key)
	}
	*f = value
	return nil
}
