package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Settings:
// - Default() returns valid settings with all expected defaults
// - Load uses defaults when no settings file exists
// - Load reads .genny/settings.yml and .genny/settings.yaml
// - Load merges the settings file with defaults
// - Environment variables override the settings file and defaults
// - Load returns error for malformed YAML
// - Load returns error for an unsupported default_format
// - Validate() rejects empty template and templates_dir
// - Validate() returns multiple errors for multiple invalid fields
// - Get/Set address every key; unknown keys yield ErrUnknownSetting
// - UpdateSetting persists the change and round-trips through Load
// - UpdateSetting rejects unknown keys without creating a file
// - UpdateSetting rejects values that fail validation

func writeSettings(t *testing.T, rootDir, name, content string) {
	t.Helper()
	dir := filepath.Join(rootDir, Dir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default("/work")

	require.NotNil(t, cfg)
	assert.Equal(t, "", cfg.DefaultCode)
	assert.Equal(t, "standard", cfg.DefaultTemplate)
	assert.Equal(t, "markdown", cfg.DefaultFormat)
	assert.Equal(t, "", cfg.DefaultDestination)
	assert.Equal(t, "", cfg.RepoPath)
	assert.Equal(t, filepath.Join("/work", ".genny", "templates"), cfg.TemplatesDir)
	assert.Equal(t, "committed via CLI", cfg.CommitMessage)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoSettingsFile(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, Default(tempDir), cfg)
}

func TestLoadConfig_LoadsFromSettingsYml(t *testing.T) {
	tempDir := t.TempDir()
	writeSettings(t, tempDir, "settings.yml", `
default_code: src/app.py
default_template: overview
default_format: json
default_destination: docs/app.json
repo_path: /repos/app
templates_dir: /shared/templates
commit_message: docs update
`)

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, &Config{
		DefaultCode:        "src/app.py",
		DefaultTemplate:    "overview",
		DefaultFormat:      "json",
		DefaultDestination: "docs/app.json",
		RepoPath:           "/repos/app",
		TemplatesDir:       "/shared/templates",
		CommitMessage:      "docs update",
	}, cfg)
}

func TestLoadConfig_LoadsFromSettingsYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeSettings(t, tempDir, "settings.yaml", "default_format: yaml\n")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.DefaultFormat)
}

func TestLoadConfig_MergesSettingsWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeSettings(t, tempDir, "settings.yml", "repo_path: /repos/app\n")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "/repos/app", cfg.RepoPath)
	assert.Equal(t, "standard", cfg.DefaultTemplate)
	assert.Equal(t, "markdown", cfg.DefaultFormat)
	assert.Equal(t, filepath.Join(tempDir, ".genny", "templates"), cfg.TemplatesDir)
}

func TestLoadConfig_EnvironmentVariablesOverrideSettingsFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeSettings(t, tempDir, "settings.yml", "default_format: json\ndefault_template: overview\n")

	t.Setenv("GENNY_DEFAULT_FORMAT", "html")
	t.Setenv("GENNY_REPO_PATH", "/env/repo")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "html", cfg.DefaultFormat)
	assert.Equal(t, "/env/repo", cfg.RepoPath)
	assert.Equal(t, "overview", cfg.DefaultTemplate, "file value without env override is kept")
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()

	t.Setenv("GENNY_TEMPLATES_DIR", "/env/templates")
	t.Setenv("GENNY_COMMIT_MESSAGE", "from env")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "/env/templates", cfg.TemplatesDir)
	assert.Equal(t, "from env", cfg.CommitMessage)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeSettings(t, tempDir, "settings.yml", "default_format: [json\n  bad: indent")

	_, err := LoadConfigFromDir(tempDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read settings file")
}

func TestLoadConfig_ReturnsErrorForInvalidFormat(t *testing.T) {
	tempDir := t.TempDir()
	writeSettings(t, tempDir, "settings.yml", "default_format: pdf\n")

	_, err := LoadConfigFromDir(tempDir)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Contains(t, err.Error(), "got 'pdf'")
}

func TestValidate_RejectsEmptyValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty template",
			mutate:  func(c *Config) { c.DefaultTemplate = "  " },
			wantErr: ErrEmptyTemplate,
		},
		{
			name:    "empty templates dir",
			mutate:  func(c *Config) { c.TemplatesDir = "" },
			wantErr: ErrEmptyTemplatesDir,
		},
		{
			name:    "empty format",
			mutate:  func(c *Config) { c.DefaultFormat = "" },
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/work")
			tt.mutate(cfg)

			err := Validate(cfg)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestValidate_ReturnsMultipleErrors(t *testing.T) {
	cfg := Default("/work")
	cfg.DefaultFormat = "pdf"
	cfg.DefaultTemplate = ""

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "invalid default format")
	assert.Contains(t, err.Error(), "empty default template")
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default("/work")

	for _, key := range Keys {
		require.NoError(t, cfg.Set(key, "value-"+key))
		got, ok := cfg.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, "value-"+key, got)
	}

	_, ok := cfg.Get("theme")
	assert.False(t, ok)

	err := cfg.Set("theme", "dark")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSetting))
	assert.Contains(t, err.Error(), "Invalid setting: theme")
}

func TestUpdateSetting_PersistsAndReloads(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := UpdateSetting(tempDir, "repo_path", "/repos/app")
	require.NoError(t, err)
	assert.Equal(t, "/repos/app", cfg.RepoPath)

	assert.FileExists(t, Path(tempDir))
	assert.NoFileExists(t, Path(tempDir)+".tmp")

	_, err = UpdateSetting(tempDir, "default_format", "json")
	require.NoError(t, err)

	reloaded, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "/repos/app", reloaded.RepoPath)
	assert.Equal(t, "json", reloaded.DefaultFormat)
	assert.Equal(t, "standard", reloaded.DefaultTemplate)

	data, err := os.ReadFile(Path(tempDir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "repo_path: /repos/app")
}

func TestUpdateSetting_RejectsUnknownKey(t *testing.T) {
	tempDir := t.TempDir()

	_, err := UpdateSetting(tempDir, "colour", "blue")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSetting))
	assert.NoFileExists(t, Path(tempDir))
}

func TestUpdateSetting_RejectsInvalidValue(t *testing.T) {
	tempDir := t.TempDir()

	_, err := UpdateSetting(tempDir, "default_format", "pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.NoFileExists(t, Path(tempDir))
}
