package cli

// Test Plan for settings, init and docstrings:
// - settings show prints every key with its value
// - settings set persists a value; unknown keys and invalid values fail
// - init creates settings and templates once, then keeps them
// - init --force rewrites the bundled templates
// - docstrings prints docstrings in walk order, a notice when none, and
//   ErrNotFound for a missing file

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/genny/internal/config"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsShow(t *testing.T) {
	ws := newTestWorkspace(t)
	var out bytes.Buffer

	require.NoError(t, executeSettingsShow(ws, &out))

	for _, key := range config.Keys {
		assert.Contains(t, out.String(), key)
	}
	assert.Contains(t, out.String(), "standard")
	assert.Contains(t, out.String(), "markdown")
}

func TestSettingsSet(t *testing.T) {
	ws := newTestWorkspace(t)
	var out bytes.Buffer

	require.NoError(t, executeSettingsSet(ws, "default_format", "json", &out))
	assert.Contains(t, out.String(), "Updated 'default_format' to 'json'")
	assert.Equal(t, "json", ws.settings.DefaultFormat)

	reloaded, err := config.LoadConfigFromDir(ws.root)
	require.NoError(t, err)
	assert.Equal(t, "json", reloaded.DefaultFormat)
}

func TestSettingsSet_Rejected(t *testing.T) {
	ws := newTestWorkspace(t)

	err := executeSettingsSet(ws, "colour", "blue", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrUnknownSetting))

	err = executeSettingsSet(ws, "default_format", "pdf", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidFormat))

	assert.Equal(t, "markdown", ws.settings.DefaultFormat)
}

func TestInit_Idempotent(t *testing.T) {
	ws := newTestWorkspace(t)
	var out bytes.Buffer

	require.NoError(t, executeInit(ws, false, &out))

	assert.Contains(t, out.String(), "Keeping "+config.Path(ws.root))
	assert.Contains(t, out.String(), "Templates already installed")
	assert.NotContains(t, out.String(), "✓ Wrote")
}

func TestInit_Force(t *testing.T) {
	ws := newTestWorkspace(t)
	var out bytes.Buffer

	require.NoError(t, executeInit(ws, true, &out))

	assert.Contains(t, out.String(), "✓ Wrote")
	assert.Contains(t, out.String(), "standard.tmpl")
	assert.FileExists(t, config.Path(ws.root))
}

func TestDocstrings(t *testing.T) {
	ws := newTestWorkspace(t)
	code := writeSource(t, ws, "billing.py", sampleSource)
	var out bytes.Buffer

	require.NoError(t, executeDocstrings(ws, code, &out))

	assert.Equal(t, "Billing helpers.\n\nAn invoice.\n", out.String())
}

func TestDocstrings_None(t *testing.T) {
	ws := newTestWorkspace(t)
	code := writeSource(t, ws, "plain.py", "x = 1\n")
	var out bytes.Buffer

	require.NoError(t, executeDocstrings(ws, code, &out))

	assert.Contains(t, out.String(), "No docstrings found in "+code)
}

func TestDocstrings_MissingFile(t *testing.T) {
	ws := newTestWorkspace(t)

	err := executeDocstrings(ws, filepath.Join(ws.root, "missing.py"), &bytes.Buffer{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
