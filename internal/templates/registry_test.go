package templates

import (
	"path/filepath"
	"testing"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Registry:
// - A missing side file yields an empty registry without a message
// - A corrupt side file yields an empty registry and a notification
// - Add persists immediately; a second registry sees the entry
// - Add on an existing name returns false and keeps the prior configuration
// - Get on an unknown name fails with ErrNotFound
// - Delete removes the entry and its template file; unknown names fail with ErrNotFound and change nothing
// - List keeps insertion order, including after a reload
// - Persistence failures are reported, not returned

const testDir = "/genny/templates"

type messages struct {
	got []string
}

func (m *messages) notify(msg string) { m.got = append(m.got, msg) }

func TestRegistry_MissingSideFile(t *testing.T) {
	t.Parallel()

	msgs := &messages{}
	r := NewRegistry(afero.NewMemMapFs(), testDir, msgs.notify)

	assert.Empty(t, r.List())
	assert.Empty(t, msgs.got)
}

func TestRegistry_CorruptSideFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, MetadataFile), []byte("{not json"), 0o644))

	msgs := &messages{}
	r := NewRegistry(fs, testDir, msgs.notify)

	assert.Empty(t, r.List())
	require.Len(t, msgs.got, 1)
	assert.Contains(t, msgs.got[0], "Error decoding JSON")
}

func TestRegistry_AddPersists(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r := NewRegistry(fs, testDir, nil)

	ok := r.Add("api", []string{"classes", "functions"}, map[string]string{"classes": "detailed", "functions": "summary"})
	require.True(t, ok)

	exists, err := afero.Exists(fs, filepath.Join(testDir, MetadataFile))
	require.NoError(t, err)
	assert.True(t, exists)

	reloaded := NewRegistry(fs, testDir, nil)
	tmpl, err := reloaded.Get("api")
	require.NoError(t, err)
	assert.Equal(t, []string{"classes", "functions"}, tmpl.Sections)
	assert.Equal(t, map[string]string{"classes": "detailed", "functions": "summary"}, tmpl.Style)
}

func TestRegistry_SideFileFormat(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r := NewRegistry(fs, testDir, nil)
	require.True(t, r.Add("standard", []string{"classes"}, map[string]string{"classes": "detailed"}))

	data, err := afero.ReadFile(fs, filepath.Join(testDir, MetadataFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"standard": {"sections": ["classes"], "style": {"classes": "detailed"}}}`, string(data))
}

func TestRegistry_AddExistingIsNoop(t *testing.T) {
	t.Parallel()

	msgs := &messages{}
	r := NewRegistry(afero.NewMemMapFs(), testDir, msgs.notify)
	require.True(t, r.Add("existing", []string{"classes"}, map[string]string{"classes": "detailed"}))

	ok := r.Add("existing", []string{"functions"}, map[string]string{"functions": "summary"})
	assert.False(t, ok)

	tmpl, err := r.Get("existing")
	require.NoError(t, err)
	assert.Equal(t, []string{"classes"}, tmpl.Sections)
	assert.Equal(t, map[string]string{"classes": "detailed"}, tmpl.Style)
	assert.Contains(t, msgs.got, "Template 'existing' already exists.")
}

func TestRegistry_GetUnknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry(afero.NewMemMapFs(), testDir, nil)
	_, err := r.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRegistry_Delete(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r := NewRegistry(fs, testDir, nil)
	require.True(t, r.Add("doomed", []string{"functions"}, nil))
	require.True(t, r.Add("kept", []string{"classes"}, nil))

	tmplFile := filepath.Join(testDir, "doomed"+TemplateExt)
	require.NoError(t, afero.WriteFile(fs, tmplFile, []byte("<p>{{.title}}</p>"), 0o644))

	require.NoError(t, r.Delete("doomed"))

	assert.Equal(t, []string{"kept"}, r.List())
	exists, _ := afero.Exists(fs, tmplFile)
	assert.False(t, exists)
	assert.Equal(t, []string{"kept"}, NewRegistry(fs, testDir, nil).List())
}

func TestRegistry_DeleteWithoutTemplateFile(t *testing.T) {
	t.Parallel()

	r := NewRegistry(afero.NewMemMapFs(), testDir, nil)
	require.True(t, r.Add("meta-only", []string{"functions"}, nil))

	assert.NoError(t, r.Delete("meta-only"))
	assert.Empty(t, r.List())
}

func TestRegistry_DeleteUnknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry(afero.NewMemMapFs(), testDir, nil)
	require.True(t, r.Add("kept", []string{"classes"}, nil))

	err := r.Delete("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, []string{"kept"}, r.List())
}

func TestRegistry_ListInsertionOrder(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r := NewRegistry(fs, testDir, nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.True(t, r.Add(name, []string{"classes"}, nil))
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, r.List())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, NewRegistry(fs, testDir, nil).List())
}

func TestRegistry_PersistenceFailureReported(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	msgs := &messages{}
	r := NewRegistry(afero.NewReadOnlyFs(base), testDir, msgs.notify)

	ok := r.Add("api", []string{"classes"}, nil)
	assert.True(t, ok)
	require.NotEmpty(t, msgs.got)
	assert.Contains(t, msgs.got[0], "Error saving metadata")

	// The in-memory entry still exists for this process.
	_, err := r.Get("api")
	assert.NoError(t, err)
}

func TestInstallDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	written, err := InstallDefaults(fs, testDir, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{MetadataFile, "standard.tmpl", "fallback.tmpl"}, written)

	r := NewRegistry(fs, testDir, nil)
	assert.Equal(t, []string{DefaultTemplate, "overview"}, r.List())

	// Second install keeps existing files.
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, "standard.tmpl"), []byte("custom"), 0o644))
	written, err = InstallDefaults(fs, testDir, false)
	require.NoError(t, err)
	assert.Empty(t, written)
	data, _ := afero.ReadFile(fs, filepath.Join(testDir, "standard.tmpl"))
	assert.Equal(t, "custom", string(data))
}
