package cli

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/genny/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// initGitRepo initializes a proper git repository with a main branch.
// This is only used by tests that explicitly need a real git repository.
// For most tests, prefer git.NewMockVersionControl() instead.
func initGitRepo(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0755))

	cmd := exec.Command("git", "init", "-b", "main")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	// Configure git to avoid warnings
	for _, args := range [][]string{
		{"config", "user.name", "Test User"},
		{"config", "user.email", "test@example.com"},
		{"config", "commit.gpgsign", "false"},
	} {
		configCmd := exec.Command("git", args...)
		configCmd.Dir = dir
		_ = configCmd.Run()
	}

	readmeFile := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readmeFile, []byte("# Test\n"), 0644))

	cmd = exec.Command("git", "add", "README.md")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	cmd = exec.Command("git", "commit", "-m", "Initial commit")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
}

// newTestWorkspace creates a project in a temp directory with default
// settings and the bundled templates installed.
func newTestWorkspace(t *testing.T) *workspace {
	t.Helper()

	root := t.TempDir()
	settings := config.Default(root)
	ws := newWorkspace(root, settings, afero.NewOsFs())
	require.NoError(t, executeInit(ws, false, io.Discard))

	// Reload so the registry sees the installed metadata
	return newWorkspace(root, settings, afero.NewOsFs())
}

// writeSource writes a Python file under the workspace root.
func writeSource(t *testing.T, ws *workspace, rel, content string) string {
	t.Helper()
	path := filepath.Join(ws.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
