package cli

// Test Plan for repository commands:
// - add-repo stores the absolute path of a git repository in settings
// - add-repo rejects directories that are not repositories
// - add-repo without --repo or repo_path fails with a hint
// - commit-history prints the history or the empty notice
// - checkout-branch switches through the configured repository
// - commit-history and checkout-branch without repo_path return errNoRepo

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/genny/internal/config"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRepo(t *testing.T) {
	ws := newTestWorkspace(t)
	repo := filepath.Join(ws.root, "docs-repo")
	initGitRepo(t, repo)
	var out bytes.Buffer

	require.NoError(t, executeAddRepo(ws, repo, &out))

	assert.Contains(t, out.String(), "Repository initialized at: "+repo)
	assert.Equal(t, repo, ws.settings.RepoPath)

	reloaded, err := config.LoadConfigFromDir(ws.root)
	require.NoError(t, err)
	assert.Equal(t, repo, reloaded.RepoPath)
}

func TestAddRepo_NotARepository(t *testing.T) {
	ws := newTestWorkspace(t)

	err := executeAddRepo(ws, ws.root, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a git repository")
	assert.Contains(t, errors.FlattenHints(err), "git init")
	assert.Empty(t, ws.settings.RepoPath)
}

func TestAddRepo_NoPath(t *testing.T) {
	ws := newTestWorkspace(t)

	err := executeAddRepo(ws, "", &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Repository path not provided")
}

func TestCommitHistory(t *testing.T) {
	mock := useMockVersionControl(t)
	ws := newTestWorkspace(t)
	ws.settings.RepoPath = ws.root
	var out bytes.Buffer

	require.NoError(t, executeCommitHistory(ws, &out))
	assert.Contains(t, out.String(), "Commit History:")
	assert.Contains(t, out.String(), "abc1234 Initial commit")

	mock.HistoryOutput = ""
	out.Reset()
	require.NoError(t, executeCommitHistory(ws, &out))
	assert.Contains(t, out.String(), "No commits found or an error occurred.")
}

func TestCheckoutBranch(t *testing.T) {
	mock := useMockVersionControl(t)
	ws := newTestWorkspace(t)
	ws.settings.RepoPath = ws.root

	require.NoError(t, executeCheckoutBranch(ws, "docs"))

	assert.Equal(t, []string{"docs"}, mock.Checkouts)
	assert.Equal(t, "docs", mock.Branch())

	require.Error(t, executeCheckoutBranch(ws, ""))
}

func TestRepoCommands_NoRepo(t *testing.T) {
	ws := newTestWorkspace(t)

	err := executeCommitHistory(ws, &bytes.Buffer{})
	assert.ErrorIs(t, err, errNoRepo)

	err = executeCheckoutBranch(ws, "docs")
	assert.ErrorIs(t, err, errNoRepo)
	assert.Contains(t, errors.FlattenHints(err), "add-repo")
}
