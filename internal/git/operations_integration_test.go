package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests for the real VersionControl implementation.
// These tests use actual git commands and run sequentially (NO t.Parallel()).
//
// Test Plan:
// - Checkout creates a missing branch and switches to an existing one
// - Checkout does not mistake a branch-name prefix for an existing branch
// - Checkout outside a repository reports failure and keeps the branch
// - CommitChanges on a clean tree reports "No changes to commit."
// - CommitChanges stages new files and commits with the given message
// - CommitChanges falls back to "Quick commit" for an empty message
// - History lists short hash + subject, newest first
// - History outside a repository reports failure and returns ""
// - IsRepository distinguishes repositories from plain directories
// - Failed git commands wrap the exit error with git's stderr

type recorder struct {
	messages []string
}

func (r *recorder) notify(msg string) {
	r.messages = append(r.messages, msg)
}

func (r *recorder) last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

func TestVersionControlIntegration(t *testing.T) {
	// NO t.Parallel() - these tests run sequentially to avoid resource exhaustion

	t.Run("Checkout creates then switches", func(t *testing.T) {
		dir := createTestGitRepo(t)
		rec := &recorder{}
		vc := New(dir, rec.notify)

		vc.Checkout("docs")
		assert.Equal(t, "Created and switched to new branch 'docs'", rec.last())
		assert.Equal(t, "docs", vc.Branch())
		assert.Equal(t, "docs", currentBranch(t, dir))

		vc.Checkout("main")
		assert.Equal(t, "Switched to existing branch 'main'", rec.last())

		vc.Checkout("docs")
		assert.Equal(t, "Switched to existing branch 'docs'", rec.last())
		assert.Equal(t, "docs", currentBranch(t, dir))
	})

	t.Run("Checkout prefix is not an existing branch", func(t *testing.T) {
		dir := createTestGitRepo(t)
		runGitCmd(t, dir, "branch", "feature-long")
		rec := &recorder{}
		vc := New(dir, rec.notify)

		vc.Checkout("feature")

		assert.Equal(t, "Created and switched to new branch 'feature'", rec.last())
	})

	t.Run("Checkout outside repository", func(t *testing.T) {
		rec := &recorder{}
		vc := New(t.TempDir(), rec.notify)

		vc.Checkout("docs")

		assert.True(t, strings.HasPrefix(rec.last(), "Failed to checkout branch 'docs':"), rec.last())
		assert.Equal(t, "main", vc.Branch())
	})

	t.Run("CommitChanges clean tree", func(t *testing.T) {
		dir := createTestGitRepo(t)
		rec := &recorder{}
		vc := New(dir, rec.notify)

		vc.CommitChanges("nothing here")

		assert.Equal(t, []string{"No changes to commit."}, rec.messages)
		assert.Equal(t, "Initial commit", lastSubject(t, dir))
	})

	t.Run("CommitChanges commits new files", func(t *testing.T) {
		dir := createTestGitRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.md"), []byte("# Docs\n"), 0644))
		rec := &recorder{}
		vc := New(dir, rec.notify)

		vc.CommitChanges("committed via CLI")

		assert.Equal(t, "Changes committed successfully.", rec.last())
		assert.Equal(t, "committed via CLI", lastSubject(t, dir))
	})

	t.Run("CommitChanges default message", func(t *testing.T) {
		dir := createTestGitRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.md"), []byte("# Docs\n"), 0644))
		vc := New(dir, nil)

		vc.CommitChanges("")

		assert.Equal(t, "Quick commit", lastSubject(t, dir))
	})

	t.Run("History lists commits newest first", func(t *testing.T) {
		dir := createTestGitRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.md"), []byte("# Docs\n"), 0644))
		runGitCmd(t, dir, "add", "docs.md")
		runGitCmd(t, dir, "commit", "-m", "Add docs\n\nLonger body text")

		history := New(dir, nil).History()

		lines := strings.Split(history, "\n")
		require.Len(t, lines, 2)
		assert.Regexp(t, `^[0-9a-f]{7} Add docs$`, lines[0])
		assert.Regexp(t, `^[0-9a-f]{7} Initial commit$`, lines[1])
	})

	t.Run("History outside repository", func(t *testing.T) {
		rec := &recorder{}

		history := New(t.TempDir(), rec.notify).History()

		assert.Empty(t, history)
		assert.True(t, strings.HasPrefix(rec.last(), "Failed to retrieve commit history:"), rec.last())
	})

	t.Run("IsRepository", func(t *testing.T) {
		assert.True(t, IsRepository(createTestGitRepo(t)))
		assert.False(t, IsRepository(t.TempDir()))
	})
}

func TestRun_WrapsStderr(t *testing.T) {
	dir := createTestGitRepo(t)
	r := New(dir, nil).(*repository)

	_, err := r.run("rev-parse", "--verify", "missing-ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Needed a single revision")

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestHasBranch(t *testing.T) {
	listed := "  docs\n* main"

	assert.True(t, hasBranch(listed, "main"))
	assert.True(t, hasBranch(listed, "docs"))
	assert.False(t, hasBranch(listed, "doc"))
	assert.False(t, hasBranch("", "main"))
}

func TestMockVersionControl(t *testing.T) {
	rec := &recorder{}
	mock := NewMockVersionControl()
	mock.Notify = rec.notify

	mock.Checkout("docs")
	mock.CommitChanges("")
	mock.Clean = true
	mock.CommitChanges("again")

	assert.Equal(t, []string{"docs"}, mock.Checkouts)
	assert.Equal(t, []string{"Quick commit"}, mock.Commits)
	assert.Equal(t, "docs", mock.Branch())
	assert.Equal(t, "No changes to commit.", rec.last())
	assert.Equal(t, "abc1234 Initial commit", mock.History())
}

// Helper functions

func createTestGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	// Initialize repo
	cmd := exec.Command("git", "init", "-b", "main")
	cmd.Dir = dir
	require.NoError(t, cmd.Run(), "git init failed")

	// Configure git identity
	runGitCmd(t, dir, "config", "user.email", "test@example.com")
	runGitCmd(t, dir, "config", "user.name", "Test User")
	runGitCmd(t, dir, "config", "commit.gpgsign", "false")

	// Create initial commit
	testFile := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(testFile, []byte("# Test\n"), 0644))
	runGitCmd(t, dir, "add", "README.md")
	runGitCmd(t, dir, "commit", "-m", "Initial commit")

	return dir
}

func runGitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return strings.TrimSpace(string(output))
}

func currentBranch(t *testing.T, dir string) string {
	t.Helper()
	return runGitCmd(t, dir, "branch", "--show-current")
}

func lastSubject(t *testing.T, dir string) string {
	t.Helper()
	return runGitCmd(t, dir, "log", "-1", "--format=%s")
}
