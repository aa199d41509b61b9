// Package git is the version-control collaborator behind gen's automatic
// commits and the repository commands.
//
// Commits and checkouts shell out to the git binary so hooks and the
// user's identity apply; history and repository detection read the
// repository directly through go-git. Failures are reported through the
// notifier instead of being returned.
package git

import (
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/mvp-joe/genny/internal/errors"
)

// DefaultCommitMessage is used when CommitChanges gets an empty message.
const DefaultCommitMessage = "Quick commit"

// VersionControl defines the version-control operations genny needs.
// This allows mocking git in tests.
type VersionControl interface {
	// Checkout switches to branch, creating it first when it does not exist.
	Checkout(branch string)

	// CommitChanges stages and commits everything in the working tree.
	// A clean tree is reported as "No changes to commit." and left alone.
	CommitChanges(message string)

	// History returns one "<short hash> <subject>" line per commit reachable
	// from HEAD, newest first. Returns "" when history cannot be read.
	History() string

	// Branch returns the branch selected by the last successful Checkout.
	Branch() string
}

// repository is the real implementation.
type repository struct {
	path   string
	notify func(string)
	branch string
}

// New returns the version-control collaborator for the repository at path.
// notify receives progress and failure messages; nil drops them.
func New(path string, notify func(string)) VersionControl {
	return &repository{
		path:   path,
		notify: notify,
		branch: "main",
	}
}

func (r *repository) report(msg string) {
	if r.notify != nil {
		r.notify(msg)
	}
}

// run executes git against the repository and returns trimmed stdout.
// Errors carry git's stderr when there is any.
func (r *repository) run(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", r.path}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", errors.Wrapf(err, "%s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", errors.Wrapf(err, "git %s", strings.Join(args, " "))
	}
	return strings.TrimSpace(string(output)), nil
}

func (r *repository) Checkout(branch string) {
	listed, err := r.run("branch", "--list", branch)
	if err != nil {
		r.report(fmt.Sprintf("Failed to checkout branch '%s': %v", branch, err))
		return
	}

	if hasBranch(listed, branch) {
		if _, err := r.run("checkout", branch); err != nil {
			r.report(fmt.Sprintf("Failed to checkout branch '%s': %v", branch, err))
			return
		}
		r.branch = branch
		r.report(fmt.Sprintf("Switched to existing branch '%s'", branch))
		return
	}

	if _, err := r.run("checkout", "-b", branch); err != nil {
		r.report(fmt.Sprintf("Failed to checkout branch '%s': %v", branch, err))
		return
	}
	r.branch = branch
	r.report(fmt.Sprintf("Created and switched to new branch '%s'", branch))
}

// hasBranch reports whether `git branch --list` output names branch.
func hasBranch(listed, branch string) bool {
	for _, line := range strings.Split(listed, "\n") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if name == branch {
			return true
		}
	}
	return false
}

func (r *repository) CommitChanges(message string) {
	if message == "" {
		message = DefaultCommitMessage
	}

	status, err := r.run("status", "--porcelain")
	if err != nil {
		r.report(fmt.Sprintf("Failed to commit changes: %v", err))
		return
	}
	if status == "" {
		r.report("No changes to commit.")
		return
	}

	if _, err := r.run("add", "."); err != nil {
		r.report(fmt.Sprintf("Failed to commit changes: %v", err))
		return
	}
	if _, err := r.run("commit", "-m", message); err != nil {
		r.report(fmt.Sprintf("Failed to commit changes: %v", err))
		return
	}

	r.report("Changes committed successfully.")
}

func (r *repository) History() string {
	repo, err := gogit.PlainOpen(r.path)
	if err != nil {
		r.report(fmt.Sprintf("Failed to retrieve commit history: %v", err))
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		r.report(fmt.Sprintf("Failed to retrieve commit history: %v", err))
		return ""
	}

	commitIter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		r.report(fmt.Sprintf("Failed to retrieve commit history: %v", err))
		return ""
	}
	defer commitIter.Close()

	var lines []string
	err = commitIter.ForEach(func(commit *object.Commit) error {
		lines = append(lines, commit.Hash.String()[:7]+" "+subject(commit.Message))
		return nil
	})
	if err != nil {
		r.report(fmt.Sprintf("Failed to retrieve commit history: %v", err))
		return ""
	}

	return strings.Join(lines, "\n")
}

func subject(message string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(first)
}

func (r *repository) Branch() string {
	return r.branch
}

// IsRepository checks if path is a git repository.
func IsRepository(path string) bool {
	_, err := gogit.PlainOpen(path)
	return err == nil
}
