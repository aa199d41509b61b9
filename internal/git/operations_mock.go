package git

import "fmt"

// MockVersionControl is a mock implementation of VersionControl for testing.
// It records every call and reports through Notify like the real one.
type MockVersionControl struct {
	CurrentBranch string
	HistoryOutput string
	Clean         bool
	Notify        func(string)

	Checkouts []string
	Commits   []string
}

// NewMockVersionControl creates a mock with sensible defaults.
func NewMockVersionControl() *MockVersionControl {
	return &MockVersionControl{
		CurrentBranch: "main",
		HistoryOutput: "abc1234 Initial commit",
	}
}

func (m *MockVersionControl) report(msg string) {
	if m.Notify != nil {
		m.Notify(msg)
	}
}

func (m *MockVersionControl) Checkout(branch string) {
	m.Checkouts = append(m.Checkouts, branch)
	m.CurrentBranch = branch
	m.report(fmt.Sprintf("Switched to existing branch '%s'", branch))
}

func (m *MockVersionControl) CommitChanges(message string) {
	if m.Clean {
		m.report("No changes to commit.")
		return
	}
	if message == "" {
		message = DefaultCommitMessage
	}
	m.Commits = append(m.Commits, message)
	m.report("Changes committed successfully.")
}

func (m *MockVersionControl) History() string {
	return m.HistoryOutput
}

func (m *MockVersionControl) Branch() string {
	return m.CurrentBranch
}

// String returns a human-readable representation of the mock state.
func (m *MockVersionControl) String() string {
	return fmt.Sprintf("MockVersionControl{branch=%s, checkouts=%d, commits=%d}",
		m.CurrentBranch, len(m.Checkouts), len(m.Commits))
}
