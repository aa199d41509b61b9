package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/config"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/git"
	"github.com/spf13/cobra"
)

var (
	addRepoPath    string
	checkoutBranch string
)

// errNoRepo is returned by repository commands before add-repo has run.
var errNoRepo = errors.WithHint(
	errors.New("Repository path not set."),
	"use 'genny add-repo --repo <path>' to set it")

var addRepoCmd = &cobra.Command{
	Use:   "add-repo",
	Short: "Set the git repository generated documentation is committed to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeAddRepo(ws, addRepoPath, cmd.OutOrStdout())
	},
}

var commitHistoryCmd = &cobra.Command{
	Use:   "commit-history",
	Short: "Display the commit history of the configured repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeCommitHistory(ws, cmd.OutOrStdout())
	},
}

var checkoutBranchCmd = &cobra.Command{
	Use:   "checkout-branch",
	Short: "Switch the configured repository to a branch, creating it if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeCheckoutBranch(ws, checkoutBranch)
	},
}

func init() {
	rootCmd.AddCommand(addRepoCmd, commitHistoryCmd, checkoutBranchCmd)
	addRepoCmd.Flags().StringVar(&addRepoPath, "repo", "", "Path to the repository (default is the current repo_path)")
	checkoutBranchCmd.Flags().StringVarP(&checkoutBranch, "branch", "b", "", "Branch name")
	_ = checkoutBranchCmd.MarkFlagRequired("branch")
}

func executeAddRepo(ws *workspace, repo string, out io.Writer) error {
	if repo == "" {
		repo = ws.settings.RepoPath
	}
	if repo == "" {
		return errors.WithHint(errors.New("Repository path not provided and no default set in settings."),
			"pass --repo <path>")
	}

	abs, err := filepath.Abs(repo)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", repo)
	}
	if !git.IsRepository(abs) {
		return errors.WithHintf(errors.Newf("%s is not a git repository", abs),
			"run 'git init %s' first", abs)
	}

	settings, err := config.UpdateSetting(ws.root, "repo_path", abs)
	if err != nil {
		return err
	}
	ws.settings = settings

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Repository initialized at: %s", abs)))
	return nil
}

func executeCommitHistory(ws *workspace, out io.Writer) error {
	vc := ws.versionControl()
	if vc == nil {
		return errNoRepo
	}

	history := vc.History()
	if history == "" {
		fmt.Fprintln(out, "No commits found or an error occurred.")
		return nil
	}

	fmt.Fprintln(out, labelStyle.Render("Commit History:"))
	fmt.Fprintln(out, history)
	return nil
}

func executeCheckoutBranch(ws *workspace, branch string) error {
	vc := ws.versionControl()
	if vc == nil {
		return errNoRepo
	}
	if branch == "" {
		return errors.New("branch name is required")
	}
	vc.Checkout(branch)
	return nil
}
