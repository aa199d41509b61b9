package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configDir string
	verbose   bool
	jsonLogs  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "genny",
	Short: "genny - documentation generator for Python source",
	Long: `genny extracts the structure of a Python file (imports, classes,
functions and module variables) and renders it through a template as
markdown, JSON, YAML or HTML.

Settings live in .genny/settings.yml under the project directory and can be
overridden with GENNY_* environment variables. Run 'genny init' once to
install the bundled templates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(logger.Options{
			JSON:    jsonLogs,
			Verbose: verbose,
			Output:  cmd.ErrOrStderr(),
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, hintStyle.Render(hint))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "project directory holding .genny/ (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit log messages as JSON")
}

// projectRoot returns --config-dir or the working directory.
func projectRoot() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	return wd, nil
}
