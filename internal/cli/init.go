package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mvp-joe/genny/internal/config"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/templates"
	"github.com/spf13/cobra"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .genny/ with default settings and the bundled templates",
	Long: `Init writes .genny/settings.yml (unless it already exists) and installs the
bundled "standard" and "overview" templates into templates_dir.

Existing template files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeInit(ws, initForce, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing template files")
}

func executeInit(ws *workspace, force bool, out io.Writer) error {
	settingsPath := config.Path(ws.root)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := config.Save(ws.root, ws.settings); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Created %s\n", settingsPath)
	} else {
		fmt.Fprintf(out, "  Keeping %s\n", settingsPath)
	}

	written, err := templates.InstallDefaults(ws.fs.Fs(), ws.settings.TemplatesDir, force)
	if err != nil {
		return errors.Wrapf(err, "failed to install templates into %s", ws.settings.TemplatesDir)
	}
	for _, name := range written {
		fmt.Fprintf(out, "✓ Wrote %s\n", filepath.Join(ws.settings.TemplatesDir, name))
	}
	if len(written) == 0 {
		fmt.Fprintln(out, hintStyle.Render("Templates already installed; use --force to overwrite."))
	}

	fmt.Fprintln(out, successStyle.Render("genny is ready. Try 'genny gen --code <file.py>'."))
	return nil
}
