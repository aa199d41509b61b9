package cli

import (
	"fmt"
	"io"

	"github.com/mvp-joe/genny/internal/config"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change genny settings",
	Long: `Settings are stored in .genny/settings.yml under the project directory.
GENNY_* environment variables override them for a single run, e.g.
GENNY_DEFAULT_FORMAT=json.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeSettingsShow(ws, cmd.OutOrStdout())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and save it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeSettingsSet(ws, args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}

func executeSettingsShow(ws *workspace, out io.Writer) error {
	fmt.Fprintln(out, heading("Current Settings:"))
	for _, key := range config.Keys {
		value, _ := ws.settings.Get(key)
		fmt.Fprintf(out, "%s: %s\n", labelStyle.Render(key), value)
	}
	return nil
}

func executeSettingsSet(ws *workspace, key, value string, out io.Writer) error {
	settings, err := config.UpdateSetting(ws.root, key, value)
	if err != nil {
		return err
	}
	ws.settings = settings

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Updated '%s' to '%s' in %s.", key, value, config.Path(ws.root))))
	return nil
}
