package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X github.com/mvp-joe/genny/internal/cli.Version=..."
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the genny version and build details",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, Version)
			return
		}
		fmt.Fprintf(out, "genny %s\n", Version)
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("commit:"), GitCommit)
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("built:"), BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
