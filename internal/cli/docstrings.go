package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var docstringsCmd = &cobra.Command{
	Use:   "docstrings <file.py>",
	Short: "Print every docstring in a Python file",
	Long: `Docstrings prints the module, class and function docstrings of a file in
the order they are found (breadth first), separated by blank lines.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeDocstrings(ws, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(docstringsCmd)
}

func executeDocstrings(ws *workspace, path string, out io.Writer) error {
	docs, err := ws.extractor.Docstrings(path)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(out, "No docstrings found in %s\n", path)
		return nil
	}
	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, doc)
	}
	return nil
}
