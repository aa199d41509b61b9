package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mvp-joe/genny/internal/config"
	"github.com/mvp-joe/genny/internal/errors"
	"github.com/mvp-joe/genny/internal/templates"
	"github.com/spf13/cobra"
)

var (
	addTemplateSections string
	addTemplateStyles   []string
)

var listTemplatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "Display the available templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeListTemplates(ws, cmd.OutOrStdout())
	},
}

var addTemplateCmd = &cobra.Command{
	Use:   "add-template <name>",
	Short: "Add a template to the registry",
	Long: `Add-template registers a template: the sections it renders, in order,
and a style per section ("detailed" keeps full entries, "summary" keeps
only names).

Without --sections the sections and styles are asked for interactively.

Examples:
  genny add-template api --sections classes,functions --style functions=summary
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		sections, styles := addTemplateSections, addTemplateStyles
		if !cmd.Flags().Changed("sections") {
			if sections, styles, err = promptTemplateLayout(); err != nil {
				return err
			}
		}
		return executeAddTemplate(ws, args[0], sections, styles, cmd.OutOrStdout())
	},
}

var deleteTemplateCmd = &cobra.Command{
	Use:   "delete-template <name>",
	Short: "Delete a template and its template file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		return executeDeleteTemplate(ws, args[0], cmd.OutOrStdout())
	},
}

var selectTemplateCmd = &cobra.Command{
	Use:   "select-template [name]",
	Short: "Choose the default template",
	Long: `Select-template saves the default_template setting. Without a name the
available templates are offered in an interactive list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else if name, err = promptTemplateChoice(ws.registry.List(), ws.settings.DefaultTemplate); err != nil {
			return err
		}
		return executeSelectTemplate(ws, name, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listTemplatesCmd, addTemplateCmd, deleteTemplateCmd, selectTemplateCmd)
	addTemplateCmd.Flags().StringVar(&addTemplateSections, "sections", "classes,functions,imports", "Comma-separated sections, in render order")
	addTemplateCmd.Flags().StringSliceVar(&addTemplateStyles, "style", nil, "Section style as section=style (repeatable; default detailed)")
}

func executeListTemplates(ws *workspace, out io.Writer) error {
	names := ws.registry.List()
	fmt.Fprintln(out, heading("available templates:"))
	if len(names) == 0 {
		fmt.Fprintln(out, "No templates available.")
		fmt.Fprintln(out, hintStyle.Render("Run 'genny init' to install the bundled templates."))
		return nil
	}
	for _, name := range names {
		marker := "  "
		if name == ws.settings.DefaultTemplate {
			marker = "* "
		}
		fmt.Fprintln(out, marker+name)
	}
	return nil
}

func executeAddTemplate(ws *workspace, name, sections string, styles []string, out io.Writer) error {
	sectionList, styleMap, err := parseTemplateLayout(sections, styles)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Adding template: %s\n", name)
	if !ws.registry.Add(name, sectionList, styleMap) {
		return errors.Newf("Template '%s' already exists.", name)
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Template '%s' added successfully!", name)))
	return nil
}

// parseTemplateLayout splits "a,b" sections and "section=style" pairs.
// Sections without a style are detailed.
func parseTemplateLayout(sections string, styles []string) ([]string, map[string]string, error) {
	var sectionList []string
	for _, s := range strings.Split(sections, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sectionList = append(sectionList, s)
		}
	}
	if len(sectionList) == 0 {
		return nil, nil, errors.WithHint(errors.New("at least one section is required"),
			"e.g. --sections classes,functions,imports")
	}

	styleMap := make(map[string]string, len(sectionList))
	for _, s := range sectionList {
		styleMap[s] = templates.StyleDetailed
	}
	for _, pair := range styles {
		section, style, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, nil, errors.Newf("invalid --style %q: expected section=style", pair)
		}
		section = strings.TrimSpace(section)
		if _, known := styleMap[section]; !known {
			return nil, nil, errors.Newf("invalid --style %q: section %q is not in --sections", pair, section)
		}
		styleMap[section] = strings.TrimSpace(style)
	}
	return sectionList, styleMap, nil
}

func executeDeleteTemplate(ws *workspace, name string, out io.Writer) error {
	fmt.Fprintf(out, "Deleting template: %s\n", name)
	if err := ws.registry.Delete(name); err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Template '%s' deleted successfully.", name)))
	return nil
}

func executeSelectTemplate(ws *workspace, name string, out io.Writer) error {
	if _, err := ws.registry.Get(name); err != nil {
		return errors.WithHint(err, "run 'genny list-templates' to see the available templates")
	}

	settings, err := config.UpdateSetting(ws.root, "default_template", name)
	if err != nil {
		return err
	}
	ws.settings = settings

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Template '%s' selected and saved as default.", name)))
	return nil
}

// promptTemplateLayout asks for sections and a style per section.
func promptTemplateLayout() (string, []string, error) {
	sections := "classes,functions,imports"
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Sections").
			Description("Comma-separated, in render order").
			Value(&sections),
	)).Run()
	if err != nil {
		return "", nil, err
	}

	sectionList, _, err := parseTemplateLayout(sections, nil)
	if err != nil {
		return "", nil, err
	}

	chosen := make([]string, len(sectionList))
	var fields []huh.Field
	for i, section := range sectionList {
		chosen[i] = templates.StyleDetailed
		fields = append(fields, huh.NewSelect[string]().
			Title(fmt.Sprintf("Style for '%s'", section)).
			Options(
				huh.NewOption(templates.StyleDetailed, templates.StyleDetailed),
				huh.NewOption(templates.StyleSummary, templates.StyleSummary),
			).
			Value(&chosen[i]))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", nil, err
	}

	styles := make([]string, len(sectionList))
	for i, section := range sectionList {
		styles[i] = section + "=" + chosen[i]
	}
	return sections, styles, nil
}

// promptTemplateChoice offers the registered templates in a select list.
func promptTemplateChoice(names []string, current string) (string, error) {
	if len(names) == 0 {
		return "", errors.WithHint(errors.Wrap(errors.ErrNotFound, "No templates available."),
			"run 'genny init' to install the bundled templates")
	}

	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}

	choice := current
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Available templates").
			Options(options...).
			Value(&choice),
	)).Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}
