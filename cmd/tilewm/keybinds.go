package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/theme"
	"golang.org/x/term"
)

// listKeybindings prints all configured keybindings
func listKeybindings() error {
	logger := newLogger(os.Stderr)
	cfg, _ := loadConfig(logger)
	registry := config.NewKeybindRegistry(cfg.Bindings, logger)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		printKeybindingsTable(os.Stdout, registry)
		return nil
	}
	return printKeybindingsPlain(os.Stdout, registry)
}

// printKeybindingsPlain writes one "section, chord, description" line per
// binding for scripts.
func printKeybindingsPlain(w io.Writer, registry *config.KeybindRegistry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, section := range config.GetKeybindings(registry) {
		for _, b := range section.Bindings {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", section.Title, b.Key, b.Description)
		}
	}
	return tw.Flush()
}

// printKeybindingsTable prints keybindings in a pretty table format
func printKeybindingsTable(w io.Writer, registry *config.KeybindRegistry) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("tilewm Keybindings"))
	_, _ = fmt.Fprintln(w)

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		_, _ = fmt.Fprintln(w, t.Render())
		_, _ = fmt.Fprintln(w)
	}

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Note: the preview treats alt as super unless started with --no-alt-super.")
	_, _ = fmt.Fprintln(w, note)
	_, _ = fmt.Fprintln(w)
}

func listThemes() error {
	for _, name := range theme.Names() {
		fmt.Println(name)
	}
	return nil
}
