package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/aretw0/journal/pkg/core"
)

const excerptLength = 180

const emptyHint = "No notes match your search. Try adjusting your query or create a new note."

// palette holds the styles for one theme.
type palette struct {
	Title lipgloss.Style
	Meta  lipgloss.Style
	Body  lipgloss.Style
	Tag   lipgloss.Style
	Muted lipgloss.Style
}

func paletteFor(t core.Theme) palette {
	if t == core.ThemeDark {
		return palette{
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
			Meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Tag:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Background(lipgloss.Color("236")).Padding(0, 1),
			Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		}
	}
	return palette{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("232")),
		Meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Tag:   lipgloss.NewStyle().Foreground(lipgloss.Color("54")).Background(lipgloss.Color("254")).Padding(0, 1),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	}
}

// terminalThemeHint is the ambient preference: the terminal's background,
// when stdout is a terminal that can be asked.
func terminalThemeHint() (core.Theme, bool) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "", false
	}
	if lipgloss.HasDarkBackground() {
		return core.ThemeDark, true
	}
	return core.ThemeLight, true
}

// renderNote prints one note. full prints the whole content instead of an excerpt.
func renderNote(w io.Writer, p palette, n core.Note, full bool) {
	created := n.Created().Local().Format("2006-01-02 15:04")
	fmt.Fprintf(w, "%s  %s\n", p.Title.Render(n.DisplayTitle()), p.Meta.Render(created))

	body := n.Excerpt(excerptLength)
	if full {
		body = n.Content
	}
	if body != "" {
		fmt.Fprintln(w, p.Body.Render(body))
	}

	if len(n.Tags) > 0 {
		tags := make([]string, len(n.Tags))
		for i, t := range n.Tags {
			tags[i] = p.Tag.Render(t)
		}
		fmt.Fprintln(w, strings.Join(tags, " "))
	}
	fmt.Fprintln(w, p.Muted.Render("id: "+n.ID))
}

func renderList(w io.Writer, p palette, notes []core.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, p.Muted.Render(emptyHint))
		return
	}
	for i, n := range notes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderNote(w, p, n, false)
	}
}
