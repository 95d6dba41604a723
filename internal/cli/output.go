package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/n0roo/infradocs/internal/render"
	"github.com/n0roo/infradocs/internal/tui"
	"github.com/n0roo/infradocs/internal/view"
)

var pageTitleStyle = lipgloss.NewStyle().Bold(true)

// printPage writes the expanded sections of a page as plain text
func printPage(w io.Writer, page view.Page) {
	title := fmt.Sprintf("%s  %s", tui.Icon(page.Tier.Icon), page.Tier.Title)
	fmt.Fprintln(w, pageTitleStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("=", lipgloss.Width(title)))

	for _, s := range page.Sections {
		if !s.Expanded {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", tui.ExpandMarker(true), s.Title)
		fmt.Fprintln(w, strings.Repeat("-", lipgloss.Width(s.Title)+2))
		if s.Diagram != nil {
			fmt.Fprintln(w)
			fmt.Fprintln(w, s.Diagram.Title)
			fmt.Fprintln(w, s.Diagram.Text)
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, render.PlainText(s.Blocks))
	}
}
