package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/n0roo/infradocs/internal/config"
)

var (
	// Colors
	mutedColor = lipgloss.Color("#6B7280") // Gray
	errorColor = lipgloss.Color("#EF4444") // Red

	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(mutedColor)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true)

	headingStyle = lipgloss.NewStyle().
			Bold(true)

	paragraphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	diagramStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// theme resolves catalog colour and icon tokens into terminal styles
type theme struct {
	cfg     *config.Config
	primary lipgloss.Color
}

func newTheme(cfg *config.Config) theme {
	return theme{cfg: cfg, primary: lipgloss.Color(cfg.Theme.Primary)}
}

// color maps a tier colour token; unknown tokens use the primary colour
func (t theme) color(token string) lipgloss.Color {
	return lipgloss.Color(t.cfg.ColorFor(token))
}

func (t theme) activeTab(token string) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(t.color(token)).
		Bold(true).
		Underline(true)
}

func (t theme) banner(token string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.color(token)).
		Foreground(t.color(token)).
		Bold(true).
		Padding(0, 2)
}

func (t theme) cursor(token string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.color(token)).
		Bold(true)
}

func (t theme) heading(token string) lipgloss.Style {
	return headingStyle.Foreground(t.color(token))
}

func (t theme) compliance() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(t.primary).
		Foreground(t.primary)
}

// Icon returns a glyph for a tier icon token
func Icon(token string) string {
	switch token {
	case "server":
		return "🖥"
	case "cloud":
		return "☁"
	case "shield":
		return "🛡"
	case "lock":
		return "🔒"
	case "file":
		return "📄"
	default:
		return "•"
	}
}

// ExpandMarker returns the section disclosure marker
func ExpandMarker(expanded bool) string {
	if expanded {
		return "▾"
	}
	return "▸"
}
