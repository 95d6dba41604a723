package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/config"
	"github.com/n0roo/infradocs/internal/diagram"
	"github.com/n0roo/infradocs/internal/render"
	"github.com/n0roo/infradocs/internal/selection"
	"github.com/n0roo/infradocs/internal/view"
)

const (
	appTitle      = "Pico MES Infrastructure Documentation"
	appSubtitle   = "Deployment guides for various security environments"
	minViewport   = 3
	tallTerminal  = 30
	contentIndent = 4
)

// surface observes the selection controller and keeps the page current.
// It is shared by every copy of the Model.
type surface struct {
	cat    *catalog.Catalog
	logger *zap.Logger
	page   view.Page
	err    error

	unsubscribe func()
}

func (s *surface) rebuild(st selection.State) {
	s.page, s.err = view.Build(s.cat, st)
	if s.err != nil {
		s.logger.Error("page build failed", zap.String("tier", st.ActiveTier), zap.Error(s.err))
	}
}

// Model is the viewer TUI model
type Model struct {
	cat   *catalog.Catalog
	ctrl  *selection.Controller
	cfg   *config.Config
	theme theme
	keys  keyMap
	help  help.Model

	surface *surface

	// State
	cursor int
	err    error
	width  int
	height int
	ready  bool

	viewport viewport.Model
}

// NewModel creates a viewer over cat driven by ctrl. The model stays
// subscribed to ctrl until Close is called.
func NewModel(cat *catalog.Catalog, ctrl *selection.Controller, cfg *config.Config, logger *zap.Logger) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &surface{cat: cat, logger: logger}
	s.rebuild(ctrl.State())
	s.unsubscribe = ctrl.Subscribe(s.rebuild)

	return Model{
		cat:      cat,
		ctrl:     ctrl,
		cfg:      cfg,
		theme:    newTheme(cfg),
		keys:     defaultKeyMap(),
		help:     help.New(),
		surface:  s,
		viewport: viewport.New(0, 0),
	}
}

// Close detaches the model from its controller. Copies of the model
// share the subscription, so closing any of them closes all.
func (m Model) Close() {
	if m.surface != nil && m.surface.unsubscribe != nil {
		m.surface.unsubscribe()
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		follow := true
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.surface.page.Sections)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if s, ok := m.currentSection(); ok {
				m.ctrl.ToggleSection(s.Key)
			}
		case key.Matches(msg, m.keys.NextTier):
			m.stepTier(1)
		case key.Matches(msg, m.keys.PrevTier):
			m.stepTier(-1)
		case key.Matches(msg, m.keys.Tier):
			m.selectPosition(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.Collapse):
			m.ctrl.CollapseAll()
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
			follow = false
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
			follow = false
		default:
			return m, nil
		}
		if follow {
			m.syncViewport(true)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.syncViewport(true)
	}

	return m, nil
}

// SelectTier switches the active tier by key. Invalid keys leave the state
// unchanged and surface an error banner.
func (m *Model) SelectTier(tierKey string) {
	if err := m.ctrl.SelectTier(tierKey); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.cursor = 0
}

func (m *Model) selectPosition(pos int) {
	keys := m.cat.Keys()
	if pos < 0 || pos >= len(keys) {
		return
	}
	m.SelectTier(keys[pos])
}

func (m *Model) stepTier(delta int) {
	n := m.cat.Len()
	pos := m.cat.Position(m.ctrl.ActiveTier())
	m.selectPosition(((pos+delta)%n + n) % n)
}

func (m Model) currentSection() (view.SectionView, bool) {
	sections := m.surface.page.Sections
	if m.cursor < 0 || m.cursor >= len(sections) {
		return view.SectionView{}, false
	}
	return sections[m.cursor], true
}

// syncViewport re-renders the body and resizes the viewport around the chrome
func (m *Model) syncViewport(followCursor bool) {
	if !m.ready {
		return
	}

	h := m.height - lipgloss.Height(m.renderTop()) - lipgloss.Height(m.renderBottom())
	if h < minViewport {
		h = minViewport
	}
	m.viewport.Width = m.width
	m.viewport.Height = h

	body, offsets := m.renderBody()
	m.viewport.SetContent(body)

	if !followCursor || m.cursor >= len(offsets) {
		return
	}
	line := offsets[m.cursor]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTop(),
		m.viewport.View(),
		m.renderBottom(),
	)
}

func (m Model) renderTop() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(" " + appSubtitle))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("⚠ " + m.err.Error()))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	headerWidth := m.width
	if headerWidth < 60 {
		headerWidth = 60
	}

	left := appTitle
	right := fmt.Sprintf("%d tiers", m.cat.Len())
	gap := headerWidth - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(headerWidth).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabs() string {
	active := m.ctrl.ActiveTier()
	var tabs []string
	for i, t := range m.cat.Tiers() {
		label := fmt.Sprintf("[%d] %s %s", i+1, Icon(t.Icon), t.Title)
		style := tabStyle
		if t.Key == active {
			style = m.theme.activeTab(t.Color)
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(strings.Join(tabs, " "))
}

func (m Model) renderBanner() string {
	if m.surface.err != nil {
		return errorStyle.Render("⚠ documentation unavailable: " + m.surface.err.Error())
	}
	t := m.surface.page.Tier
	return m.theme.banner(t.Color).Render(Icon(t.Icon) + "  " + t.Title)
}

func (m Model) renderBottom() string {
	var b strings.Builder

	f := m.cfg.Footer
	if m.height >= tallTerminal && len(f.Compliance) > 0 {
		lines := append([]string{lipgloss.NewStyle().Bold(true).Render(f.Title)}, f.Compliance...)
		b.WriteString(m.theme.compliance().Width(max(m.width, 1)).Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	if f.Contact != "" {
		b.WriteString(footerStyle.Render(f.Contact))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderBody lays out the section list. It returns the body and the line
// offset of every section title within it.
func (m Model) renderBody() (string, []int) {
	if m.surface.err != nil {
		return subtitleStyle.Render("  Select another tier to continue."), nil
	}

	page := m.surface.page
	color := page.Tier.Color
	width := m.width - contentIndent
	if width < 20 {
		width = 20
	}

	var lines []string
	n := 0
	add := func(entry string) {
		lines = append(lines, entry)
		n += strings.Count(entry, "\n") + 1
	}

	offsets := make([]int, len(page.Sections))
	for i, s := range page.Sections {
		offsets[i] = n

		pointer := "  "
		if i == m.cursor {
			pointer = m.theme.cursor(color).Render("❯ ")
		}
		title := pointer + ExpandMarker(s.Expanded) + " " + sectionTitleStyle.Render(s.Title)
		if s.HasDiagram && !s.Expanded {
			title += subtitleStyle.Render("  (diagram)")
		}
		add(title)

		if !s.Expanded {
			continue
		}
		if s.Diagram != nil {
			add(indent(renderDiagram(*s.Diagram), strings.Repeat(" ", contentIndent)))
		}
		for _, blk := range s.Blocks {
			add(m.renderBlock(blk, width, color))
		}
		add("")
	}

	return strings.Join(lines, "\n"), offsets
}

func (m Model) renderBlock(blk render.Block, width int, color string) string {
	pad := strings.Repeat(" ", contentIndent)
	switch blk.Kind {
	case render.KindHeading:
		return pad + m.theme.heading(color).Render(blk.Text)
	case render.KindListItem:
		text := lipgloss.NewStyle().Width(width - 2).Render(blk.Text)
		return hang(text, pad+bulletStyle.Render("•")+" ", pad+"  ")
	case render.KindBlank:
		return ""
	default:
		return indent(paragraphStyle.Width(width).Render(blk.Text), pad)
	}
}

func renderDiagram(a diagram.Asset) string {
	title := lipgloss.NewStyle().Bold(true).Render(a.Title)
	return diagramStyle.Render(title + "\n\n" + a.Text)
}

func indent(s, prefix string) string {
	return hang(s, prefix, prefix)
}

// hang prefixes the first line with first and the remaining lines with rest
func hang(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
		} else {
			lines[i] = rest + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the TUI
func Run(cat *catalog.Catalog, ctrl *selection.Controller, cfg *config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("viewer started",
		zap.String("session", ctrl.SessionID()),
		zap.String("tier", ctrl.ActiveTier()),
	)

	m := NewModel(cat, ctrl, cfg, logger)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	if err != nil {
		logger.Error("viewer failed", zap.Error(err))
		return err
	}
	logger.Info("viewer stopped", zap.String("session", ctrl.SessionID()))
	return nil
}
