package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// SettingsSection is one tab of the settings view.
type SettingsSection struct {
	Title string
	Rows  []table.Row // Parameter, value
}

// BreakoutSettings lists the effective Breakout configuration by section.
func BreakoutSettings(cfg config.BreakoutConfig) []SettingsSection {
	p, l, h := cfg.Physics, cfg.Layout, cfg.Host
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	grid := func(g config.GridSize) string { return fmt.Sprintf("%dx%d", g.Rows, g.Cols) }

	return []SettingsSection{
		{
			Title: "Physics",
			Rows: []table.Row{
				{"base speed", num(p.BaseSpeed)},
				{"max speed", num(p.MaxSpeed)},
				{"acceleration", num(p.Acceleration)},
				{"paddle step", num(p.PaddleStep)},
				{"bounce", p.Bounce},
			},
		},
		{
			Title: "Layout",
			Rows: []table.Row{
				{"ball radius ratio", num(l.BallRadiusRatio)},
				{"paddle width ratio", num(l.PaddleWidthRatio)},
				{"paddle height", num(l.PaddleHeight)},
				{"paddle bottom gap", num(l.PaddleBottomGap)},
				{"launch gap", num(l.LaunchGap)},
				{"launch angle", fmt.Sprintf("%s-%s°", num(l.LaunchAngleMin), num(l.LaunchAngleMax))},
				{"dense grid", fmt.Sprintf("%s from %spx", grid(l.DenseGrid), num(l.DenseGridMinWidth))},
				{"sparse grid", grid(l.SparseGrid)},
				{"block height", num(l.BlockHeight)},
				{"block padding", num(l.BlockPadding)},
				{"column inset", num(l.ColumnInset)},
				{"top margin", num(l.TopMargin)},
			},
		},
		{
			Title: "Host",
			Rows: []table.Row{
				{"cell size", fmt.Sprintf("%sx%spx", num(h.CellWidthPx), num(h.CellHeightPx))},
				{"wide viewport", num(h.WideViewport)},
				{"wide arena", fmt.Sprintf("%sx%s", num(h.WideArena.Width), num(h.WideArena.Height))},
				{"narrow scale", fmt.Sprintf("%s x %s", num(h.NarrowScaleW), num(h.NarrowScaleH))},
				{"key hold ticks", strconv.Itoa(h.KeyHoldTicks)},
			},
		},
	}
}

// SettingsKeyMap defines the key bindings for the settings view.
type SettingsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next section"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev section"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SettingsModel shows the effective configuration as a table per section.
type SettingsModel struct {
	sections  []SettingsSection
	cursor    int // Current section
	table     table.Model
	help      help.Model
	keys      SettingsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewSettingsModel creates a settings view over the given sections.
func NewSettingsModel(sections []SettingsSection, width, height int) SettingsModel {
	h := help.New()
	h.Width = width

	m := SettingsModel{
		sections: sections,
		keys:     DefaultSettingsKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized for the current window.
func (m *SettingsModel) createTable() table.Model {
	valueWidth := core.Clamp(m.width-30, 12, 30)
	columns := []table.Column{
		{Title: "Parameter", Width: 20},
		{Title: "Value", Width: valueWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, tabs and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows loads the current section into the table.
func (m *SettingsModel) updateTableRows() {
	if len(m.sections) == 0 {
		m.table.SetRows(nil)
		return
	}
	m.table.SetRows(m.sections[m.cursor].Rows)
	m.table.GotoTop()
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings view.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			if len(m.sections) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sections)
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			if len(m.sections) > 0 {
				m.cursor = (m.cursor - 1 + len(m.sections)) % len(m.sections)
				m.updateTableRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the settings view.
func (m SettingsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("SETTINGS", m.width)))
	b.WriteString("\n\n")

	// Section tabs
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.sections))
	for i, s := range m.sections {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(s.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + s.Title + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.table.View())))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SettingsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
