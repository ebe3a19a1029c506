// Package statsui provides the Bubble Tea pick statistics interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
	"github.com/verte-zerg/heropick/internal/stats"
)

const (
	tabOverview = iota
	tabHeroes
	tabNeverPicked
)

const lastPickedLayout = "2006-01-02 15:04"

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	ctx    context.Context
	source stats.PickSource
	roster *roster.Roster

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	heroTable table.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	query       string
}

// NewModel constructs a stats UI model.
func NewModel(ctx context.Context, source stats.PickSource, r *roster.Roster) *Model {
	m := &Model{
		ctx:    ctx,
		source: source,
		roster: r,
		tabs:   []string{"Overview", "Heroes", "Never Picked"},
	}
	m.filterInput = newFilterInput("Hero: ")
	m.heroTable = buildHeroTable(nil, 0, 1)
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabHeroes {
			m.heroTable.Focus()
		} else {
			m.heroTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.filterMode = true
			m.filterInput.SetValue(m.query)
			return m, m.filterInput.Focus()
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			if m.activeTab == tabHeroes {
				m.heroTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHeroes {
				m.heroTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabHeroes {
				var cmd tea.Cmd
				m.heroTable, cmd = m.heroTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "name"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.heroTable.SetWidth(m.width)
	m.heroTable.SetHeight(maxInt(1, vpHeight-1))
	m.filterInput.Width = maxInt(10, m.width-lipgloss.Width(m.filterInput.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHeroes {
		m.heroTable.Focus()
	} else {
		m.heroTable.Blur()
	}
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		m.query = strings.TrimSpace(m.filterInput.Value())
		m.renderTabContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	query := m.query
	if query == "" {
		query = "any"
	}
	summary := truncateLine(fmt.Sprintf("Picks: %d  Hero filter: %s", m.report.Total, query), m.width)
	return tabs + "\n" + padLines(headerStyle.Render(summary), m.width)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.filterInput.View()
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabHeroes {
		if len(m.filteredCounts()) == 0 {
			return fitLines("No picks found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.heroTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(m.ctx, m.source)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderTabContents()
}

func (m *Model) filteredCounts() []model.PickCount {
	q := picker.NormalizeQuery(m.query)
	if q == "" {
		return m.report.Counts
	}
	out := make([]model.PickCount, 0, len(m.report.Counts))
	for _, c := range m.report.Counts {
		if picker.Matches(c.Name, q) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	counts := m.filteredCounts()
	m.heroTable.SetRows(heroRows(counts, m.report.Total))
	m.heroTable.SetWidth(width)
	m.heroTable.SetHeight(maxInt(1, bodyHeight-1))
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.roster, width))
	m.viewports[tabNeverPicked].SetContent(renderNeverPicked(m.roster, m.report.Counts, m.query))
}

func renderOverview(report stats.Report, r *roster.Roster, width int) string {
	if report.Total == 0 {
		return "No picks recorded."
	}
	top := stats.TopPicks(report.Counts, 1)
	never := 0
	if r != nil {
		never = len(stats.NeverPicked(r, report.Counts))
	}
	cards := []string{
		metricCard("Picks", fmt.Sprintf("%d", report.Total)),
		metricCard("Heroes", fmt.Sprintf("%d", len(report.Counts))),
		metricCard("Top", fmt.Sprintf("%s ×%d", top[0].Name, top[0].Count)),
		metricCard("Never", fmt.Sprintf("%d", never)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	var buf bytes.Buffer
	if err := stats.RenderPickReport(&buf, report, nil, width, false); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render report: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderNeverPicked(r *roster.Roster, counts []model.PickCount, query string) string {
	if r == nil {
		return "No roster loaded."
	}
	q := picker.NormalizeQuery(query)
	lines := []string{}
	for _, e := range stats.NeverPicked(r, counts) {
		if q != "" && !picker.Matches(e.Name, q) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-7s %s", e.Category.Label(), e.Name))
	}
	if len(lines) == 0 {
		return "Every hero has been picked."
	}
	return strings.Join(lines, "\n")
}

func buildHeroTable(counts []model.PickCount, width, height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Hero", Width: 22},
			{Title: "Role", Width: 7},
			{Title: "Picks", Width: 6},
			{Title: "Share", Width: 7},
			{Title: "Last picked", Width: 16},
		}),
		table.WithRows(heroRows(counts, 0)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(heroTableStyles())
	return t
}

func heroRows(counts []model.PickCount, total int) []table.Row {
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) / float64(total) * 100
		}
		rows = append(rows, table.Row{
			c.Name,
			c.Category.Label(),
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.1f%%", share),
			c.LastPicked.Local().Format(lastPickedLayout),
		})
	}
	return rows
}

func heroTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
