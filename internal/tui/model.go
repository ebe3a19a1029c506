// Package tui provides the Bubble Tea hero picker interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/heropick/internal/engine"
	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
	"github.com/verte-zerg/heropick/internal/state"
	"github.com/verte-zerg/heropick/internal/suspense"
)

const (
	highlightDuration = 2 * time.Second
	displayHeight     = 3
	minGridHeight     = 3
	historyTimeLayout = "15:04:05"
)

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	activeFilterStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#C89A3A")).Padding(0, 1)
	inactiveFilterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	previewStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	placeholderStyle    = previewStyle.Italic(true)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	spinnerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))

	categoryColors = map[roster.Category]lipgloss.Color{
		roster.Tank:   lipgloss.Color("#4A90E2"),
		roster.DPS:    lipgloss.Color("#E74C3C"),
		roster.Healer: lipgloss.Color("#2ECC71"),
	}
)

func categoryStyle(c roster.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color)
}

// scheduler runs animation tasks and hands their timers to the program.
type scheduler interface {
	suspense.Scheduler
	Flush() tea.Cmd
}

// Model implements the Bubble Tea picker UI. It is also the animation
// renderer: frames arrive from tasks run inside Update.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	sched  scheduler

	width  int
	height int

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	grid      viewport.Model
	history   table.Model

	visible     []roster.Entry
	cursor      int
	columns     int
	gridContent string

	frame        suspense.Frame
	hasFrame     bool
	direct       bool
	highlight    string
	highlightSeq int
	status       string
}

// NewModel constructs the picker TUI over an already restored session.
func NewModel(ctx context.Context, session *picker.Session, persist *state.Persister, picks engine.PickLog) *Model {
	return newModel(ctx, session, persist, picks, &suspense.TeaScheduler{})
}

func newModel(ctx context.Context, session *picker.Session, persist *state.Persister, picks engine.PickLog, sched scheduler) *Model {
	m := &Model{
		ctx:     ctx,
		sched:   sched,
		columns: defaultColumns,
		search:  newSearchInput(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		grid:    viewport.New(0, 0),
		history: newHistoryTable(),
	}
	m.engine = engine.New(session, sched, m, persist, picks)
	m.search.SetValue(session.Query)
	m.refresh()
	return m
}

func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search heroes"
	input.CharLimit = 40
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Hero", Width: 22},
			{Title: "Role", Width: 7},
			{Title: "Picked", Width: 8},
		}),
		table.WithHeight(2),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell
	t.SetStyles(styles)
	t.Blur()
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case suspense.TaskMsg:
		msg.Run()
	case spinner.TickMsg:
		if m.engine.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			cmd = m.updateSearch(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	}
	m.refresh()
	return m, tea.Batch(cmd, m.sched.Flush())
}

// RenderFrame implements suspense.Renderer.
func (m *Model) RenderFrame(f suspense.Frame) {
	m.frame = f
	m.hasFrame = true
	m.direct = false
	if f.Final && f.Phase == suspense.PhaseRevealing {
		m.flash(f.Entry.Name)
	}
}

func (m *Model) flash(name string) {
	m.highlightSeq++
	seq := m.highlightSeq
	m.highlight = name
	m.sched.Schedule(highlightDuration, func() {
		if m.highlightSeq == seq {
			m.highlight = ""
		}
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case " ", "r":
		return m.trigger()
	case "enter":
		m.showCursor()
	case "0", "1", "2", "3":
		m.setFilter(picker.Filters[msg.String()[0]-'0'])
	case "/":
		m.searching = true
		return m.search.Focus()
	case "n":
		m.engine.ToggleNoRepeat(m.ctx)
	case "s":
		m.engine.CycleSpeed(m.ctx)
	case "x":
		m.engine.ClearHistory(m.ctx)
		m.status = ""
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-m.columns)
	case "down", "j":
		m.moveCursor(m.columns)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.visible) - 1
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.engine.Session().Query {
		m.engine.SetQuery(m.search.Value())
		m.cursor = 0
		m.status = ""
	}
	return cmd
}

func (m *Model) trigger() tea.Cmd {
	started, err := m.engine.Trigger(m.ctx)
	if err != nil {
		if errors.Is(err, picker.ErrEmptyPool) {
			m.status = "No heroes match the current filter."
		} else {
			m.status = err.Error()
		}
		return nil
	}
	if !started {
		return nil
	}
	m.status = ""
	return m.spinner.Tick
}

func (m *Model) setFilter(f picker.Filter) {
	if m.engine.SetFilter(f) {
		m.cursor = 0
		m.status = ""
	}
}

func (m *Model) showCursor() {
	if m.engine.Busy() || m.cursor < 0 || m.cursor >= len(m.visible) {
		return
	}
	e := m.visible[m.cursor]
	m.frame = suspense.Frame{Phase: suspense.PhaseIdle, Entry: e, Final: true}
	m.hasFrame = true
	m.direct = true
	m.flash(e.Name)
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.visible) {
		next = len(m.visible) - 1
	}
	m.cursor = next
}

func (m *Model) refresh() {
	session := m.engine.Session()
	m.visible = session.Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.layout()

	cellWidth := cellWidthFor(m.visible)
	if m.grid.Width > 0 && cellWidth > m.grid.Width {
		cellWidth = m.grid.Width
	}
	m.columns = gridColumns(cellWidth, m.grid.Width)
	noRepeat := session.Settings.NoRepeat
	cells := buildGridCells(m.visible, cellWidth, func(i int, e roster.Entry) cellState {
		return cellState{
			cursor:    i == m.cursor,
			highlight: e.Name == m.highlight,
			used:      noRepeat && session.Tracker.IsMarked(session.Filter, e.Name),
		}
	})
	m.gridContent = renderGrid(cells, m.columns)
	m.grid.SetContent(m.gridContent)
	m.scrollToCursor()

	m.history.SetRows(historyRows(session.History.Recent(picker.VisibleHistory)))
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	rows := m.engine.Session().History.Len()
	if rows > picker.VisibleHistory {
		rows = picker.VisibleHistory
	}
	if rows < 1 {
		rows = 1
	}
	historyHeight := rows + 2
	m.history.SetHeight(rows + 1)
	m.history.SetWidth(m.width)

	fixed := 1 + displayHeight + 1 + historyHeight + 1
	gridHeight := m.height - fixed - 1
	if gridHeight < minGridHeight {
		gridHeight = minGridHeight
	}
	m.grid.Width = m.width
	m.grid.Height = gridHeight
	m.search.Width = maxInt(10, m.width-lipgloss.Width(m.search.Prompt)-2)
}

func (m *Model) scrollToCursor() {
	if m.grid.Height <= 0 {
		return
	}
	row := gridRow(m.cursor, m.columns)
	switch {
	case row < m.grid.YOffset:
		m.grid.SetYOffset(row)
	case row >= m.grid.YOffset+m.grid.Height:
		m.grid.SetYOffset(row - m.grid.Height + 1)
	}
}

func historyRows(entries []model.HistoryEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, h := range entries {
		when := "-"
		if !h.Timestamp.IsZero() {
			when = h.Timestamp.Local().Format(historyTimeLayout)
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), h.Name, h.Category.Label(), when})
	}
	return rows
}

// View implements tea.Model.
func (m *Model) View() string {
	grid := m.gridContent
	if m.width > 0 && m.height > 0 {
		grid = m.grid.View()
	}
	sections := []string{
		m.renderHeader(),
		m.renderDisplay(),
		m.renderSearch(),
		grid,
		m.history.View(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	session := m.engine.Session()
	parts := make([]string, 0, len(picker.Filters)+1)
	parts = append(parts, titleStyle.Render("HERO PICKER")+"  ")
	for i, f := range picker.Filters {
		count := session.Roster.Total()
		if c, ok := f.Category(); ok {
			count = session.Roster.Count(c)
		}
		label := fmt.Sprintf("%d %s %d", i, f.Label(), count)
		if f == session.Filter {
			parts = append(parts, activeFilterStyle.Render(label))
		} else {
			parts = append(parts, inactiveFilterStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderDisplay() string {
	var name, detail string
	switch {
	case !m.hasFrame:
		name = footerStyle.Render("Press space to pick a hero")
	case m.frame.Placeholder:
		name = placeholderStyle.Render(suspense.Placeholder)
	case m.frame.Final:
		name = categoryStyle(m.frame.Entry.Category).Bold(true).Render(m.frame.Entry.Name)
		detail = categoryStyle(m.frame.Entry.Category).Render(m.frame.Entry.Category.Label())
		if m.direct {
			detail += footerStyle.Render("  (not recorded)")
		}
	default:
		name = previewStyle.Render(m.frame.Name())
	}
	phase := m.engine.Phase()
	if (phase == suspense.PhasePausing || phase == suspense.PhaseRevealing) && !m.frame.Final {
		detail = m.spinner.View()
	}
	lines := []string{name, detail, statusStyle.Render(m.status)}
	if m.width > 0 {
		for i, line := range lines {
			lines[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSearch() string {
	if m.searching || m.engine.Session().Query != "" {
		return m.search.View()
	}
	return footerStyle.Render("/ to search")
}

func (m *Model) renderFooter() string {
	session := m.engine.Session()
	segments := []string{fmt.Sprintf("Showing %d/%d", len(m.visible), session.Roster.Total())}
	repeat := "off"
	if session.Settings.NoRepeat {
		repeat = fmt.Sprintf("on (%d used)", session.Tracker.Len(session.Filter))
	}
	segments = append(segments,
		"No-repeat "+repeat,
		"Speed "+string(session.Settings.Speed),
		"space pick · enter show · 0-3 filter · n repeat · s speed · x clear · q quit",
	)
	return footerStyle.Render(strings.Join(segments, "  "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
