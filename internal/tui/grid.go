package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/heropick/internal/roster"
)

const (
	cellGap        = 2
	defaultColumns = 4
)

type gridCell struct {
	s     string
	width int
}

type cellState struct {
	cursor    bool
	highlight bool
	used      bool
}

// cellWidthFor returns the width every cell is padded to.
func cellWidthFor(entries []roster.Entry) int {
	width := 1
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w > width {
			width = w
		}
	}
	return width
}

// gridColumns returns how many cells fit in a line of the given width.
func gridColumns(cellWidth, width int) int {
	if width <= 0 {
		return defaultColumns
	}
	cols := (width + cellGap) / (cellWidth + cellGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func buildGridCells(entries []roster.Entry, cellWidth int, stateOf func(int, roster.Entry) cellState) []gridCell {
	out := make([]gridCell, 0, len(entries))
	for i, e := range entries {
		st := stateOf(i, e)
		text := runewidth.Truncate(e.Name, cellWidth, "…")
		text = runewidth.FillRight(text, cellWidth)
		out = append(out, gridCell{
			s:     cellStyle(e.Category, st).Render(text),
			width: runewidth.StringWidth(text),
		})
	}
	return out
}

func cellStyle(c roster.Category, st cellState) lipgloss.Style {
	style := categoryStyle(c)
	switch {
	case st.highlight:
		style = style.Bold(true).Reverse(true)
	case st.used:
		style = style.Faint(true)
	}
	if st.cursor {
		style = style.Underline(true)
	}
	return style
}

// renderGrid lays cells out row by row.
func renderGrid(cells []gridCell, columns int) string {
	if len(cells) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}
	gap := strings.Repeat(" ", cellGap)
	lines := make([]string, 0, len(cells)/columns+1)
	var b strings.Builder
	for i, cell := range cells {
		if i%columns != 0 {
			b.WriteString(gap)
		}
		b.WriteString(cell.s)
		if i%columns == columns-1 || i == len(cells)-1 {
			lines = append(lines, b.String())
			b.Reset()
		}
	}
	return strings.Join(lines, "\n")
}

// gridRow returns the line index of cell i.
func gridRow(i, columns int) int {
	if columns < 1 {
		return i
	}
	return i / columns
}
