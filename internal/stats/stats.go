package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

const (
	historyTimeLayout = "2006-01-02 15:04:05"
	barChar           = "#"
	maxBarWidth       = 40
	minBarWidth       = 5
)

// RenderCounts prints the per-category counter line.
func RenderCounts(w io.Writer, counts map[roster.Category]int, useColor bool) error {
	parts := make([]string, 0, len(roster.Categories)+1)
	total := 0
	for _, c := range roster.Categories {
		parts = append(parts, Colorize(c, fmt.Sprintf("%s %d", c.Label(), counts[c]), useColor))
		total += counts[c]
	}
	parts = append(parts, fmt.Sprintf("TOTAL %d", total))
	_, err := fmt.Fprintln(w, strings.Join(parts, "  "))
	return err
}

// RenderRoster prints entries grouped in roster order, followed by counts.
func RenderRoster(w io.Writer, entries []roster.Entry, useColor bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No heroes match.")
		return err
	}
	rows := make([][]string, 0, len(entries))
	counts := make(map[roster.Category]int, len(roster.Categories))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, e.Category.Label()})
		counts[e.Category]++
	}
	lines := formatTable([]string{"Hero", "Role"}, rows, nil)
	if err := writeLines(w, lines, entries, useColor); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderCounts(w, counts, useColor)
}

// RenderHistory prints recent picks, newest first.
func RenderHistory(w io.Writer, history []model.HistoryEntry, useColor bool) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No picks yet.")
		return err
	}
	rows := make([][]string, 0, len(history))
	entries := make([]roster.Entry, 0, len(history))
	for i, h := range history {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			h.Name,
			h.Category.Label(),
			formatTimestamp(h.Timestamp),
		})
		entries = append(entries, roster.Entry{Name: h.Name, Category: h.Category})
	}
	lines := formatTable([]string{"#", "Hero", "Role", "Picked"}, rows, map[int]bool{0: true})
	return writeLines(w, lines, entries, useColor)
}

// RenderPickReport prints all-time pick statistics sized to width.
func RenderPickReport(w io.Writer, report Report, r *roster.Roster, width int, useColor bool) error {
	if report.Total == 0 {
		_, err := fmt.Fprintln(w, "No picks recorded.")
		return err
	}
	if _, err := fmt.Fprintf(w, "Picks: %d\n", report.Total); err != nil {
		return err
	}
	totals := CategoryTotals(report.Counts)
	for _, c := range roster.Categories {
		line := fmt.Sprintf("%-7s %5d  %5.1f%%", c.Label(), totals[c], share(totals[c], report.Total)*100)
		if _, err := fmt.Fprintln(w, Colorize(c, line, useColor)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	top := TopPicks(report.Counts, len(report.Counts))
	maxCount := top[0].Count
	barWidth := barWidthFor(width)
	rows := make([][]string, 0, len(top))
	entries := make([]roster.Entry, 0, len(top))
	for _, pc := range top {
		rows = append(rows, []string{
			pc.Name,
			pc.Category.Label(),
			fmt.Sprintf("%d", pc.Count),
			Bar(pc.Count, maxCount, barWidth),
		})
		entries = append(entries, roster.Entry{Name: pc.Name, Category: pc.Category})
	}
	lines := formatTable([]string{"Hero", "Role", "Picks", ""}, rows, map[int]bool{2: true})
	if err := writeLines(w, lines, entries, useColor); err != nil {
		return err
	}

	if r == nil {
		return nil
	}
	never := NeverPicked(r, report.Counts)
	if len(never) == 0 {
		return nil
	}
	names := make([]string, len(never))
	for i, e := range never {
		names[i] = e.Name
	}
	_, err := fmt.Fprintf(w, "\nNever picked (%d): %s\n", len(never), strings.Join(names, ", "))
	return err
}

// Bar renders a horizontal bar of value scaled against maxValue.
func Bar(value, maxValue, width int) string {
	if value <= 0 || maxValue <= 0 || width <= 0 {
		return ""
	}
	n := value * width / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat(barChar, n)
}

func barWidthFor(totalWidth int) int {
	w := totalWidth / 3
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

func share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(historyTimeLayout)
}

// writeLines writes a formatted table, colouring body rows by entry category.
func writeLines(w io.Writer, lines []string, entries []roster.Entry, useColor bool) error {
	for i, line := range lines {
		if i > 0 && i-1 < len(entries) {
			line = Colorize(entries[i-1].Category, line, useColor)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
