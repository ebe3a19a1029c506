package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

func TestRenderRoster(t *testing.T) {
	var buf bytes.Buffer
	entries := []roster.Entry{
		{Name: "x", Category: roster.Tank},
		{Name: "zed", Category: roster.DPS},
	}
	if err := RenderRoster(&buf, entries, false); err != nil {
		t.Fatalf("render roster: %v", err)
	}
	want := "Hero  Role\nx     TANK\nzed   DPS\n\nTANK 1  DPS 1  HEALER 0  TOTAL 2\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRenderRosterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRoster(&buf, nil, false); err != nil {
		t.Fatalf("render roster: %v", err)
	}
	if buf.String() != "No heroes match.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	history := []model.HistoryEntry{{Name: "x", Category: roster.Tank}}
	if err := RenderHistory(&buf, history, false); err != nil {
		t.Fatalf("render history: %v", err)
	}
	want := "#  Hero  Role  Picked\n1  x     TANK  -\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderHistoryTimestamp(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)
	history := []model.HistoryEntry{{Name: "x", Category: roster.Tank, Timestamp: at}}
	if err := RenderHistory(&buf, history, false); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "2025-06-01 09:30:00") {
		t.Fatalf("missing timestamp: %q", buf.String())
	}
}

func TestRenderColorWrapsRows(t *testing.T) {
	var buf bytes.Buffer
	history := []model.HistoryEntry{{Name: "x", Category: roster.Healer}}
	if err := RenderHistory(&buf, history, true); err != nil {
		t.Fatalf("render history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Contains(lines[0], "\x1b[") {
		t.Fatalf("header should not be coloured: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], categoryColors[roster.Healer]) || !strings.HasSuffix(lines[1], colorReset) {
		t.Fatalf("row should be coloured: %q", lines[1])
	}
}

func TestRenderPickReport(t *testing.T) {
	r, err := roster.New(map[roster.Category][]string{
		roster.Tank: {"Groot"},
		roster.DPS:  {"Storm", "Blade"},
	})
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	report := Report{
		Total: 3,
		Counts: []model.PickCount{
			{Name: "Groot", Category: roster.Tank, Count: 2},
			{Name: "Storm", Category: roster.DPS, Count: 1},
		},
	}
	var buf bytes.Buffer
	if err := RenderPickReport(&buf, report, r, 30, false); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Picks: 3",
		"66.7%",
		"33.3%",
		"Groot  TANK      2  ##########",
		"Storm  DPS       1  #####",
		"Never picked (1): Blade",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderPickReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPickReport(&buf, Report{}, nil, 80, false); err != nil {
		t.Fatalf("render report: %v", err)
	}
	if buf.String() != "No picks recorded.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestBar(t *testing.T) {
	if got := Bar(1, 100, 10); got != "#" {
		t.Fatalf("small values should still show: %q", got)
	}
	if got := Bar(0, 10, 10); got != "" {
		t.Fatalf("zero should be empty: %q", got)
	}
	if got := Bar(10, 10, 4); got != "####" {
		t.Fatalf("max should fill width: %q", got)
	}
}
