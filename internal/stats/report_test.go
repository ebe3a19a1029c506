package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
	"github.com/verte-zerg/heropick/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "heropick.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	names := []string{"Storm", "Groot", "Storm"}
	for i, name := range names {
		category := roster.DPS
		if name == "Groot" {
			category = roster.Tank
		}
		rec := model.PickRecord{
			Name:     name,
			Category: category,
			PickedAt: time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Filter:   "all",
			Speed:    model.SpeedNormal,
		}
		if _, err := st.InsertPick(ctx, rec); err != nil {
			t.Fatalf("insert pick: %v", err)
		}
	}

	report, err := BuildReport(ctx, st)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Total != 3 {
		t.Fatalf("expected 3 picks, got %d", report.Total)
	}
	if len(report.Counts) != 2 {
		t.Fatalf("expected 2 heroes, got %d", len(report.Counts))
	}
	if report.Counts[0].Name != "Storm" || report.Counts[0].Count != 2 {
		t.Fatalf("unexpected top hero: %+v", report.Counts[0])
	}
}
