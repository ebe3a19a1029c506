package stats

import (
	"testing"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

func TestTopPicks(t *testing.T) {
	counts := []model.PickCount{
		{Name: "b", Category: roster.DPS, Count: 3},
		{Name: "a", Category: roster.Tank, Count: 3},
		{Name: "c", Category: roster.Healer, Count: 1},
	}
	top := TopPicks(counts, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(top))
	}
	if top[0].Name != "a" || top[1].Name != "b" {
		t.Fatalf("unexpected order: %v", top)
	}
	if counts[0].Name != "b" {
		t.Fatalf("input was reordered: %v", counts)
	}
}

func TestCategoryTotalsAndNeverPicked(t *testing.T) {
	r, err := roster.New(map[roster.Category][]string{
		roster.Tank:   {"a"},
		roster.DPS:    {"b", "d"},
		roster.Healer: {"c"},
	})
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	counts := []model.PickCount{
		{Name: "a", Category: roster.Tank, Count: 2},
		{Name: "b", Category: roster.DPS, Count: 1},
	}
	totals := CategoryTotals(counts)
	if totals[roster.Tank] != 2 || totals[roster.DPS] != 1 || totals[roster.Healer] != 0 {
		t.Fatalf("unexpected totals: %v", totals)
	}
	never := NeverPicked(r, counts)
	if len(never) != 2 || never[0].Name != "d" || never[1].Name != "c" {
		t.Fatalf("unexpected never picked: %v", never)
	}
}
