package stats

import (
	"sort"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

// TopPicks returns the n most picked heroes. Ties break by name.
func TopPicks(counts []model.PickCount, n int) []model.PickCount {
	if n <= 0 || len(counts) == 0 {
		return nil
	}
	items := append([]model.PickCount(nil), counts...)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Name < items[j].Name
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// CategoryTotals sums pick counts per category.
func CategoryTotals(counts []model.PickCount) map[roster.Category]int {
	out := make(map[roster.Category]int, len(roster.Categories))
	for _, c := range counts {
		out[c.Category] += c.Count
	}
	return out
}

// NeverPicked lists roster heroes absent from counts, in roster order.
func NeverPicked(r *roster.Roster, counts []model.PickCount) []roster.Entry {
	seen := make(map[string]struct{}, len(counts))
	for _, c := range counts {
		seen[c.Name] = struct{}{}
	}
	var out []roster.Entry
	for _, e := range r.All() {
		if _, ok := seen[e.Name]; !ok {
			out = append(out, e)
		}
	}
	return out
}
