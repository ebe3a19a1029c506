package picker

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

func smallRoster(t *testing.T) *roster.Roster {
	t.Helper()
	r, err := roster.New(map[roster.Category][]string{
		roster.Tank: {"x", "y"},
		roster.DPS:  {"z"},
	})
	require.NoError(t, err)
	return r
}

func names(entries []roster.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestBuildPoolCategoryFilterKeepsRosterOrder(t *testing.T) {
	r := smallRoster(t)
	pool, err := BuildPool(r, FilterFor(roster.Tank), "", false, NewTracker())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(pool))
}

func TestBuildPoolSearchAcrossAll(t *testing.T) {
	r := smallRoster(t)
	pool, err := BuildPool(r, FilterAll, "z", false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, names(pool))
}

func TestBuildPoolSearchIsCaseInsensitiveSubstring(t *testing.T) {
	r := roster.Default()
	for _, query := range []string{"man", "  IRON ", "a", "-", "La"} {
		pool, err := BuildPool(r, FilterAll, query, false, nil)
		require.NoError(t, err, query)
		require.NotEmpty(t, pool, query)
		q := NormalizeQuery(query)
		for _, e := range pool {
			assert.True(t, strings.Contains(strings.ToLower(e.Name), q), "%q does not contain %q", e.Name, q)
		}
	}
}

func TestBuildPoolEmptySearchLeavesTrackerAlone(t *testing.T) {
	r := smallRoster(t)
	tracker := NewTracker()
	tracker.Mark(FilterAll, "x")

	_, err := BuildPool(r, FilterAll, "nothing matches", true, tracker)
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.True(t, tracker.IsMarked(FilterAll, "x"))
}

func TestBuildPoolExcludesMarkedNames(t *testing.T) {
	r := smallRoster(t)
	tracker := NewTracker()
	tracker.Mark(FilterFor(roster.Tank), "x")

	pool, err := BuildPool(r, FilterFor(roster.Tank), "", true, tracker)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, names(pool))

	pool, err = BuildPool(r, FilterFor(roster.Tank), "", false, tracker)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(pool))
}

func TestBuildPoolResetsExhaustedScope(t *testing.T) {
	r := smallRoster(t)
	tracker := NewTracker()
	tank := FilterFor(roster.Tank)
	tracker.Mark(tank, "x")
	tracker.Mark(tank, "y")
	tracker.Mark(FilterAll, "x")

	pool, err := BuildPool(r, tank, "", true, tracker)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(pool))
	assert.Equal(t, 0, tracker.Len(tank))
	assert.Equal(t, 1, tracker.Len(FilterAll))
}

func TestTrackerScopesAreIndependent(t *testing.T) {
	r := smallRoster(t)
	tracker := NewTracker()
	tracker.Mark(FilterAll, "x")

	pool, err := BuildPool(r, FilterFor(roster.Tank), "", true, tracker)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(pool))

	tracker.Mark(FilterFor(roster.Tank), "y")
	pool, err = BuildPool(r, FilterAll, "", true, tracker)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, names(pool))
}

func TestTrackerSnapshotRestore(t *testing.T) {
	tracker := NewTracker()
	tracker.Mark(FilterAll, "b")
	tracker.Mark(FilterAll, "a")
	tracker.Mark(FilterFor(roster.DPS), "z")

	snap := tracker.Snapshot()
	assert.Equal(t, map[string][]string{"all": {"a", "b"}, "dps": {"z"}}, snap)

	snap["bogus"] = []string{"q"}
	restored := NewTracker()
	restored.Restore(snap)
	assert.Equal(t, []string{"a", "b"}, restored.Used(FilterAll))
	assert.Equal(t, []string{"z"}, restored.Used(FilterFor(roster.DPS)))
	assert.Len(t, restored.Snapshot(), 2)
}

func TestSelectorPickIsMember(t *testing.T) {
	sel := NewSelectorWithSource(rand.NewSource(7))
	pool := roster.Default().InCategory(roster.Healer)
	member := map[string]bool{}
	for _, e := range pool {
		member[e.Name] = true
	}
	for i := 0; i < 500; i++ {
		got := sel.Pick(pool)
		assert.True(t, member[got.Name], "picked %q outside pool", got.Name)
		assert.Equal(t, roster.Healer, got.Category)
	}
}

func TestSelectorPickCoversPool(t *testing.T) {
	sel := NewSelectorWithSource(rand.NewSource(1))
	pool := smallRoster(t).All()
	seen := map[string]int{}
	for i := 0; i < 3000; i++ {
		seen[sel.Pick(pool).Name]++
	}
	require.Len(t, seen, 3)
	for name, n := range seen {
		assert.InDelta(t, 1000, n, 150, "uneven count for %s", name)
	}
}

func TestSelectorPickEmpty(t *testing.T) {
	assert.Equal(t, roster.Entry{}, NewSelector().Pick(nil))
}

func TestNoRepeatDrawsEveryNameOnceThenResets(t *testing.T) {
	r := roster.Default()
	s := NewSession(r, model.Settings{NoRepeat: true, Speed: model.SpeedFast}, NewSelectorWithSource(rand.NewSource(42)))
	s.Filter = FilterFor(roster.Healer)
	n := r.Count(roster.Healer)

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		e, err := s.Draw()
		require.NoError(t, err)
		assert.False(t, seen[e.Name], "repeat of %s at draw %d", e.Name, i)
		seen[e.Name] = true
	}
	assert.Equal(t, n, s.Tracker.Len(s.Filter))

	pool, err := s.Pool()
	require.NoError(t, err)
	assert.Len(t, pool, n)
	assert.Equal(t, 0, s.Tracker.Len(s.Filter))
}

func TestNoRepeatThirdDrawResetsScope(t *testing.T) {
	s := NewSession(smallRoster(t), model.Settings{NoRepeat: true}, NewSelectorWithSource(rand.NewSource(3)))
	s.Filter = FilterFor(roster.Tank)

	first, err := s.Draw()
	require.NoError(t, err)
	second, err := s.Draw()
	require.NoError(t, err)
	assert.NotEqual(t, first.Name, second.Name)
	assert.Equal(t, 2, s.Tracker.Len(s.Filter))

	third, err := s.Draw()
	require.NoError(t, err)
	assert.Contains(t, []string{"x", "y"}, third.Name)
	assert.Equal(t, 1, s.Tracker.Len(s.Filter))
}

func TestCommitWithoutNoRepeatDoesNotMark(t *testing.T) {
	s := NewSession(smallRoster(t), model.DefaultSettings(), nil)
	s.Commit(FilterAll, roster.Entry{Name: "x", Category: roster.Tank})
	assert.Equal(t, 0, s.Tracker.Len(FilterAll))
	assert.Equal(t, 1, s.History.Len())
}

func TestHistoryCapsAtMax(t *testing.T) {
	h := NewHistory(MaxHistory, NewTracker())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		h.Record(roster.Entry{Name: string(rune('a' + i%26)), Category: roster.DPS}, base.Add(time.Duration(i)*time.Second))
		assert.LessOrEqual(t, h.Len(), MaxHistory)
	}
	entries := h.Entries()
	require.Len(t, entries, MaxHistory)
	assert.Equal(t, base.Add(49*time.Second), entries[0].Timestamp)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.Len(t, h.Recent(VisibleHistory), VisibleHistory)
}

func TestHistoryClearAlsoClearsTracker(t *testing.T) {
	s := NewSession(smallRoster(t), model.Settings{NoRepeat: true}, NewSelectorWithSource(rand.NewSource(9)))
	_, err := s.Draw()
	require.NoError(t, err)
	s.Filter = FilterFor(roster.DPS)
	_, err = s.Draw()
	require.NoError(t, err)

	s.ClearHistory()
	assert.Equal(t, 0, s.History.Len())
	assert.Empty(t, s.Tracker.Snapshot())
}

func TestHistoryRestoreTruncates(t *testing.T) {
	h := NewHistory(3, nil)
	h.Restore(make([]model.HistoryEntry, 5))
	assert.Equal(t, 3, h.Len())
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
		err  bool
	}{
		{in: "", want: FilterAll},
		{in: "ALL", want: FilterAll},
		{in: "tank", want: FilterFor(roster.Tank)},
		{in: " Healer", want: FilterFor(roster.Healer)},
		{in: "support", err: true},
	}
	for _, tc := range tests {
		got, err := ParseFilter(tc.in)
		if tc.err {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}
