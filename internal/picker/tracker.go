package picker

import (
	"sort"

	"github.com/verte-zerg/heropick/internal/roster"
)

// Tracker remembers which names were already drawn per scope while no-repeat
// is on. Scopes are independent: a name marked under FilterAll does not
// exclude it from a category-scoped draw.
type Tracker struct {
	used map[Filter]map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{used: map[Filter]map[string]struct{}{}}
}

// Mark records name as drawn under scope.
func (t *Tracker) Mark(scope Filter, name string) {
	set, ok := t.used[scope]
	if !ok {
		set = map[string]struct{}{}
		t.used[scope] = set
	}
	set[name] = struct{}{}
}

// IsMarked reports whether name was drawn under scope.
func (t *Tracker) IsMarked(scope Filter, name string) bool {
	_, ok := t.used[scope][name]
	return ok
}

// IsExhausted reports whether every candidate is already marked under scope.
// An empty candidate list is never exhausted.
func (t *Tracker) IsExhausted(scope Filter, candidates []roster.Entry) bool {
	if len(candidates) == 0 {
		return false
	}
	set := t.used[scope]
	for _, e := range candidates {
		if _, ok := set[e.Name]; !ok {
			return false
		}
	}
	return true
}

// Exclude returns the candidates not yet marked under scope, in order.
func (t *Tracker) Exclude(scope Filter, candidates []roster.Entry) []roster.Entry {
	set := t.used[scope]
	out := make([]roster.Entry, 0, len(candidates))
	for _, e := range candidates {
		if _, ok := set[e.Name]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Len returns the number of names marked under scope.
func (t *Tracker) Len(scope Filter) int {
	return len(t.used[scope])
}

// Reset clears one scope.
func (t *Tracker) Reset(scope Filter) {
	delete(t.used, scope)
}

// ResetAll clears every scope.
func (t *Tracker) ResetAll() {
	t.used = map[Filter]map[string]struct{}{}
}

// Used returns the sorted names marked under scope.
func (t *Tracker) Used(scope Filter) []string {
	set := t.used[scope]
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns every non-empty scope as sorted name lists.
func (t *Tracker) Snapshot() map[string][]string {
	out := make(map[string][]string, len(t.used))
	for scope, set := range t.used {
		if len(set) == 0 {
			continue
		}
		out[string(scope)] = t.Used(scope)
	}
	return out
}

// Restore replaces the tracker contents. Unknown scopes are dropped.
func (t *Tracker) Restore(snapshot map[string][]string) {
	t.ResetAll()
	for key, names := range snapshot {
		scope, err := ParseFilter(key)
		if err != nil || key == "" {
			continue
		}
		for _, name := range names {
			t.Mark(scope, name)
		}
	}
}
