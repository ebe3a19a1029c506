package picker

import (
	"errors"

	"github.com/verte-zerg/heropick/internal/roster"
)

// ErrEmptyPool is returned when the filter and search leave no candidates.
var ErrEmptyPool = errors.New("no eligible heroes")

// Candidates returns the entries matching filter and query, in roster order,
// without applying no-repeat exclusion.
func Candidates(r *roster.Roster, filter Filter, query string) []roster.Entry {
	var base []roster.Entry
	if c, ok := filter.Category(); ok {
		base = r.InCategory(c)
	} else {
		base = r.All()
	}
	q := NormalizeQuery(query)
	if q == "" {
		return base
	}
	out := base[:0]
	for _, e := range base {
		if Matches(e.Name, q) {
			out = append(out, e)
		}
	}
	return out
}

// BuildPool derives the candidates eligible for the next draw. With noRepeat
// set, names already drawn under the filter's scope are removed; when that
// would leave nothing, the scope is reset and the unexcluded candidates are
// returned instead. ErrEmptyPool is returned, with the tracker untouched,
// when filter and query match nothing.
func BuildPool(r *roster.Roster, filter Filter, query string, noRepeat bool, tracker *Tracker) ([]roster.Entry, error) {
	candidates := Candidates(r, filter, query)
	if len(candidates) == 0 {
		return nil, ErrEmptyPool
	}
	if !noRepeat || tracker == nil {
		return candidates, nil
	}
	if tracker.IsExhausted(filter, candidates) {
		tracker.Reset(filter)
		return candidates, nil
	}
	return tracker.Exclude(filter, candidates), nil
}
