// Package picker implements candidate pooling, random selection, no-repeat
// tracking and the pick history.
package picker

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/heropick/internal/roster"
)

// Filter restricts draws to one category or to the whole roster. A filter
// value doubles as the no-repeat scope key.
type Filter string

// FilterAll draws from every category.
const FilterAll Filter = "all"

// Filters lists every filter in key-binding order (0, 1, 2, 3).
var Filters = []Filter{FilterAll, Filter(roster.Tank), Filter(roster.DPS), Filter(roster.Healer)}

// FilterFor returns the filter for a single category.
func FilterFor(c roster.Category) Filter {
	return Filter(c)
}

// ParseFilter parses "all" or a category name.
func ParseFilter(s string) (Filter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == string(FilterAll) {
		return FilterAll, nil
	}
	c, err := roster.ParseCategory(v)
	if err != nil {
		return "", fmt.Errorf("unknown filter %q (want all, tank, dps or healer)", s)
	}
	return FilterFor(c), nil
}

// Category returns the category of a single-category filter.
func (f Filter) Category() (roster.Category, bool) {
	if f == FilterAll {
		return "", false
	}
	c := roster.Category(f)
	return c, c.Valid()
}

// Label returns the display label of the filter.
func (f Filter) Label() string {
	if c, ok := f.Category(); ok {
		return c.Label()
	}
	return "ALL"
}

// NormalizeQuery trims and case-folds a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Matches reports whether name contains the normalized query.
func Matches(name, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), normalizedQuery)
}
