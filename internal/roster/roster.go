// Package roster holds the hero roster grouped by category.
package roster

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the three groupings that partition the roster.
type Category string

const (
	Tank   Category = "tank"
	DPS    Category = "dps"
	Healer Category = "healer"
)

// Categories lists every category in display order.
var Categories = []Category{Tank, DPS, Healer}

var (
	// ErrDuplicateName is returned when a name appears more than once.
	ErrDuplicateName = errors.New("duplicate hero name")
	// ErrUnknownCategory is returned for category keys outside Categories.
	ErrUnknownCategory = errors.New("unknown category")
)

// Label returns the upper-case badge text for the category.
func (c Category) Label() string {
	switch c {
	case Tank:
		return "TANK"
	case DPS:
		return "DPS"
	case Healer:
		return "HEALER"
	default:
		return strings.ToUpper(string(c))
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Tank, DPS, Healer:
		return true
	}
	return false
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Entry is a single hero.
type Entry struct {
	Name     string
	Category Category
}

// Roster is an immutable category to names mapping with a reverse index.
type Roster struct {
	groups map[Category][]string
	index  map[string]Category
	all    []Entry
}

// New builds a roster from category groups. Names are trimmed; empty names
// are skipped. A name present in two places is an error.
func New(groups map[Category][]string) (*Roster, error) {
	r := &Roster{
		groups: make(map[Category][]string, len(Categories)),
		index:  map[string]Category{},
	}
	for c := range groups {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
		}
	}
	for _, c := range Categories {
		names := make([]string, 0, len(groups[c]))
		for _, raw := range groups[c] {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			if prev, ok := r.index[name]; ok {
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateName, name, prev, c)
			}
			r.index[name] = c
			names = append(names, name)
			r.all = append(r.all, Entry{Name: name, Category: c})
		}
		r.groups[c] = names
	}
	return r, nil
}

// All returns every entry in category order, then roster order.
func (r *Roster) All() []Entry {
	out := make([]Entry, len(r.all))
	copy(out, r.all)
	return out
}

// InCategory returns the entries of one category in roster order.
func (r *Roster) InCategory(c Category) []Entry {
	names := r.groups[c]
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, Entry{Name: name, Category: c})
	}
	return out
}

// CategoryOf looks up the category of a name.
func (r *Roster) CategoryOf(name string) (Category, bool) {
	c, ok := r.index[name]
	return c, ok
}

// Lookup returns the entry for name.
func (r *Roster) Lookup(name string) (Entry, bool) {
	c, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return Entry{Name: name, Category: c}, true
}

// Count returns the number of entries in a category.
func (r *Roster) Count(c Category) int {
	return len(r.groups[c])
}

// Counts returns per-category entry counts.
func (r *Roster) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = len(r.groups[c])
	}
	return out
}

// Total returns the number of entries across all categories.
func (r *Roster) Total() int {
	return len(r.all)
}
