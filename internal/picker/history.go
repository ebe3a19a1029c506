package picker

import (
	"time"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

const (
	// MaxHistory is the number of picks retained.
	MaxHistory = 20
	// VisibleHistory is the number of picks shown in the UI.
	VisibleHistory = 12
)

// History is the newest-first log of committed picks. Clearing it also
// clears the no-repeat tracker it was built with.
type History struct {
	entries []model.HistoryEntry
	limit   int
	tracker *Tracker
}

// NewHistory returns an empty history capped at limit entries. A limit <= 0
// means MaxHistory.
func NewHistory(limit int, tracker *Tracker) *History {
	if limit <= 0 {
		limit = MaxHistory
	}
	return &History{limit: limit, tracker: tracker}
}

// Record prepends a pick and drops the oldest entries beyond the limit.
func (h *History) Record(e roster.Entry, at time.Time) model.HistoryEntry {
	entry := model.HistoryEntry{Name: e.Name, Category: e.Category, Timestamp: at}
	h.entries = append([]model.HistoryEntry{entry}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return entry
}

// Entries returns a copy of the log, newest first.
func (h *History) Entries() []model.HistoryEntry {
	return h.Recent(len(h.entries))
}

// Recent returns at most n of the newest entries.
func (h *History) Recent(n int) []model.HistoryEntry {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]model.HistoryEntry, n)
	copy(out, h.entries[:n])
	return out
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Restore replaces the log with entries, newest first, truncated to the limit.
func (h *History) Restore(entries []model.HistoryEntry) {
	if len(entries) > h.limit {
		entries = entries[:h.limit]
	}
	h.entries = make([]model.HistoryEntry, len(entries))
	copy(h.entries, entries)
}

// Clear empties the log and every no-repeat scope.
func (h *History) Clear() {
	h.entries = nil
	if h.tracker != nil {
		h.tracker.ResetAll()
	}
}
