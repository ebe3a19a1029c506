package picker

import (
	"time"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/roster"
)

// Session is the mutable picker state owned by the application root.
type Session struct {
	Roster   *roster.Roster
	Filter   Filter
	Query    string
	Settings model.Settings
	Tracker  *Tracker
	History  *History
	Selector *Selector

	now func() time.Time
}

// NewSession returns a session over r with empty tracker and history.
func NewSession(r *roster.Roster, settings model.Settings, sel *Selector) *Session {
	if sel == nil {
		sel = NewSelector()
	}
	if !settings.Speed.Valid() {
		settings.Speed = model.SpeedNormal
	}
	tracker := NewTracker()
	return &Session{
		Roster:   r,
		Filter:   FilterAll,
		Settings: settings,
		Tracker:  tracker,
		History:  NewHistory(MaxHistory, tracker),
		Selector: sel,
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source used for history entries.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Visible returns the entries matching the current filter and query.
func (s *Session) Visible() []roster.Entry {
	return Candidates(s.Roster, s.Filter, s.Query)
}

// Pool builds the candidate pool for the next draw.
func (s *Session) Pool() ([]roster.Entry, error) {
	return BuildPool(s.Roster, s.Filter, s.Query, s.Settings.NoRepeat, s.Tracker)
}

// Commit records a final pick drawn under scope.
func (s *Session) Commit(scope Filter, e roster.Entry) model.HistoryEntry {
	if s.Settings.NoRepeat {
		s.Tracker.Mark(scope, e.Name)
	}
	return s.History.Record(e, s.now())
}

// Draw builds the pool, picks and commits in one step.
func (s *Session) Draw() (roster.Entry, error) {
	pool, err := s.Pool()
	if err != nil {
		return roster.Entry{}, err
	}
	e := s.Selector.Pick(pool)
	s.Commit(s.Filter, e)
	return e, nil
}

// ClearHistory empties the history together with every no-repeat scope.
func (s *Session) ClearHistory() {
	s.History.Clear()
}
