// Package engine ties the picker session, the suspense animator and
// persistence together behind the operations the user interfaces call.
package engine

import (
	"context"

	"pkt.systems/pslog"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
	"github.com/verte-zerg/heropick/internal/state"
	"github.com/verte-zerg/heropick/internal/suspense"
)

// PickLog stores every committed pick for all-time statistics.
type PickLog interface {
	InsertPick(ctx context.Context, pick model.PickRecord) (int64, error)
}

// Engine owns one picker session. All methods must be called from a single
// goroutine, the same one that runs the scheduler's tasks.
type Engine struct {
	session  *picker.Session
	animator *suspense.Animator
	persist  *state.Persister
	picks    PickLog
}

// New returns an engine over session. persist and picks may be nil.
func New(session *picker.Session, sched suspense.Scheduler, render suspense.Renderer, persist *state.Persister, picks PickLog) *Engine {
	if persist == nil {
		persist = state.NewPersister(nil)
	}
	return &Engine{
		session:  session,
		animator: suspense.NewAnimator(sched, session.Selector, render),
		persist:  persist,
		picks:    picks,
	}
}

// Restore loads persisted settings, history and used pools into the session.
func (e *Engine) Restore(ctx context.Context) {
	e.persist.Load(ctx).Apply(e.session)
}

// Session exposes the underlying session for rendering.
func (e *Engine) Session() *picker.Session {
	return e.session
}

// Settings returns the current settings.
func (e *Engine) Settings() model.Settings {
	return e.session.Settings
}

// Busy reports whether an animation is running.
func (e *Engine) Busy() bool {
	return e.animator.Busy()
}

// Phase returns the animator phase.
func (e *Engine) Phase() suspense.Phase {
	return e.animator.Phase()
}

// Trigger starts an animated draw over the current filter and query.
// It returns picker.ErrEmptyPool when nothing is eligible and reports false
// when a run is already active.
func (e *Engine) Trigger(ctx context.Context) (bool, error) {
	if e.animator.Busy() {
		return false, nil
	}
	pool, err := e.session.Pool()
	if err != nil {
		return false, err
	}
	scope := e.session.Filter
	speed := e.session.Settings.Speed
	started := e.animator.Start(pool, suspense.TimingFor(speed), func(entry roster.Entry) {
		e.commit(ctx, scope, entry)
	})
	if started {
		pslog.Ctx(ctx).Debug("draw started", "filter", string(scope), "pool", len(pool), "speed", string(speed))
	}
	return started, nil
}

// DrawNow picks and commits without animation.
func (e *Engine) DrawNow(ctx context.Context) (roster.Entry, error) {
	if e.animator.Busy() {
		return roster.Entry{}, ErrBusy
	}
	pool, err := e.session.Pool()
	if err != nil {
		return roster.Entry{}, err
	}
	entry := e.session.Selector.Pick(pool)
	e.commit(ctx, e.session.Filter, entry)
	return entry, nil
}

func (e *Engine) commit(ctx context.Context, scope picker.Filter, entry roster.Entry) {
	h := e.session.Commit(scope, entry)
	e.persist.SaveHistory(ctx, e.session.History.Entries())
	e.persist.SaveUsed(ctx, e.session.Tracker.Snapshot())

	log := pslog.Ctx(ctx)
	log.Info("hero picked", "name", h.Name, "category", string(h.Category), "filter", string(scope))
	if e.picks == nil {
		return
	}
	rec := model.PickRecord{
		Name:     h.Name,
		Category: h.Category,
		PickedAt: h.Timestamp,
		Filter:   string(scope),
		Speed:    e.session.Settings.Speed,
		NoRepeat: e.session.Settings.NoRepeat,
	}
	if _, err := e.picks.InsertPick(ctx, rec); err != nil {
		log.Warn("pick log write failed", "name", h.Name, "err", err)
	}
}

// SetFilter changes the category filter. Ignored while animating.
func (e *Engine) SetFilter(f picker.Filter) bool {
	if e.animator.Busy() || e.session.Filter == f {
		return false
	}
	e.session.Filter = f
	return true
}

// SetQuery changes the search query. The query only affects the next draw.
func (e *Engine) SetQuery(q string) {
	e.session.Query = q
}

// ToggleNoRepeat flips no-repeat mode and persists the settings. Ignored
// while animating so a run commits under the mode it was started with.
func (e *Engine) ToggleNoRepeat(ctx context.Context) bool {
	if e.animator.Busy() {
		return false
	}
	e.session.Settings.NoRepeat = !e.session.Settings.NoRepeat
	e.persist.SaveSettings(ctx, e.session.Settings)
	return true
}

// SetSpeed changes the animation speed and persists the settings. A running
// animation keeps its timing.
func (e *Engine) SetSpeed(ctx context.Context, speed model.Speed) {
	if !speed.Valid() || speed == e.session.Settings.Speed {
		return
	}
	e.session.Settings.Speed = speed
	e.persist.SaveSettings(ctx, e.session.Settings)
}

// CycleSpeed advances to the next speed.
func (e *Engine) CycleSpeed(ctx context.Context) model.Speed {
	e.SetSpeed(ctx, e.session.Settings.Speed.Next())
	return e.session.Settings.Speed
}

// ClearHistory empties the history and every no-repeat pool.
func (e *Engine) ClearHistory(ctx context.Context) {
	e.session.ClearHistory()
	e.persist.SaveHistory(ctx, nil)
	e.persist.SaveUsed(ctx, e.session.Tracker.Snapshot())
	pslog.Ctx(ctx).Info("history cleared")
}
