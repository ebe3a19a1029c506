package suspense

import (
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
)

// Placeholder is the text shown between the last preview and the reveal.
const Placeholder = "..."

// Phase is the animator state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreviewing
	PhasePausing
	PhaseRevealing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreviewing:
		return "previewing"
	case PhasePausing:
		return "pausing"
	case PhaseRevealing:
		return "revealing"
	default:
		return "unknown"
	}
}

// Frame is handed to the renderer on every visible change.
type Frame struct {
	Phase       Phase
	Entry       roster.Entry
	Placeholder bool
	// Step is the 1-based preview number; zero outside previews.
	Step int
	// Final marks the committed pick, on reveal and on return to idle.
	Final bool
}

// Name returns the text to display for the frame.
func (f Frame) Name() string {
	if f.Placeholder {
		return Placeholder
	}
	return f.Entry.Name
}

// Renderer presents frames. It must not mutate picker state.
type Renderer interface {
	RenderFrame(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// RenderFrame implements Renderer.
func (f RendererFunc) RenderFrame(frame Frame) { f(frame) }

// CommitFunc receives the committing pick of a run.
type CommitFunc func(roster.Entry)

// Animator sequences a draw: Idle → Previewing → Pausing → Revealing → Idle.
// Preview picks are discarded; only the pick made in Revealing is committed.
// A run always completes; triggers while a run is active are ignored.
type Animator struct {
	sched    Scheduler
	selector *picker.Selector
	render   Renderer

	phase  Phase
	timing Timing
	pool   []roster.Entry
	step   int
	commit CommitFunc
	final  roster.Entry
}

// NewAnimator returns an idle animator.
func NewAnimator(sched Scheduler, selector *picker.Selector, render Renderer) *Animator {
	if render == nil {
		render = RendererFunc(func(Frame) {})
	}
	return &Animator{sched: sched, selector: selector, render: render}
}

// Phase returns the current state.
func (a *Animator) Phase() Phase {
	return a.phase
}

// Busy reports whether a run is in progress.
func (a *Animator) Busy() bool {
	return a.phase != PhaseIdle
}

// Start begins a run over pool. The first preview is rendered immediately.
// It returns false without side effects when a run is already active or the
// pool is empty.
func (a *Animator) Start(pool []roster.Entry, timing Timing, commit CommitFunc) bool {
	if a.phase != PhaseIdle || len(pool) == 0 {
		return false
	}
	a.pool = append([]roster.Entry(nil), pool...)
	a.timing = timing
	a.commit = commit
	a.step = 0
	a.final = roster.Entry{}
	a.phase = PhasePreviewing
	a.preview()
	return true
}

func (a *Animator) preview() {
	if a.step >= a.timing.PreviewSteps {
		a.phase = PhasePausing
		a.sched.Schedule(a.timing.PauseDelay, a.pause)
		return
	}
	a.step++
	a.render.RenderFrame(Frame{
		Phase: PhasePreviewing,
		Entry: a.selector.Pick(a.pool),
		Step:  a.step,
	})
	a.sched.Schedule(a.timing.PreviewDelay(a.step), a.preview)
}

func (a *Animator) pause() {
	a.render.RenderFrame(Frame{Phase: PhasePausing, Placeholder: true})
	a.phase = PhaseRevealing
	a.sched.Schedule(a.timing.FinalDelay, a.reveal)
}

func (a *Animator) reveal() {
	a.final = a.selector.Pick(a.pool)
	if a.commit != nil {
		a.commit(a.final)
	}
	a.render.RenderFrame(Frame{Phase: PhaseRevealing, Entry: a.final, Final: true})
	a.sched.Schedule(a.timing.RevealDuration, a.settle)
}

func (a *Animator) settle() {
	a.phase = PhaseIdle
	a.pool = nil
	a.commit = nil
	a.render.RenderFrame(Frame{Phase: PhaseIdle, Entry: a.final, Final: true})
}
