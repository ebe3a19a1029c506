// Package suspense drives the timed preview-pause-reveal animation of a draw.
package suspense

import (
	"time"

	"github.com/verte-zerg/heropick/internal/model"
)

// Timing configures one animation run.
type Timing struct {
	PreviewSteps   int
	BaseDelay      time.Duration
	StepIncrement  time.Duration
	PauseDelay     time.Duration
	FinalDelay     time.Duration
	RevealDuration time.Duration
}

var timings = map[model.Speed]Timing{
	model.SpeedFast: {
		PreviewSteps:   6,
		BaseDelay:      40 * time.Millisecond,
		StepIncrement:  25 * time.Millisecond,
		PauseDelay:     200 * time.Millisecond,
		FinalDelay:     150 * time.Millisecond,
		RevealDuration: 300 * time.Millisecond,
	},
	model.SpeedNormal: {
		PreviewSteps:   10,
		BaseDelay:      60 * time.Millisecond,
		StepIncrement:  40 * time.Millisecond,
		PauseDelay:     400 * time.Millisecond,
		FinalDelay:     300 * time.Millisecond,
		RevealDuration: 600 * time.Millisecond,
	},
	model.SpeedSlow: {
		PreviewSteps:   15,
		BaseDelay:      80 * time.Millisecond,
		StepIncrement:  60 * time.Millisecond,
		PauseDelay:     800 * time.Millisecond,
		FinalDelay:     600 * time.Millisecond,
		RevealDuration: 1200 * time.Millisecond,
	},
}

// TimingFor returns the timing profile of a speed. Unknown speeds use normal.
func TimingFor(speed model.Speed) Timing {
	if t, ok := timings[speed]; ok {
		return t
	}
	return timings[model.SpeedNormal]
}

// PreviewDelay is the wait after the step-th preview (1-based).
func (t Timing) PreviewDelay(step int) time.Duration {
	return t.BaseDelay + time.Duration(step)*t.StepIncrement
}

// Total is the duration of a full run from trigger to idle.
func (t Timing) Total() time.Duration {
	var total time.Duration
	for step := 1; step <= t.PreviewSteps; step++ {
		total += t.PreviewDelay(step)
	}
	return total + t.PauseDelay + t.FinalDelay + t.RevealDuration
}
