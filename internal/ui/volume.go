package ui

import (
	"time"

	"golang.org/x/time/rate"
)

const (
	// stepSize is the volume change of one wheel notch, in percent.
	stepSize = 5
	// stepInterval is the minimum spacing between wheel-driven commands.
	// Ticks arriving faster are dropped, not queued; a single physical
	// notch can produce several scroll events and each issued command
	// costs a subprocess.
	stepInterval = 50 * time.Millisecond
	// stepCeiling caps wheel-driven adjustment. Amplified ranges are only
	// reachable by dragging the slider.
	stepCeiling = 100

	standardCeiling  = 100
	amplifiedCeiling = 150
)

// volumeAxis owns the drag/commit/step state of one controllable axis
// (output or input volume). The value shown to the user is the pending
// drag value when present, otherwise the daemon-reported one; the daemon
// value is never overwritten locally.
type volumeAxis struct {
	// pending is the value the user is actively dragging to.
	pending *int
	// ceiling and breakpoints are recomputed at popup open from the
	// amplification capability flag.
	ceiling     int
	breakpoints []int
	// step gates the wheel-driven path only.
	step *rate.Limiter
}

func newVolumeAxis() volumeAxis {
	return volumeAxis{
		ceiling: standardCeiling,
		step:    rate.NewLimiter(rate.Every(stepInterval), 1),
	}
}

// configure derives the slider range from the amplification capability.
func (a *volumeAxis) configure(amplified bool) {
	if amplified {
		a.ceiling = amplifiedCeiling
		a.breakpoints = []int{standardCeiling}
	} else {
		a.ceiling = standardCeiling
		a.breakpoints = nil
	}
}

// rendered merges the pending drag value with the daemon-reported one at
// read time.
func (a *volumeAxis) rendered(reported int) int {
	if a.pending != nil {
		return *a.pending
	}
	return reported
}

// dragging reports whether a drag is in progress.
func (a *volumeAxis) dragging() bool {
	return a.pending != nil
}

// setPending records a live drag update.
func (a *volumeAxis) setPending(v int) {
	a.pending = &v
}

// commit takes and clears the pending value. ok is false when no drag was
// in progress, in which case no command must be issued.
func (a *volumeAxis) commit() (v int, ok bool) {
	if a.pending == nil {
		return 0, false
	}
	v = *a.pending
	a.pending = nil
	return v, true
}

// directStep computes the wheel-adjusted target value. The tick is dropped
// (ok false) when delta is zero or the minimum interval since the last
// issued step has not elapsed. The base is the rendered value at the
// moment the tick is evaluated.
func (a *volumeAxis) directStep(reported int, delta float32, now time.Time) (v int, ok bool) {
	if delta == 0 {
		return 0, false
	}
	if !a.step.AllowN(now, 1) {
		return 0, false
	}
	v = a.rendered(reported)
	if delta > 0 {
		v += stepSize
	} else {
		v -= stepSize
	}
	return clamp(v, 0, stepCeiling), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
