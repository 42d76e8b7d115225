package ui

import "time"

// revealDuration is how long the popup takes to fade in.
const revealDuration = 150 * time.Millisecond

// timeline is a minimal per-session animation clock. It is restarted when
// the popup opens and read against frame timestamps.
type timeline struct {
	start  time.Time
	active bool
}

// restart begins a new animation run at now.
func (t *timeline) restart(now time.Time) {
	t.start = now
	t.active = true
}

// reset clears the timeline entirely.
func (t *timeline) reset() {
	*t = timeline{}
}

// progress returns the animation fraction in [0, 1] at now. Once the run
// completes the timeline goes inactive and progress stays at 1.
func (t *timeline) progress(now time.Time, d time.Duration) float32 {
	if !t.active {
		return 1
	}
	if d <= 0 {
		t.active = false
		return 1
	}
	elapsed := now.Sub(t.start)
	if elapsed >= d {
		t.active = false
		return 1
	}
	if elapsed < 0 {
		return 0
	}
	return float32(elapsed) / float32(d)
}

// animating reports whether another frame is needed.
func (t *timeline) animating() bool {
	return t.active
}
