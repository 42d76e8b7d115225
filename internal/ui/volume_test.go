package ui

import (
	"testing"
	"time"
)

func TestAxisDragMasksReported(t *testing.T) {
	a := newVolumeAxis()
	if got := a.rendered(42); got != 42 {
		t.Fatalf("rendered without drag = %d, want 42", got)
	}

	a.setPending(30)
	a.setPending(55)
	if got := a.rendered(42); got != 55 {
		t.Fatalf("rendered during drag = %d, want 55", got)
	}
	if got := a.rendered(37); got != 55 {
		t.Fatalf("daemon update leaked through drag: %d, want 55", got)
	}
}

func TestAxisCommitTakesAndClears(t *testing.T) {
	a := newVolumeAxis()
	a.setPending(80)

	v, ok := a.commit()
	if !ok || v != 80 {
		t.Fatalf("commit = (%d, %v), want (80, true)", v, ok)
	}
	if _, ok := a.commit(); ok {
		t.Fatalf("second commit reported a pending value")
	}
	if got := a.rendered(37); got != 37 {
		t.Fatalf("rendered after commit = %d, want 37", got)
	}
}

func TestAxisCommitWithoutDrag(t *testing.T) {
	a := newVolumeAxis()
	if _, ok := a.commit(); ok {
		t.Fatalf("commit without drag reported ok")
	}
}

func TestAxisConfigure(t *testing.T) {
	a := newVolumeAxis()

	a.configure(true)
	if a.ceiling != 150 {
		t.Fatalf("amplified ceiling = %d, want 150", a.ceiling)
	}
	if len(a.breakpoints) != 1 || a.breakpoints[0] != 100 {
		t.Fatalf("amplified breakpoints = %v, want [100]", a.breakpoints)
	}

	a.configure(false)
	if a.ceiling != 100 || a.breakpoints != nil {
		t.Fatalf("standard range = (%d, %v), want (100, nil)", a.ceiling, a.breakpoints)
	}
}

func TestDirectStepRateLimit(t *testing.T) {
	a := newVolumeAxis()
	t0 := time.Unix(1000, 0)

	v, ok := a.directStep(50, 1, t0)
	if !ok || v != 55 {
		t.Fatalf("first step = (%d, %v), want (55, true)", v, ok)
	}
	if _, ok := a.directStep(50, 1, t0.Add(10*time.Millisecond)); ok {
		t.Fatalf("step within interval was not dropped")
	}
	v, ok = a.directStep(50, 1, t0.Add(60*time.Millisecond))
	if !ok || v != 55 {
		t.Fatalf("step after interval = (%d, %v), want (55, true)", v, ok)
	}
}

func TestDirectStepZeroDeltaKeepsToken(t *testing.T) {
	a := newVolumeAxis()
	t0 := time.Unix(1000, 0)

	if _, ok := a.directStep(50, 0, t0); ok {
		t.Fatalf("zero delta produced a step")
	}
	// A dropped zero delta must not burn the rate token.
	if _, ok := a.directStep(50, 1, t0); !ok {
		t.Fatalf("step after zero delta was dropped")
	}
}

func TestDirectStepClamps(t *testing.T) {
	tests := []struct {
		reported int
		delta    float32
		want     int
	}{
		{98, 1, 100},
		{100, 1, 100},
		{3, -1, 0},
		{0, -1, 0},
		{50, -1, 45},
	}
	for _, tt := range tests {
		a := newVolumeAxis()
		v, ok := a.directStep(tt.reported, tt.delta, time.Unix(1000, 0))
		if !ok || v != tt.want {
			t.Fatalf("directStep(%d, %v) = (%d, %v), want (%d, true)",
				tt.reported, tt.delta, v, ok, tt.want)
		}
	}
}

func TestDirectStepCapsAtHundredWhenAmplified(t *testing.T) {
	a := newVolumeAxis()
	a.configure(true)

	v, ok := a.directStep(120, 1, time.Unix(1000, 0))
	if !ok || v != 100 {
		t.Fatalf("amplified step = (%d, %v), want (100, true)", v, ok)
	}
}

func TestDirectStepUsesPendingAsBase(t *testing.T) {
	a := newVolumeAxis()
	a.setPending(80)

	v, ok := a.directStep(30, 1, time.Unix(1000, 0))
	if !ok || v != 85 {
		t.Fatalf("step during drag = (%d, %v), want (85, true)", v, ok)
	}
}

func TestSliderValue(t *testing.T) {
	tests := []struct {
		frac    float32
		ceiling int
		want    int
	}{
		{0, 100, 0},
		{0.5, 100, 50},
		{1, 100, 100},
		{0.5, 150, 75},
		{1.2, 100, 100},
		{-0.1, 100, 0},
	}
	for _, tt := range tests {
		if got := sliderValue(tt.frac, tt.ceiling); got != tt.want {
			t.Fatalf("sliderValue(%v, %d) = %d, want %d", tt.frac, tt.ceiling, got, tt.want)
		}
	}
}

func TestTimelineProgress(t *testing.T) {
	var tl timeline
	t0 := time.Unix(1000, 0)

	if got := tl.progress(t0, revealDuration); got != 1 {
		t.Fatalf("inactive progress = %v, want 1", got)
	}

	tl.restart(t0)
	if got := tl.progress(t0.Add(75*time.Millisecond), 150*time.Millisecond); got != 0.5 {
		t.Fatalf("mid progress = %v, want 0.5", got)
	}
	if !tl.animating() {
		t.Fatalf("timeline inactive mid-run")
	}
	if got := tl.progress(t0.Add(150*time.Millisecond), 150*time.Millisecond); got != 1 {
		t.Fatalf("final progress = %v, want 1", got)
	}
	if tl.animating() {
		t.Fatalf("timeline still active after completion")
	}
}
