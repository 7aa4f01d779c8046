package halftone

import (
	"math"
	"time"
)

// Transition drives the halftone progress toward a visibility target.
type Transition interface {
	// Step advances one executed frame and reports whether progress is
	// still moving.
	Step() bool
	Progress() float64
	SetTarget(target float64)
	Settled() bool
}

// Instant jumps straight to its target.
type Instant struct {
	progress float64
}

func NewInstant(initial float64) *Instant { return &Instant{progress: clamp01(initial)} }

func (t *Instant) Step() bool               { return false }
func (t *Instant) Progress() float64        { return t.progress }
func (t *Instant) SetTarget(target float64) { t.progress = clamp01(target) }
func (t *Instant) Settled() bool            { return true }

// Stepped moves toward its target in equal increments over a fixed number of
// frames.
type Stepped struct {
	steps    int
	step     int
	target   int
	progress float64
}

func NewStepped(steps int) *Stepped {
	if steps < 1 {
		steps = 1
	}
	return &Stepped{steps: steps}
}

func (t *Stepped) Step() bool {
	switch {
	case t.step < t.target:
		t.step++
	case t.step > t.target:
		t.step--
	default:
		return false
	}
	t.progress = float64(t.step) / float64(t.steps)
	return t.step != t.target
}

func (t *Stepped) Progress() float64 { return t.progress }

func (t *Stepped) SetTarget(target float64) {
	t.target = int(math.Round(clamp01(target) * float64(t.steps)))
}

func (t *Stepped) Settled() bool { return t.step == t.target }

// Smoothed approaches its target exponentially and snaps once within
// Epsilon.
type Smoothed struct {
	Rate    float64
	Epsilon float64

	progress float64
	target   float64
}

func NewSmoothed(rate, epsilon float64) *Smoothed {
	return &Smoothed{Rate: rate, Epsilon: epsilon}
}

func (t *Smoothed) Step() bool {
	if t.Settled() {
		t.progress = t.target
		return false
	}
	t.progress += (t.target - t.progress) * t.Rate
	if t.Settled() {
		t.progress = t.target
		return false
	}
	return true
}

func (t *Smoothed) Progress() float64 { return t.progress }

func (t *Smoothed) SetTarget(target float64) { t.target = clamp01(target) }

func (t *Smoothed) Settled() bool { return math.Abs(t.target-t.progress) < t.Epsilon }

// Visibility converts viewport enter/leave events into a progress target,
// holding the entry back for Delay.
type Visibility struct {
	Delay time.Duration

	visible bool
	since   time.Time
}

// Set records a visibility change observed at now.
func (v *Visibility) Set(visible bool, now time.Time) {
	if visible == v.visible {
		return
	}
	v.visible = visible
	v.since = now
}

// Target is 1 once the canvas has been visible for Delay, 0 otherwise.
func (v *Visibility) Target(now time.Time) float64 {
	if !v.visible || now.Sub(v.since) < v.Delay {
		return 0
	}
	return 1
}

// Pending reports whether an entry is waiting out its delay.
func (v *Visibility) Pending(now time.Time) bool {
	return v.visible && now.Sub(v.since) < v.Delay
}
