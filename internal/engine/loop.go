package engine

import "time"

// State of the render loop.
type State uint8

const (
	// Idle has no frame callback scheduled.
	Idle State = iota
	// Running has a frame callback scheduled.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Loop is the frame-rate cap and Idle/Running bookkeeping of one canvas.
type Loop struct {
	interval time.Duration
	state    State
	last     time.Time
	ran      bool
}

func NewLoop(interval time.Duration) *Loop {
	return &Loop{interval: interval}
}

func (l *Loop) State() State { return l.state }

// Wake moves Idle to Running. It reports whether the state changed.
func (l *Loop) Wake() bool {
	if l.state == Running {
		return false
	}
	l.state = Running
	return true
}

// Sleep moves Running to Idle. It reports whether the state changed.
func (l *Loop) Sleep() bool {
	if l.state == Idle {
		return false
	}
	l.state = Idle
	return true
}

// Due reports whether a frame should execute at now and, if so, records it
// as the last executed frame. The first frame is always due.
func (l *Loop) Due(now time.Time) bool {
	if l.ran && now.Sub(l.last) < l.interval {
		return false
	}
	l.last = now
	l.ran = true
	return true
}
