package engine

import "time"

// Debouncer is a single pending deadline. Scheduling again cancels the
// previous deadline and starts over.
type Debouncer struct {
	Delay time.Duration

	deadline time.Time
	pending  bool
}

func (d *Debouncer) Schedule(now time.Time) {
	d.deadline = now.Add(d.Delay)
	d.pending = true
}

func (d *Debouncer) Cancel() { d.pending = false }

func (d *Debouncer) Pending() bool { return d.pending }

// Fire reports true exactly once when the deadline has passed.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}

// Cooldown rate-limits drag ripples. Begin opens a drag, Allow admits at
// most one event per Interval while it is open, End closes it.
type Cooldown struct {
	Interval time.Duration

	last   time.Time
	active bool
}

func (c *Cooldown) Begin(now time.Time) {
	c.active = true
	c.last = now
}

func (c *Cooldown) Active() bool { return c.active }

func (c *Cooldown) Allow(now time.Time) bool {
	if !c.active || now.Sub(c.last) <= c.Interval {
		return false
	}
	c.last = now
	return true
}

func (c *Cooldown) End() { c.active = false }
