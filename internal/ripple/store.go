// Package ripple holds the live ripple set and the falloff field it exerts on
// grid dots.
package ripple

// AlphaCutoff is the alpha below which a ripple is dead.
const AlphaCutoff = 0.01

// Ripple is a growing, fading front around (X, Y).
type Ripple struct {
	X, Y   float64
	Radius float64
	Alpha  float64
	Shape  Shape
}

// Params are the physics constants a Store applies on every tick.
type Params struct {
	Speed      float64
	FadeFactor float64
	MaxRipples int
}

// Store is a bounded FIFO of live ripples, oldest first.
type Store struct {
	params  Params
	ripples []Ripple

	cycle     bool
	fixed     Shape
	nextShape int
}

// NewStore returns an empty store. When cycle is set, Add without an explicit
// shape rotates through triangle, circle, square; otherwise it uses shape.
func NewStore(p Params, shape Shape, cycle bool) *Store {
	return &Store{
		params:  p,
		ripples: make([]Ripple, 0, p.MaxRipples),
		cycle:   cycle,
		fixed:   shape,
	}
}

// Add appends a fresh ripple using the store's shape policy.
func (s *Store) Add(x, y float64) Ripple {
	shape := s.fixed
	if s.cycle {
		shape = cycleOrder[s.nextShape]
		s.nextShape = (s.nextShape + 1) % len(cycleOrder)
	}
	return s.AddShape(x, y, shape)
}

// AddShape appends a fresh ripple with an explicit shape, evicting the oldest
// one when the store is full.
func (s *Store) AddShape(x, y float64, shape Shape) Ripple {
	if s.params.MaxRipples <= 0 {
		return Ripple{}
	}
	if len(s.ripples) >= s.params.MaxRipples {
		copy(s.ripples, s.ripples[1:])
		s.ripples = s.ripples[:len(s.ripples)-1]
	}
	r := Ripple{X: x, Y: y, Alpha: 1, Shape: shape}
	s.ripples = append(s.ripples, r)
	return r
}

// Tick advances every ripple by one frame and drops the faded ones. Call it
// once per rendered frame, after drawing.
func (s *Store) Tick() {
	live := s.ripples[:0]
	for _, r := range s.ripples {
		r.Radius += s.params.Speed
		r.Alpha *= s.params.FadeFactor
		if r.Alpha < AlphaCutoff {
			continue
		}
		live = append(live, r)
	}
	s.ripples = live
}

// Len is the number of live ripples.
func (s *Store) Len() int { return len(s.ripples) }

// Ripples returns the live set, oldest first. The slice is only valid until
// the next Add or Tick.
func (s *Store) Ripples() []Ripple { return s.ripples }

// Reset drops every ripple.
func (s *Store) Reset() { s.ripples = s.ripples[:0] }
