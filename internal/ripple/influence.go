package ripple

import "math"

// Field evaluates the additive falloff of a ripple set on a single dot.
type Field struct {
	// Width is the thickness of a ripple front in pixels.
	Width float64
	// BaseRadius is the radius of an undisturbed dot.
	BaseRadius float64
}

// Scale returns the total multiplier the ripples exert at (x, y); 1 means no
// disturbance. Overlapping fronts add up.
func (f Field) Scale(x, y float64, ripples []Ripple) float64 {
	scale := 1.0
	if f.Width <= 0 {
		return scale
	}
	for i := range ripples {
		r := &ripples[i]
		if r.Alpha < AlphaCutoff {
			continue
		}
		dx, dy := x-r.X, y-r.Y
		reach := r.Radius + f.Width
		if math.Abs(dx) > reach || math.Abs(dy) > reach {
			continue
		}
		d, ok := edgeDistance(r, dx, dy, f.Width)
		if !ok || d > f.Width {
			continue
		}
		falloff := 1 - d/f.Width
		scale += falloff * r.Alpha * 2
	}
	return scale
}

// Radius is the rounded dot radius at (x, y). Values <= 0 mean "don't draw".
func (f Field) Radius(x, y float64, ripples []Ripple) float64 {
	return math.Round(f.BaseRadius * f.Scale(x, y, ripples))
}

// edgeDistance is the distance from (dx, dy), relative to the ripple origin,
// to the ripple's outline. ok is false when the point cannot be affected.
func edgeDistance(r *Ripple, dx, dy, width float64) (float64, bool) {
	switch r.Shape {
	case Square:
		m := math.Max(math.Abs(dx), math.Abs(dy))
		if m > r.Radius+width {
			return 0, false
		}
		return math.Abs(m - r.Radius), true
	case Triangle:
		return triangleEdgeDistance(dx, dy, r.Radius)
	default:
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > r.Radius+width {
			return 0, false
		}
		return math.Abs(dist - r.Radius), true
	}
}

var sin60 = math.Sqrt(3) / 2

// triangleVertices returns an equilateral triangle around the origin with one
// vertex pointing up (negative y on screen) and circumradius r.
func triangleVertices(r float64) [3][2]float64 {
	return [3][2]float64{
		{0, -r},
		{r * sin60, r / 2},
		{-r * sin60, r / 2},
	}
}

// triangleEdgeDistance reports the distance to the nearest edge for points
// inside the triangle. Points outside, or any point of a degenerate triangle,
// are reported as not affected.
func triangleEdgeDistance(px, py, r float64) (float64, bool) {
	v := triangleVertices(r)
	if !insideTriangle(px, py, v) {
		return 0, false
	}
	d := math.Inf(1)
	for i := range v {
		a, b := v[i], v[(i+1)%3]
		d = math.Min(d, segmentDistance(px, py, a[0], a[1], b[0], b[1]))
	}
	return d, true
}

// insideTriangle is a barycentric test; the boundary counts as inside.
func insideTriangle(px, py float64, v [3][2]float64) bool {
	x1, y1 := v[0][0], v[0][1]
	x2, y2 := v[1][0], v[1][1]
	x3, y3 := v[2][0], v[2][1]
	den := (y2-y3)*(x1-x3) + (x3-x2)*(y1-y3)
	if den == 0 {
		return false
	}
	a := ((y2-y3)*(px-x3) + (x3-x2)*(py-y3)) / den
	b := ((y3-y1)*(px-x3) + (x1-x3)*(py-y3)) / den
	c := 1 - a - b
	return a >= 0 && b >= 0 && c >= 0
}

func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	abx, aby := bx-ax, by-ay
	lenSq := abx*abx + aby*aby
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*abx + (py-ay)*aby) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := ax+t*abx-px, ay+t*aby-py
	return math.Sqrt(cx*cx + cy*cy)
}
