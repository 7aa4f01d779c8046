package halftone

import "math"

// Sampler turns buffer brightness into a dot radius.
type Sampler struct {
	BaseRadius float64
}

// Scale is the halftone multiplier at (x, y) blended by progress: 1 at
// progress 0, 1-brightness at progress 1.
func (s Sampler) Scale(b *Buffer, x, y, progress float64) float64 {
	target := 1 - b.Brightness(x, y)
	return 1 + (target-1)*clamp01(progress)
}

// Radius is round(baseRadius * scale * 2); darker pixels give larger dots.
func (s Sampler) Radius(b *Buffer, x, y, progress float64) float64 {
	return math.Round(s.BaseRadius * s.Scale(b, x, y, progress) * 2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
