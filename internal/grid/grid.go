// Package grid builds the brick-offset dot lattice that every effect samples.
package grid

import "math"

// Point is one dot center in canvas pixels.
type Point struct {
	X, Y float64
}

// Build returns the lattice covering [0,width]x[0,height] in row-major order.
// Odd rows are shifted right by half the spacing. Spacing must be positive.
func Build(width, height int, spacing float64) []Point {
	cols := int(math.Ceil(float64(width) / spacing))
	rows := int(math.Ceil(float64(height) / spacing))
	return lattice(rows, cols, spacing, 0, 0)
}

// BuildCentered is Build with whole cells only, shifted so that the residual
// margin is split evenly on both sides of each axis.
func BuildCentered(width, height int, spacing float64) []Point {
	cols := int(math.Floor(float64(width) / spacing))
	rows := int(math.Floor(float64(height) / spacing))
	offX := (float64(width) - float64(cols)*spacing) / 2
	offY := (float64(height) - float64(rows)*spacing) / 2
	return lattice(rows, cols, spacing, offX, offY)
}

func lattice(rows, cols int, spacing, offX, offY float64) []Point {
	if rows < 0 || cols < 0 {
		return nil
	}
	pts := make([]Point, 0, (rows+1)*(cols+1))
	for y := 0; y <= rows; y++ {
		shift := 0.0
		if y%2 == 1 {
			shift = spacing / 2
		}
		for x := 0; x <= cols; x++ {
			pts = append(pts, Point{
				X: offX + float64(x)*spacing + shift,
				Y: offY + float64(y)*spacing,
			})
		}
	}
	return pts
}
