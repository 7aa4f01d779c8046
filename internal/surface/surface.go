// Package surface provides the drawing targets the render loop paints on:
// an ebiten image for the window and a gg raster for headless output.
package surface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Ebiten paints onto an *ebiten.Image, normally an offscreen canvas that the
// game blits to the screen every Draw.
type Ebiten struct {
	Image      *ebiten.Image
	Dot        color.Color
	Background color.Color
}

func (s *Ebiten) Clear() {
	s.Image.Fill(s.Background)
}

func (s *Ebiten) FillCircle(x, y, r float64) {
	vector.DrawFilledCircle(s.Image, float32(x), float32(y), float32(r), s.Dot, false)
}

// FillSquare fills the axis-aligned square of half-side r around (x, y).
func (s *Ebiten) FillSquare(x, y, r float64) {
	vector.DrawFilledRect(s.Image, float32(x-r), float32(y-r), float32(2*r), float32(2*r), s.Dot, false)
}
