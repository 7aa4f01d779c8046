package surface

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"
)

// Raster paints with the gg software renderer. It backs -snapshot and needs
// no display.
type Raster struct {
	dc  *gg.Context
	dot color.Color
	bg  gg.RGBA
	err error
}

func NewRaster(width, height int, dot, background color.Color) *Raster {
	return &Raster{
		dc:  gg.NewContext(width, height),
		dot: dot,
		bg:  gg.FromColor(background),
	}
}

func (r *Raster) Clear() {
	r.dc.ClearWithColor(r.bg)
}

func (r *Raster) FillCircle(x, y, radius float64) {
	r.dc.SetColor(r.dot)
	r.dc.DrawCircle(x, y, radius)
	r.fill()
}

func (r *Raster) FillSquare(x, y, radius float64) {
	r.dc.SetColor(r.dot)
	r.dc.DrawRectangle(x-radius, y-radius, 2*radius, 2*radius)
	r.fill()
}

// fill keeps the first rasterizer error; later draws still run.
func (r *Raster) fill() {
	if err := r.dc.Fill(); err != nil && r.err == nil {
		r.err = errors.Wrap(err, "fill")
	}
}

// Err returns the first drawing error, if any.
func (r *Raster) Err() error { return r.err }

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) SavePNG(path string) error {
	if r.err != nil {
		return r.err
	}
	return errors.Wrapf(r.dc.SavePNG(path), "save %s", path)
}

func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return errors.Wrap(r.dc.EncodePNG(w), "encode png")
}

func (r *Raster) Close() error { return errors.Wrap(r.dc.Close(), "close raster") }
