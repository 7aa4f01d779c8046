// Package halftone maps source-image brightness to dot sizes and animates
// the fade between a uniform grid and the full halftone.
package halftone

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Buffer is a read-only RGBA capture of a source image scaled to the canvas.
type Buffer struct {
	pix *image.RGBA
}

// NewBuffer renders src stretched onto a width x height canvas. A nil source
// or an empty canvas yields a nil buffer, which samples as fully bright.
func NewBuffer(src image.Image, width, height int) *Buffer {
	if src == nil || width <= 0 || height <= 0 || src.Bounds().Empty() {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &Buffer{pix: dst}
}

// Bounds is the canvas rectangle the buffer covers.
func (b *Buffer) Bounds() image.Rectangle {
	if b == nil {
		return image.Rectangle{}
	}
	return b.pix.Bounds()
}

// Brightness is the Rec. 601 luma in [0,1] of the pixel under (x, y),
// floored rather than interpolated. Points off the buffer, and any point of
// a nil buffer, read as 1.
func (b *Buffer) Brightness(x, y float64) float64 {
	if b == nil {
		return 1
	}
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	if !(image.Point{X: ix, Y: iy}.In(b.pix.Rect)) {
		return 1
	}
	i := b.pix.PixOffset(ix, iy)
	p := b.pix.Pix[i : i+3 : i+3]
	return (0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])) / 255
}
