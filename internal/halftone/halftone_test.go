package halftone

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

func uniform(c color.Color, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want float64
	}{
		{"black", color.Black, 0},
		{"white", color.White, 1},
		{"red", color.RGBA{R: 255, A: 255}, 0.299},
		{"green", color.RGBA{G: 255, A: 255}, 0.587},
		{"blue", color.RGBA{B: 255, A: 255}, 0.114},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(uniform(tt.c, 10, 10), 20, 20)
			if got := b.Brightness(7.9, 12.2); math.Abs(got-tt.want) > 1.0/255 {
				t.Errorf("Brightness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrightnessFloorsCoordinates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.Black)
	img.Set(1, 0, color.White)
	b := &Buffer{pix: img}
	if got := b.Brightness(0.99, 0.5); got != 0 {
		t.Errorf("Brightness(0.99) = %v, want 0", got)
	}
	if got := b.Brightness(1.0, 0); got != 1 {
		t.Errorf("Brightness(1.0) = %v, want 1", got)
	}
}

func TestNilBufferIsBright(t *testing.T) {
	var b *Buffer
	if got := b.Brightness(3, 3); got != 1 {
		t.Errorf("nil Brightness = %v, want 1", got)
	}
	if NewBuffer(nil, 10, 10) != nil {
		t.Error("NewBuffer(nil) != nil")
	}
	if NewBuffer(uniform(color.Black, 4, 4), 0, 10) != nil {
		t.Error("NewBuffer on empty canvas != nil")
	}
}

func TestOffBufferIsBright(t *testing.T) {
	b := NewBuffer(uniform(color.Black, 4, 4), 8, 8)
	for _, p := range [][2]float64{{-1, 0}, {8, 0}, {0, 8.5}} {
		if got := b.Brightness(p[0], p[1]); got != 1 {
			t.Errorf("Brightness(%v) = %v, want 1", p, got)
		}
	}
}

func TestSamplerRadius(t *testing.T) {
	s := Sampler{BaseRadius: 2.5}
	black := NewBuffer(uniform(color.Black, 4, 4), 16, 16)
	white := NewBuffer(uniform(color.White, 4, 4), 16, 16)

	if got := s.Radius(black, 5, 5, 1); got != math.Round(2.5*2) {
		t.Errorf("black radius = %v, want 5", got)
	}
	if got := s.Radius(white, 5, 5, 1); got != 0 {
		t.Errorf("white radius = %v, want 0", got)
	}
	if got := s.Radius(nil, 5, 5, 1); got != 0 {
		t.Errorf("no buffer radius = %v, want 0", got)
	}
	// progress 0 is the uniform grid whatever the image says
	if got := s.Radius(white, 5, 5, 0); got != 5 {
		t.Errorf("white radius at progress 0 = %v, want 5", got)
	}
	if got := s.Scale(white, 5, 5, 0.5); math.Abs(got-0.5) > 0.01 {
		t.Errorf("white scale at progress 0.5 = %v, want 0.5", got)
	}
}

func TestSmoothedConverges(t *testing.T) {
	tr := NewSmoothed(0.1, 0.01)
	tr.SetTarget(1)
	if !tr.Step() {
		t.Fatal("first step reported settled")
	}
	if got := tr.Progress(); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("progress after one step = %v, want 0.1", got)
	}
	steps := 1
	for tr.Step() {
		steps++
		if steps > 1000 {
			t.Fatal("did not converge")
		}
	}
	steps++
	want := int(math.Ceil(math.Log(0.01) / math.Log(0.9)))
	if steps != want {
		t.Errorf("converged in %d steps, want %d", steps, want)
	}
	if tr.Progress() != 1 {
		t.Errorf("progress %v after settling, want exactly 1", tr.Progress())
	}
}

func TestSmoothedReverses(t *testing.T) {
	tr := NewSmoothed(0.1, 0.01)
	tr.SetTarget(1)
	for tr.Step() {
	}
	tr.SetTarget(0)
	if tr.Settled() {
		t.Fatal("settled right after target change")
	}
	for tr.Step() {
	}
	if tr.Progress() != 0 {
		t.Errorf("progress = %v after settling, want exactly 0", tr.Progress())
	}
}

func TestStepped(t *testing.T) {
	tr := NewStepped(4)
	tr.SetTarget(1)
	var got []float64
	for {
		moving := tr.Step()
		got = append(got, tr.Progress())
		if !moving {
			break
		}
	}
	want := []float64{0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("progress sequence %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d progress %v, want %v", i, got[i], want[i])
		}
	}
	if !tr.Settled() || tr.Step() {
		t.Error("stepped transition did not settle")
	}
}

func TestInstant(t *testing.T) {
	tr := NewInstant(0)
	tr.SetTarget(1)
	if tr.Progress() != 1 || !tr.Settled() || tr.Step() {
		t.Errorf("instant transition = %v settled=%v", tr.Progress(), tr.Settled())
	}
}

func TestVisibilityDelay(t *testing.T) {
	t0 := time.Unix(100, 0)
	v := Visibility{Delay: 300 * time.Millisecond}
	if v.Target(t0) != 0 {
		t.Fatal("hidden target != 0")
	}
	v.Set(true, t0)
	if v.Target(t0.Add(100*time.Millisecond)) != 0 || !v.Pending(t0.Add(100*time.Millisecond)) {
		t.Error("entry not delayed")
	}
	if v.Target(t0.Add(300*time.Millisecond)) != 1 {
		t.Error("target not 1 after delay")
	}
	v.Set(false, t0.Add(time.Second))
	if v.Target(t0.Add(time.Second)) != 0 {
		t.Error("target not 0 after leaving")
	}
}
