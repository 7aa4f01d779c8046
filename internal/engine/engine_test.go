package engine

import (
	"image"
	"math/rand"
	"testing"
	"time"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/ripple"
)

type dot struct {
	x, y, r float64
	square  bool
}

type recorder struct {
	clears int
	dots   []dot
}

func (r *recorder) Clear() {
	r.clears++
	r.dots = r.dots[:0]
}

func (r *recorder) FillCircle(x, y, rad float64) { r.dots = append(r.dots, dot{x, y, rad, false}) }
func (r *recorder) FillSquare(x, y, rad float64) { r.dots = append(r.dots, dot{x, y, rad, true}) }

var t0 = time.Unix(1000, 0)

func testConfig(mode config.Mode) config.Config {
	c := config.Default()
	c.Mode = mode
	c.Seed = 1
	return c
}

func TestIdleUntilTriggered(t *testing.T) {
	in := New(testConfig(config.ModeTouch))
	if in.State() != Idle {
		t.Fatalf("new instance state = %v, want idle", in.State())
	}
	var s recorder
	if in.Frame(t0, &s) {
		t.Fatal("idle instance painted a frame")
	}
	in.Resize(16, 16, t0)
	if in.State() != Running {
		t.Fatalf("state after resize = %v, want running", in.State())
	}
	if !in.Frame(t0, &s) {
		t.Fatal("first frame after resize not painted")
	}
	if in.State() != Idle {
		t.Errorf("state with no ripples = %v, want idle", in.State())
	}
	// round(2.5) on every dot of a 3x3 lattice
	if len(s.dots) != 9 {
		t.Fatalf("painted %d dots, want 9", len(s.dots))
	}
	for _, d := range s.dots {
		if d.r != 3 || d.square {
			t.Errorf("dot %+v, want radius 3 circle", d)
		}
	}
}

func TestRippleRunsUntilFaded(t *testing.T) {
	in := New(testConfig(config.ModeTouch))
	in.Resize(64, 64, t0)
	var s recorder
	in.Frame(t0, &s)

	in.PointerDown(32, 32, t0)
	in.PointerUp()
	if in.State() != Running {
		t.Fatal("add did not wake the loop")
	}
	painted := in.Run(&s, t0.Add(time.Second), 1000)
	// drawn at alpha 1, 0.9, ... and removed after the 44th tick
	if painted != 44 {
		t.Errorf("painted %d frames, want 44", painted)
	}
	if in.State() != Idle || len(in.Ripples()) != 0 {
		t.Errorf("state %v with %d ripples after fade", in.State(), len(in.Ripples()))
	}
}

func TestFrameRateCap(t *testing.T) {
	in := New(testConfig(config.ModeLoop))
	in.Resize(32, 32, t0)
	var s recorder
	if !in.Frame(t0, &s) {
		t.Fatal("first frame not painted")
	}
	interval := in.cfg.FrameInterval()
	if in.Frame(t0.Add(interval/2), &s) {
		t.Error("frame painted before the interval elapsed")
	}
	if in.State() != Running {
		t.Error("loop mode went idle")
	}
	if !in.Frame(t0.Add(interval), &s) {
		t.Error("frame not painted after the interval")
	}
}

func TestDrawThenTick(t *testing.T) {
	in := New(testConfig(config.ModeTouch))
	in.Resize(64, 64, t0)
	var s recorder
	in.Frame(t0, &s)

	in.Add(32, 32)
	in.Frame(t0.Add(time.Second), &s)
	// the frame used radius 0: the dot on the origin got the full boost
	var center *dot
	for i := range s.dots {
		if s.dots[i].x == 32 && s.dots[i].y == 32 {
			center = &s.dots[i]
		}
	}
	if center == nil || center.r != 8 {
		t.Errorf("origin dot = %+v, want radius round(2.5*3) = 8", center)
	}
	r := in.Ripples()[0]
	if r.Radius != 10 || r.Alpha != 0.9 {
		t.Errorf("ripple after frame = %+v, want radius 10 alpha 0.9", r)
	}
}

func TestLoopModeReseeds(t *testing.T) {
	in := New(testConfig(config.ModeLoop))
	in.Resize(40, 20, t0)
	var s recorder
	in.Frame(t0, &s)
	rs := in.Ripples()
	if len(rs) != 1 || rs[0].X != 20 || rs[0].Y != 10 {
		t.Fatalf("ripples after first loop frame = %+v, want one at the center", rs)
	}
	in.Run(&s, t0.Add(time.Second), 200)
	if len(in.Ripples()) == 0 || in.State() != Running {
		t.Error("loop mode stopped reseeding")
	}
}

func TestAutomaticMode(t *testing.T) {
	cfg := testConfig(config.ModeAutomatic)
	in := New(cfg, WithRand(rand.New(rand.NewSource(7))))
	in.Resize(100, 100, t0)
	var s recorder
	var added int
	in.onRipple = func(ripple.Ripple) { added++ }
	in.Run(&s, t0, 500)
	if added == 0 {
		t.Fatal("automatic mode never added a ripple in 500 frames")
	}
	for _, r := range in.Ripples() {
		if r.X < 0 || r.X > 100 || r.Y < 0 || r.Y > 100 {
			t.Errorf("automatic ripple off canvas: %+v", r)
		}
	}
	if len(in.Ripples()) > cfg.MaxRipples {
		t.Errorf("%d ripples exceed capacity %d", len(in.Ripples()), cfg.MaxRipples)
	}
}

func TestDragCooldown(t *testing.T) {
	in := New(testConfig(config.ModeTouch))
	in.Resize(100, 100, t0)
	in.PointerMove(10, 10, t0)
	if len(in.Ripples()) != 0 {
		t.Fatal("move without a drag added a ripple")
	}
	in.PointerDown(10, 10, t0)
	in.PointerMove(20, 20, t0.Add(100*time.Millisecond))
	in.PointerMove(30, 30, t0.Add(151*time.Millisecond))
	in.PointerMove(40, 40, t0.Add(200*time.Millisecond))
	if got := len(in.Ripples()); got != 2 {
		t.Errorf("%d ripples, want 2 (down + one move past the cooldown)", got)
	}
	in.PointerUp()
	in.PointerMove(50, 50, t0.Add(time.Second))
	if got := len(in.Ripples()); got != 2 {
		t.Errorf("%d ripples after pointer up, want 2", got)
	}
}

func TestHeldDragKeepsRunning(t *testing.T) {
	in := New(testConfig(config.ModeTouch))
	in.Resize(64, 64, t0)
	var s recorder
	in.PointerDown(32, 32, t0)
	// the only ripple fades after 44 frames; the held drag keeps the loop up
	if painted := in.Run(&s, t0, 100); painted != 100 {
		t.Fatalf("painted %d frames while dragging, want 100", painted)
	}
	if in.State() != Running || len(in.Ripples()) != 0 {
		t.Fatalf("state %v with %d ripples during a held drag", in.State(), len(in.Ripples()))
	}
	in.PointerUp()
	in.Frame(t0.Add(time.Minute), &s)
	if in.State() != Idle {
		t.Errorf("state %v after pointer up, want idle", in.State())
	}
}

func TestPointerIgnoredWithoutTouchMode(t *testing.T) {
	in := New(testConfig(config.ModeLoop))
	in.Resize(100, 100, t0)
	in.PointerDown(10, 10, t0)
	if len(in.Ripples()) != 0 {
		t.Error("pointer down added a ripple outside touch mode")
	}
}

func TestResizeDebounced(t *testing.T) {
	in := New(testConfig(config.ModeTouch))
	in.Resize(16, 16, t0)
	in.Resize(32, 32, t0.Add(10*time.Millisecond))
	in.Resize(48, 48, t0.Add(100*time.Millisecond))
	if w, h := in.Size(); w != 16 || h != 16 {
		t.Fatalf("size changed before debounce: %dx%d", w, h)
	}
	if in.Poll(t0.Add(300 * time.Millisecond)) {
		t.Fatal("rebuild fired before the newest request's delay")
	}
	if !in.Poll(t0.Add(350 * time.Millisecond)) {
		t.Fatal("rebuild did not fire")
	}
	if w, h := in.Size(); w != 48 || h != 48 {
		t.Errorf("size = %dx%d, want 48x48", w, h)
	}
	if in.Poll(t0.Add(time.Second)) {
		t.Error("rebuild fired twice")
	}
}

func TestSquareDots(t *testing.T) {
	cfg := testConfig(config.ModeTouch)
	cfg.Dot = config.DotSquare
	in := New(cfg)
	in.Resize(8, 8, t0)
	var s recorder
	in.Frame(t0, &s)
	for _, d := range s.dots {
		if !d.square {
			t.Fatalf("dot %+v drawn as circle", d)
		}
	}
}

func TestZeroSizeCanvas(t *testing.T) {
	in := New(testConfig(config.ModeTouch | config.ModeAutomatic))
	in.Resize(0, 0, t0)
	var s recorder
	in.Run(&s, t0, 20)
	if s.clears == 0 {
		t.Error("no frame executed on a zero-size canvas")
	}
}

func gray(v uint8, w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestHalftone(t *testing.T) {
	in := New(testConfig(config.ModeHalftone))
	in.Resize(64, 100, t0)
	if w, h := in.Size(); w != 64 || h != 36 {
		t.Fatalf("fallback canvas = %dx%d, want 64x36", w, h)
	}
	var s recorder
	in.Frame(t0, &s)
	if len(s.dots) != 0 {
		t.Errorf("painted %d dots without an image, want 0", len(s.dots))
	}

	in.SetImage(gray(0, 32, 32))
	if w, h := in.Size(); w != 64 || h != 64 {
		t.Fatalf("canvas with square image = %dx%d, want 64x64", w, h)
	}
	if !in.Frame(t0.Add(time.Second), &s) {
		t.Fatal("image load did not trigger a frame")
	}
	// dots in the last row and column fall off the buffer and read as white
	if len(s.dots) != 64 {
		t.Fatalf("painted %d of %d dots, want 64", len(s.dots), len(in.Points()))
	}
	for _, d := range s.dots {
		if d.r != 5 {
			t.Fatalf("black image dot radius %v, want 5", d.r)
		}
	}
	if in.State() != Idle {
		t.Errorf("halftone without transition stayed %v", in.State())
	}
}

func TestHalftoneSmoothTransition(t *testing.T) {
	cfg := testConfig(config.ModeHalftone)
	cfg.Transition = config.TransitionSmooth
	in := New(cfg)
	in.Resize(32, 32, t0)
	in.SetImage(gray(255, 8, 8))

	var s recorder
	in.Frame(t0, &s)
	if in.Progress() != 0 || in.State() != Idle {
		t.Fatalf("hidden canvas progress %v state %v", in.Progress(), in.State())
	}
	// uniform mid-size dots before the canvas is visible
	for _, d := range s.dots {
		if d.r != 5 {
			t.Fatalf("dot radius %v before transition, want 5", d.r)
		}
	}

	in.SetVisible(true, t0)
	frames := in.Run(&s, t0.Add(time.Second), 1000)
	// 44 easing frames plus the one showing the settled value
	if frames != 45 {
		t.Errorf("transition painted %d frames, want 45", frames)
	}
	if p := in.Progress(); p != 1 {
		t.Errorf("progress %v, want 1", p)
	}
	if len(s.dots) != 0 {
		t.Errorf("white image left %d dots after the transition", len(s.dots))
	}
}

func TestHalftoneSettlesOnTarget(t *testing.T) {
	tests := []struct {
		name       string
		transition config.Transition
	}{
		{"smooth", config.TransitionSmooth},
		{"steps", config.TransitionSteps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(config.ModeHalftone)
			cfg.Transition = tt.transition
			in := New(cfg)
			in.Resize(32, 32, t0)
			// full halftone radius round(5*(1-231/255)) = 0, but 1 while
			// progress is still short of the target
			in.SetImage(gray(231, 8, 8))
			var s recorder
			in.Frame(t0, &s)

			in.SetVisible(true, t0)
			in.Run(&s, t0.Add(time.Second), 1000)
			if in.State() != Idle || in.Progress() != 1 {
				t.Fatalf("state %v progress %v, want idle at 1", in.State(), in.Progress())
			}
			if len(s.dots) != 0 {
				t.Errorf("idle canvas shows %d dots of radius %v, want none", len(s.dots), s.dots[0].r)
			}

			in.SetVisible(false, t0.Add(time.Hour))
			in.Run(&s, t0.Add(time.Hour), 1000)
			if in.State() != Idle || in.Progress() != 0 {
				t.Fatalf("state %v progress %v, want idle at 0", in.State(), in.Progress())
			}
			for _, d := range s.dots {
				if d.r != 5 {
					t.Fatalf("faded-out dot radius %v, want 5", d.r)
				}
			}
		})
	}
}

func TestHalftoneEntryDelay(t *testing.T) {
	cfg := testConfig(config.ModeHalftone)
	cfg.Transition = config.TransitionSteps
	cfg.TransitionSteps = 3
	cfg.EntryDelay = 250 * time.Millisecond
	in := New(cfg)
	in.Resize(32, 32, t0)
	in.SetImage(gray(0, 4, 4))
	var s recorder
	in.SetVisible(true, t0)

	in.Frame(t0, &s)
	if in.Progress() != 0 {
		t.Fatalf("progress %v during entry delay", in.Progress())
	}
	if in.State() != Running {
		t.Fatal("loop went idle while the entry delay was pending")
	}
	in.Run(&s, t0.Add(cfg.FrameInterval()), 100)
	if in.Progress() != 1 {
		t.Errorf("progress %v after delay, want 1", in.Progress())
	}
}

func TestIndependentInstances(t *testing.T) {
	a := New(testConfig(config.ModeTouch))
	b := New(testConfig(config.ModeTouch))
	a.Resize(10, 10, t0)
	b.Resize(10, 10, t0)
	a.Add(1, 1)
	if len(b.Ripples()) != 0 {
		t.Error("ripple leaked between instances")
	}
}

func TestRippleHook(t *testing.T) {
	var got []ripple.Shape
	cfg := testConfig(config.ModeTouch)
	cfg.Shape = config.ShapeCycle
	in := New(cfg, WithRippleHook(func(r ripple.Ripple) { got = append(got, r.Shape) }))
	in.Add(0, 0)
	in.Add(0, 0)
	if len(got) != 2 || got[0] != ripple.Triangle || got[1] != ripple.Circle {
		t.Errorf("hook saw %v, want [triangle circle]", got)
	}
}
