// Package engine is the per-canvas ripple and halftone renderer: it owns the
// dot grid, the live ripples and the brightness buffer, and executes frames
// on a Surface under an Idle/Running state machine.
package engine

import (
	"image"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/grid"
	"github.com/iburimskiy/dotfield/internal/halftone"
	"github.com/iburimskiy/dotfield/internal/ripple"
)

// Surface is the drawing target of one canvas.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64)
	FillSquare(x, y, r float64)
}

// Option customises a new Instance.
type Option func(*Instance)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(in *Instance) {
		if l != nil {
			in.log = l
		}
	}
}

// WithRand sets the source for automatic ripple placement.
func WithRand(r *rand.Rand) Option {
	return func(in *Instance) { in.rng = r }
}

// WithRippleHook registers fn to be called for every ripple added.
func WithRippleHook(fn func(ripple.Ripple)) Option {
	return func(in *Instance) { in.onRipple = fn }
}

// Instance is the full state of one canvas. Instances share nothing, so
// several canvases are simply several Instances.
type Instance struct {
	cfg config.Config
	log *slog.Logger
	rng *rand.Rand

	store   *ripple.Store
	field   ripple.Field
	sampler halftone.Sampler

	width, height int
	points        []grid.Point

	source     image.Image
	buffer     *halftone.Buffer
	transition halftone.Transition
	visibility halftone.Visibility

	loop     *Loop
	resize   Debouncer
	pendingW int
	pendingH int
	drag     Cooldown
	dirty    bool

	onRipple func(ripple.Ripple)
}

// New builds an instance from a validated configuration. The grid is empty
// until the first Resize.
func New(cfg config.Config, opts ...Option) *Instance {
	store := ripple.NewStore(ripple.Params{
		Speed:      cfg.RippleSpeed,
		FadeFactor: cfg.FadeFactor,
		MaxRipples: cfg.MaxRipples,
	}, rippleShape(cfg.Shape), cfg.Shape == config.ShapeCycle)

	in := &Instance{
		cfg:        cfg,
		log:        slog.New(slog.DiscardHandler),
		store:      store,
		field:      ripple.Field{Width: cfg.RippleWidth, BaseRadius: cfg.BaseRadius},
		sampler:    halftone.Sampler{BaseRadius: cfg.BaseRadius},
		loop:       NewLoop(cfg.FrameInterval()),
		resize:     Debouncer{Delay: cfg.ResizeDebounce},
		drag:       Cooldown{Interval: cfg.DragCooldown},
		visibility: halftone.Visibility{Delay: cfg.EntryDelay},
	}
	switch cfg.Transition {
	case config.TransitionSteps:
		in.transition = halftone.NewStepped(cfg.TransitionSteps)
	case config.TransitionSmooth:
		in.transition = halftone.NewSmoothed(config.SmoothingRate, config.SmoothingEpsilon)
	default:
		in.transition = halftone.NewInstant(1)
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		in.rng = rand.New(rand.NewSource(seed))
	}
	return in
}

func rippleShape(s config.Shape) ripple.Shape {
	switch s {
	case config.ShapeSquare:
		return ripple.Square
	case config.ShapeTriangle:
		return ripple.Triangle
	}
	return ripple.Circle
}

func (in *Instance) halftone() bool { return in.cfg.Mode.Has(config.ModeHalftone) }

// Size is the current canvas size.
func (in *Instance) Size() (int, int) { return in.width, in.height }

// Points is the current dot lattice.
func (in *Instance) Points() []grid.Point { return in.points }

// Ripples is the live ripple set, oldest first.
func (in *Instance) Ripples() []ripple.Ripple { return in.store.Ripples() }

// State is the render loop state.
func (in *Instance) State() State { return in.loop.State() }

// Progress is the current halftone blend factor.
func (in *Instance) Progress() float64 { return in.transition.Progress() }

// HasImage reports whether a source image has been captured.
func (in *Instance) HasImage() bool { return in.buffer != nil }

// CanvasSize maps the available window area to the canvas size. Halftone
// canvases follow the source image aspect ratio for the given width, or 16:9
// while no image is loaded.
func (in *Instance) CanvasSize(width, height int) (int, int) {
	if !in.halftone() || width <= 0 {
		return width, height
	}
	if in.source != nil {
		b := in.source.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			return width, int(math.Round(float64(width) * float64(b.Dy()) / float64(b.Dx())))
		}
	}
	return width, int(math.Round(float64(width) * config.FallbackAspect))
}

// Resize requests a new canvas size. The first size is applied at once;
// later sizes are applied only after the debounce delay has passed without a
// newer request.
func (in *Instance) Resize(width, height int, now time.Time) {
	if in.points == nil || in.cfg.ResizeDebounce <= 0 {
		in.resize.Cancel()
		in.applySize(width, height)
		return
	}
	if width == in.width && height == in.height && !in.resize.Pending() {
		return
	}
	in.pendingW, in.pendingH = width, height
	in.resize.Schedule(now)
}

// Poll applies a debounced resize whose delay has elapsed. It reports
// whether the grid was rebuilt.
func (in *Instance) Poll(now time.Time) bool {
	if !in.resize.Fire(now) {
		return false
	}
	in.applySize(in.pendingW, in.pendingH)
	return true
}

func (in *Instance) applySize(width, height int) {
	width, height = in.CanvasSize(width, height)
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	in.width, in.height = width, height
	if in.halftone() {
		in.points = grid.BuildCentered(width, height, in.cfg.Spacing)
	} else {
		in.points = grid.Build(width, height, in.cfg.Spacing)
	}
	in.buffer = halftone.NewBuffer(in.source, width, height)
	in.log.Debug("grid rebuilt", "width", width, "height", height, "dots", len(in.points))
	in.wake()
}

// SetImage installs the halftone source and captures it at canvas size. A
// nil image clears the buffer.
func (in *Instance) SetImage(img image.Image) {
	in.source = img
	if in.halftone() && in.points != nil {
		// the aspect ratio may have changed the canvas height
		in.applySize(in.width, in.height)
		return
	}
	in.buffer = halftone.NewBuffer(img, in.width, in.height)
	in.wake()
}

// SetVisible reports the canvas entering or leaving the viewport.
func (in *Instance) SetVisible(visible bool, now time.Time) {
	if in.cfg.Transition == config.TransitionNone {
		return
	}
	in.visibility.Set(visible, now)
	in.wake()
}

// Add starts a ripple at (x, y) using the configured shape policy.
func (in *Instance) Add(x, y float64) {
	r := in.store.Add(x, y)
	if in.onRipple != nil {
		in.onRipple(r)
	}
	in.wake()
}

// PointerDown starts a drag and drops a ripple under the pointer.
func (in *Instance) PointerDown(x, y float64, now time.Time) {
	if !in.cfg.Mode.Has(config.ModeTouch) {
		return
	}
	in.drag.Begin(now)
	in.Add(x, y)
}

// PointerMove drops a ripple while dragging, at most once per cooldown.
func (in *Instance) PointerMove(x, y float64, now time.Time) {
	if in.drag.Allow(now) {
		in.Add(x, y)
	}
}

func (in *Instance) PointerUp() { in.drag.End() }

func (in *Instance) wake() {
	in.dirty = true
	if in.loop.Wake() {
		in.log.Debug("render loop", "state", Running)
	}
}

// Frame is the per-frame callback. When the loop is running and a frame is
// due it repaints s and advances the ripples. It reports whether s was
// repainted. Afterwards the loop either stays Running or goes Idle.
func (in *Instance) Frame(now time.Time, s Surface) bool {
	if in.loop.State() != Running {
		return false
	}
	drawn := false
	if in.loop.Due(now) {
		in.step(now, s)
		drawn = true
	}
	if !in.continuing(now) && in.loop.Sleep() {
		in.log.Debug("render loop", "state", Idle)
	}
	return drawn
}

func (in *Instance) step(now time.Time, s Surface) {
	if in.halftone() && in.cfg.Transition != config.TransitionNone {
		in.transition.SetTarget(in.visibility.Target(now))
	}

	s.Clear()
	in.draw(s)
	in.dirty = false

	in.store.Tick()
	if in.halftone() {
		before := in.transition.Progress()
		in.transition.Step()
		// a settling step still has to reach the canvas
		if in.transition.Progress() != before {
			in.dirty = true
		}
	}
	if in.cfg.Mode.Has(config.ModeAutomatic) && in.rng.Float64() < config.AutoRippleChance {
		in.Add(in.rng.Float64()*float64(in.width), in.rng.Float64()*float64(in.height))
	}
	if in.cfg.Mode.Has(config.ModeLoop) && in.store.Len() == 0 {
		in.Add(float64(in.width)/2, float64(in.height)/2)
	}
}

func (in *Instance) draw(s Surface) {
	fill := s.FillCircle
	if in.cfg.Dot == config.DotSquare {
		fill = s.FillSquare
	}
	ripples := in.store.Ripples()
	progress := in.transition.Progress()
	for _, p := range in.points {
		var r float64
		if in.halftone() {
			r = in.sampler.Radius(in.buffer, p.X, p.Y, progress)
		} else {
			r = in.field.Radius(p.X, p.Y, ripples)
		}
		if r <= 0 {
			continue
		}
		fill(math.Round(p.X), math.Round(p.Y), r)
	}
}

func (in *Instance) continuing(now time.Time) bool {
	m := in.cfg.Mode
	switch {
	case in.dirty, in.store.Len() > 0:
		return true
	case m.Has(config.ModeAutomatic), m.Has(config.ModeLoop):
		return true
	case m.Has(config.ModeTouch) && in.drag.Active():
		return true
	case in.halftone() && (!in.transition.Settled() || in.visibility.Pending(now)):
		return true
	}
	return false
}

// Run drives the loop with a synthetic clock that advances one frame
// interval per callback, starting at start. It stops after n painted frames
// or when the loop goes idle, and returns the number of frames painted.
func (in *Instance) Run(s Surface, start time.Time, n int) int {
	painted := 0
	now := start
	for painted < n && in.loop.State() == Running {
		if in.Frame(now, s) {
			painted++
		}
		now = now.Add(in.cfg.FrameInterval())
	}
	return painted
}
