package config

import (
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

const (
	WindowWidth  = 1024
	WindowHeight = 576

	// Halftone canvases without a loaded image use a 16:9 box.
	FallbackAspect = 0.5625

	// Per-frame probability of an automatic ripple.
	AutoRippleChance = 0.1

	// Exponential smoothing rate of the halftone transition, and the
	// distance to the target at which it settles.
	SmoothingRate    = 0.1
	SmoothingEpsilon = 0.01
)

// Mode is a bit set of behaviours enabled on one canvas.
type Mode uint8

const (
	ModeTouch Mode = 1 << iota
	ModeAutomatic
	ModeLoop
	ModeHalftone
)

var modeNames = map[string]Mode{
	"touch":     ModeTouch,
	"automatic": ModeAutomatic,
	"loop":      ModeLoop,
	"halftone":  ModeHalftone,
}

// Has reports whether every bit of m2 is set in m.
func (m Mode) Has(m2 Mode) bool { return m&m2 == m2 }

func (m Mode) String() string {
	var parts []string
	for _, name := range []string{"touch", "automatic", "loop", "halftone"} {
		if m.Has(modeNames[name]) {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseMode parses a comma separated list such as "touch,loop".
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		bit, ok := modeNames[part]
		if !ok {
			return 0, errors.Errorf("unknown mode %q", part)
		}
		m |= bit
	}
	return m, nil
}

// Transition selects how the halftone fades in.
type Transition string

const (
	TransitionNone   Transition = "none"
	TransitionSteps  Transition = "steps"
	TransitionSmooth Transition = "smooth"
)

// Shape selects the ripple outline. ShapeCycle rotates through the other
// three in turn.
type Shape string

const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeCycle    Shape = "cycle"
)

// Dot selects the glyph painted at every grid point.
type Dot string

const (
	DotCircle Dot = "circle"
	DotSquare Dot = "square"
)

// Config is read once at setup and never mutated afterwards.
type Config struct {
	Spacing      float64
	BaseRadius   float64
	RippleWidth  float64
	RippleSpeed  float64
	DragCooldown time.Duration
	MaxRipples   int
	FadeFactor   float64
	FrameRate    float64

	Mode            Mode
	Shape           Shape
	Dot             Dot
	DotColor        string
	Background      string
	Image           string
	Transition      Transition
	TransitionSteps int
	EntryDelay      time.Duration
	ResizeDebounce  time.Duration
	Seed            int64
	Sound           bool

	Width, Height int
	Snapshot      string
	Frames        int
	LogLevel      string
}

// Default returns the stock parameter set.
func Default() Config {
	return Config{
		Spacing:      8,
		BaseRadius:   2.5,
		RippleWidth:  12,
		RippleSpeed:  10,
		DragCooldown: 150 * time.Millisecond,
		MaxRipples:   15,
		FadeFactor:   0.9,
		FrameRate:    12,

		Mode:            ModeTouch,
		Shape:           ShapeCircle,
		Dot:             DotCircle,
		DotColor:        "#1c1c1c",
		Background:      "#ffffff",
		Transition:      TransitionNone,
		TransitionSteps: 12,
		ResizeDebounce:  250 * time.Millisecond,

		Width:    WindowWidth,
		Height:   WindowHeight,
		Frames:   24,
		LogLevel: "info",
	}
}

// FrameInterval is the minimum time between two executed frames.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// Validate rejects parameter sets the renderer cannot honour.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"spacing", c.Spacing},
		{"base-radius", c.BaseRadius},
		{"ripple-width", c.RippleWidth},
		{"ripple-speed", c.RippleSpeed},
		{"drag-cooldown", float64(c.DragCooldown)},
		{"max-ripples", float64(c.MaxRipples)},
		{"frame-rate", c.FrameRate},
		{"width", float64(c.Width)},
		{"height", float64(c.Height)},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return errors.Errorf("%s must be positive, got %v", p.name, p.v)
		}
	}
	if !(c.FadeFactor > 0 && c.FadeFactor < 1) {
		return errors.Errorf("fade-factor must be in (0,1), got %v", c.FadeFactor)
	}
	switch c.Shape {
	case ShapeCircle, ShapeSquare, ShapeTriangle, ShapeCycle:
	default:
		return errors.Errorf("unknown shape %q", c.Shape)
	}
	switch c.Dot {
	case DotCircle, DotSquare:
	default:
		return errors.Errorf("unknown dot glyph %q", c.Dot)
	}
	switch c.Transition {
	case TransitionNone, TransitionSmooth:
	case TransitionSteps:
		if c.TransitionSteps <= 0 {
			return errors.Errorf("transition-steps must be positive, got %d", c.TransitionSteps)
		}
	default:
		return errors.Errorf("unknown transition %q", c.Transition)
	}
	if c.EntryDelay < 0 || c.ResizeDebounce < 0 {
		return errors.New("delays must not be negative")
	}
	if c.Snapshot != "" && c.Frames <= 0 {
		return errors.Errorf("frames must be positive, got %d", c.Frames)
	}
	if _, err := colorful.Hex(c.DotColor); err != nil {
		return errors.Wrapf(err, "dot-color %q", c.DotColor)
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return errors.Wrapf(err, "background %q", c.Background)
	}
	return nil
}
