package config

import (
	"flag"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Flags binds command-line flags to a Config seeded from Default.
type Flags struct {
	cfg        Config
	mode       string
	shape      string
	dot        string
	transition string
}

// RegisterFlags installs every parameter on fs. Call Config after fs.Parse.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{cfg: Default()}
	c := &f.cfg

	fs.Float64Var(&c.Spacing, "spacing", c.Spacing, "distance between dots in pixels")
	fs.Float64Var(&c.BaseRadius, "base-radius", c.BaseRadius, "radius of an undisturbed dot")
	fs.Float64Var(&c.RippleWidth, "ripple-width", c.RippleWidth, "width of a ripple front in pixels")
	fs.Float64Var(&c.RippleSpeed, "ripple-speed", c.RippleSpeed, "ripple growth per frame in pixels")
	fs.DurationVar(&c.DragCooldown, "drag-cooldown", c.DragCooldown, "minimum time between ripples while dragging")
	fs.IntVar(&c.MaxRipples, "max-ripples", c.MaxRipples, "live ripple capacity; the oldest is evicted when full")
	fs.Float64Var(&c.FadeFactor, "fade-factor", c.FadeFactor, "per-frame alpha multiplier (0-1)")
	fs.Float64Var(&c.FrameRate, "frame-rate", c.FrameRate, "executed frames per second")

	fs.StringVar(&f.mode, "mode", Default().Mode.String(), "comma separated: touch, automatic, loop, halftone")
	fs.StringVar(&f.shape, "shape", string(c.Shape), "ripple shape: circle, square, triangle or cycle")
	fs.StringVar(&f.dot, "dot", string(c.Dot), "dot glyph: circle or square")
	fs.StringVar(&c.DotColor, "dot-color", c.DotColor, "dot color as #rrggbb")
	fs.StringVar(&c.Background, "background", c.Background, "background color as #rrggbb")
	fs.StringVar(&c.Image, "image", c.Image, "halftone source image (png, jpeg, gif, webp, bmp)")
	fs.StringVar(&f.transition, "transition", string(c.Transition), "halftone fade-in: none, steps or smooth")
	fs.IntVar(&c.TransitionSteps, "transition-steps", c.TransitionSteps, "frame count of the stepped transition")
	fs.DurationVar(&c.EntryDelay, "entry-delay", c.EntryDelay, "delay before the halftone starts fading in")
	fs.DurationVar(&c.ResizeDebounce, "resize-debounce", c.ResizeDebounce, "quiet period before rebuilding the grid after a resize")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed for automatic ripples (0 = time based)")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play a short tone for every ripple")

	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "render headless and write a PNG to this path")
	fs.IntVar(&c.Frames, "frames", c.Frames, "executed frames before the snapshot is written")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	return f
}

// Config returns the parsed and validated configuration.
func (f *Flags) Config() (Config, error) {
	cfg := f.cfg
	mode, err := ParseMode(f.mode)
	if err != nil {
		return Config{}, err
	}
	cfg.Mode = mode
	cfg.Shape = Shape(strings.ToLower(f.shape))
	cfg.Dot = Dot(strings.ToLower(f.dot))
	cfg.Transition = Transition(f.transition)
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// ParseColor converts a #rrggbb string to an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "parse color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
