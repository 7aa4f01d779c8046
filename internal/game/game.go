// Package game is the ebiten front end: it turns window, pointer, focus and
// keyboard events into engine calls and shows the canvas.
package game

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/engine"
	"github.com/iburimskiy/dotfield/internal/imageio"
	"github.com/iburimskiy/dotfield/internal/surface"
)

type Game struct {
	cfg    config.Config
	log    *slog.Logger
	inst   *engine.Instance
	loader *imageio.Loader
	now    func() time.Time

	dot, background color.RGBA
	canvas          *ebiten.Image
	surf            *surface.Ebiten

	outW, outH int
	offsetY    int

	touches  []ebiten.TouchID
	touchID  ebiten.TouchID
	touching bool
	mouse    bool

	focused bool
	lastErr error
}

// New wires an instance to the window. loader may already be busy with the
// image given on the command line.
func New(cfg config.Config, log *slog.Logger, inst *engine.Instance, loader *imageio.Loader) (*Game, error) {
	dot, err := config.ParseColor(cfg.DotColor)
	if err != nil {
		return nil, err
	}
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Game{
		cfg:        cfg,
		log:        log,
		inst:       inst,
		loader:     loader,
		now:        time.Now,
		dot:        dot,
		background: bg,
	}, nil
}

func (g *Game) Update() error {
	now := g.now()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.cfg.Mode.Has(config.ModeHalftone) && inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if !g.loader.StartFunc(imageio.Select) {
			g.log.Debug("image load already in progress")
		}
	}
	g.collectImage()

	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		g.inst.SetVisible(focused, now)
	}

	g.inst.Poll(now)
	g.handleMouse(now)
	g.handleTouch(now)

	g.ensureCanvas()
	if g.surf != nil {
		g.inst.Frame(now, g.surf)
	}
	return nil
}

func (g *Game) collectImage() {
	res, ok := g.loader.Take()
	if !ok {
		return
	}
	if res.Err != nil {
		if errors.Is(res.Err, imageio.ErrNoImage) {
			return
		}
		g.lastErr = res.Err
		g.log.Warn("image not loaded", "err", res.Err)
		return
	}
	g.lastErr = nil
	b := res.Image.Bounds()
	g.log.Info("image loaded", "path", res.Path, "width", b.Dx(), "height", b.Dy())
	g.inst.SetImage(res.Image)
}

// cursor maps a window position onto the canvas.
func (g *Game) cursor(x, y int) (float64, float64) {
	return float64(x), float64(y - g.offsetY)
}

func (g *Game) handleMouse(now time.Time) {
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouse = true
		x, y := g.cursor(ebiten.CursorPosition())
		g.inst.PointerDown(x, y, now)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.mouse = false
		g.inst.PointerUp()
	case g.mouse:
		x, y := g.cursor(ebiten.CursorPosition())
		g.inst.PointerMove(x, y, now)
	}
}

func (g *Game) handleTouch(now time.Time) {
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			g.inst.PointerUp()
			return
		}
		x, y := g.cursor(ebiten.TouchPosition(g.touchID))
		g.inst.PointerMove(x, y, now)
		return
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	if len(g.touches) == 0 {
		return
	}
	g.touchID = g.touches[0]
	g.touching = true
	x, y := g.cursor(ebiten.TouchPosition(g.touchID))
	g.inst.PointerDown(x, y, now)
}

// ensureCanvas keeps the offscreen canvas the size of the instance grid.
func (g *Game) ensureCanvas() {
	w, h := g.inst.Size()
	g.offsetY = 0
	if h < g.outH {
		g.offsetY = (g.outH - h) / 2
	}
	if g.canvas != nil {
		if b := g.canvas.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		g.canvas.Deallocate()
		g.canvas, g.surf = nil, nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	g.canvas = ebiten.NewImage(w, h)
	g.surf = &surface.Ebiten{Image: g.canvas, Dot: g.dot, Background: g.background}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	if g.canvas != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, float64(g.offsetY))
		screen.DrawImage(g.canvas, op)
	}

	if !g.cfg.Mode.Has(config.ModeHalftone) {
		return
	}
	status := ""
	switch {
	case g.loader.Busy():
		status = "Loading image..."
	case !g.inst.HasImage():
		status = "Press O to open an image"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		g.outW, g.outH = outsideWidth, outsideHeight
		g.inst.Resize(outsideWidth, outsideHeight, g.now())
	}
	return outsideWidth, outsideHeight
}
