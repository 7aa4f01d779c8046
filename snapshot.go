package main

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/engine"
	"github.com/iburimskiy/dotfield/internal/imageio"
	"github.com/iburimskiy/dotfield/internal/surface"
)

// snapshot renders cfg.Frames frames without a window and writes the last
// one to cfg.Snapshot.
func snapshot(cfg config.Config, log *slog.Logger, inst *engine.Instance, start time.Time) (err error) {
	dot, err := config.ParseColor(cfg.DotColor)
	if err != nil {
		return err
	}
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return err
	}

	inst.Resize(cfg.Width, cfg.Height, start)
	if cfg.Mode.Has(config.ModeHalftone) {
		img, err := imageio.Load(cfg.Image)
		switch {
		case errors.Is(err, imageio.ErrNoImage):
		case err != nil:
			return err
		default:
			inst.SetImage(img)
		}
		inst.SetVisible(true, start)
	} else if len(inst.Ripples()) == 0 {
		w, h := inst.Size()
		inst.Add(float64(w)/2, float64(h)/2)
	}

	w, h := inst.Size()
	if w <= 0 || h <= 0 {
		return errors.Errorf("empty canvas %dx%d", w, h)
	}
	r := surface.NewRaster(w, h, dot, bg)
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n := inst.Run(r, start, cfg.Frames)
	if err = r.SavePNG(cfg.Snapshot); err != nil {
		return err
	}
	log.Info("snapshot written", "path", cfg.Snapshot, "frames", n, "width", w, "height", h)
	return nil
}
