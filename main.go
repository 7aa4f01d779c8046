package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/engine"
	"github.com/iburimskiy/dotfield/internal/game"
	"github.com/iburimskiy/dotfield/internal/imageio"
	"github.com/iburimskiy/dotfield/internal/ripple"
	"github.com/iburimskiy/dotfield/internal/sound"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, log); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func run(cfg config.Config, log *slog.Logger) error {
	opts := []engine.Option{engine.WithLogger(log)}
	if cfg.Sound && cfg.Snapshot == "" {
		drops, err := sound.NewDrops(log)
		if err != nil {
			log.Warn("continuing without sound", "err", err)
		}
		opts = append(opts, engine.WithRippleHook(func(r ripple.Ripple) { drops.Play(r) }))
	}
	inst := engine.New(cfg, opts...)

	if cfg.Snapshot != "" {
		return snapshot(cfg, log, inst, time.Now())
	}

	loader := imageio.NewLoader()
	if cfg.Image != "" {
		loader.Start(cfg.Image)
	}
	g, err := game.New(cfg, log, inst, loader)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Dotfield - " + cfg.Mode.String() + " (Esc/Q: quit)")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	log.Info("starting", "mode", cfg.Mode.String(), "shape", cfg.Shape, "frame_rate", cfg.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run game")
	}
	return nil
}
