package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"minivox/internal/config"
	"minivox/internal/game"
	"minivox/internal/minimap"

	"github.com/xlab/closer"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seconds := flag.Float64("seconds", 30, "simulated seconds to run")
	realtime := flag.Bool("realtime", false, "pace steps at step_hz instead of free-running")
	mapPath := flag.String("map", "", "write a top-down PNG of the visited area on exit")
	seed := flag.Int64("seed", 0, "world seed, overrides the config value")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "minivox:", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = *seed
		}
	})

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "minivox:", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	eng := game.NewEngine(cfg, log)

	// The loop runs in its own goroutine so a signal can interrupt it.
	// The cleanup waits for the current step to finish before touching
	// the world, then snapshots it.
	stop := make(chan struct{})
	done := make(chan struct{})

	closer.Bind(func() {
		close(stop)
		<-done
		if *mapPath != "" {
			writeMap(log, eng, *mapPath)
		}
	})

	go func() {
		runLoop(log, eng, cfg, *seconds, *realtime, stop)
		close(done)
		closer.Close()
	}()
	closer.Hold()
}

// writeMap renders the resident chunks around the player into a PNG.
func writeMap(log *slog.Logger, eng *game.Engine, path string) {
	img := minimap.New(eng.Store(), eng.Registry()).Render(eng.Player().Position)
	if err := minimap.WritePNG(path, img); err != nil {
		log.Error("writing map", "path", path, "err", err)
		return
	}
	log.Info("map written", "path", path, "size", fmt.Sprintf("%dx%d", img.Rect.Dx(), img.Rect.Dy()))
}
