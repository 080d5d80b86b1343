package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminalMode := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	loadSnapshot := flag.String("load-snapshot", "", "Snapshot file to restore before running")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation steps per update call")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		SnapshotOnExit: *headless && !*terminalMode,
		OutputDir:      *outputDir,
		LoadSnapshot:   *loadSnapshot,
		Headless:       *headless || *terminalMode,
		StepsPerUpdate: *stepsPerUpdate,
	}

	switch {
	case *terminalMode:
		os.Exit(runTerminal(opts, *maxTicks, handlerOpts))
	case *headless:
		os.Exit(runHeadless(opts, *maxTicks))
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	if !rl.IsWindowReady() {
		slog.Error("failed to open window")
		os.Exit(1)
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting simulation", "seed", rngSeed, "backend", cfg.Store.Backend)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless steps the simulation without graphics until maxTicks or SIGINT.
func runHeadless(opts game.Options, maxTicks int) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		if ctx.Err() != nil {
			slog.Info("interrupted", "tick", g.Tick())
			return 0
		}

		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return 0
		}
	}
}

// runTerminal renders the simulation in the terminal until the user quits.
// Log output is held back while the screen is active and written afterwards.
func runTerminal(opts game.Options, maxTicks int, handlerOpts *slog.HandlerOptions) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create terminal screen", "error", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to initialize terminal", "error", err)
		return 1
	}

	var held bytes.Buffer
	stdout := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&held, handlerOpts)))
	defer func() {
		slog.SetDefault(stdout)
		os.Stdout.Write(held.Bytes())
	}()

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		screen.Fini()
		slog.Error("failed to start", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := g.RunTerminal(ctx, screen, maxTicks)

	// Restore the terminal before any further log output
	screen.Fini()
	g.Unload()

	if runErr != nil {
		slog.Error("terminal run failed", "error", runErr)
		return 1
	}
	return 0
}
