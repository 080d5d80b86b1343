// Package game drives the fire simulation in a raylib window, headless, or
// in a terminal, and wires telemetry around each step.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/renderer"
	"github.com/pthm-cable/ember/systems"
	"github.com/pthm-cable/ember/telemetry"
	"github.com/pthm-cable/ember/ui"
)

// Slider limits for the controls panel.
const (
	maxStepsPerUpdate = 10
	maxLogCapSlider   = 2000
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	LoadSnapshot   string // Snapshot file restored before the first step
	SnapshotOnExit bool   // Write a final snapshot in Unload (headless runs only)
	Headless       bool   // Skip raylib resources (headless and terminal modes)
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	sim     *systems.Simulation
	rngSeed int64

	// Viewport passed to each step
	width, height float32

	paused         bool
	stepsPerUpdate int

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	snapshots     telemetry.SnapshotPolicy
	statsCallback func(telemetry.WindowStats)

	// Rendering (nil when headless)
	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	controls         *ui.ControlsPanel
	perfPanel        *ui.PerfPanel
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	store := systems.NewStore(cfg)
	sim := systems.NewSimulation(store, systems.NewRandSource(opts.Seed), systems.NewParams(cfg))

	g := &Game{
		cfg:            cfg,
		sim:            sim,
		rngSeed:        opts.Seed,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
		stepsPerUpdate: steps,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.FrameDT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		snapshots:      telemetry.SnapshotPolicy{Dir: opts.SnapshotDir, OnExit: opts.SnapshotOnExit},
	}
	sim.SetPhaseHook(g.perfCollector.StartPhase)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	if opts.LoadSnapshot != "" {
		if err := g.loadSnapshot(opts.LoadSnapshot); err != nil {
			om.Close()
			return nil, err
		}
	}

	if !opts.Headless {
		g.particleRenderer = renderer.NewParticleRenderer(cfg.Render.PointSize)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(10, 100, 200)
		g.perfPanel = ui.NewPerfPanel(10, 100, 200)
	}

	return g, nil
}

// SetStatsCallback installs a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update handles input and runs stepsPerUpdate steps against the current
// window size. Requires an open raylib window.
func (g *Game) Update() {
	g.handleInput()

	// The window may have been resized since the last frame
	g.width = float32(rl.GetScreenWidth())
	g.height = float32(rl.GetScreenHeight())

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs stepsPerUpdate steps against the configured screen size.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs a single simulation frame and its telemetry.
func (g *Game) step() {
	g.perfCollector.StartTick()

	report := g.sim.Step(g.width, g.height)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(report)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// reset clears every particle and restarts the tick counter.
func (g *Game) reset() {
	g.sim.Reset()
	g.collector.Reset(0)
	slog.Info("simulation reset")
}

// togglePause flips the paused state.
func (g *Game) togglePause() {
	g.paused = !g.paused
}

// adjustSteps changes steps per update by delta within [1, maxStepsPerUpdate].
func (g *Game) adjustSteps(delta int) {
	g.stepsPerUpdate = clampInt(g.stepsPerUpdate+delta, 1, maxStepsPerUpdate)
}

// Unload releases output files. When Options.SnapshotOnExit was set and a
// snapshot directory is configured, a final snapshot is written first.
func (g *Game) Unload() {
	if g.snapshots.SaveOnExit() {
		g.saveSnapshot()
	}
	g.logWorldState("shutdown")
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *systems.Simulation {
	return g.sim
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
