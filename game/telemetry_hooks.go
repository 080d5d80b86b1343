package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/ember/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and reports it.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.sim.Store().Snapshot(nil))
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot() {
	if !g.snapshots.Enabled() {
		slog.Warn("snapshot requested but no snapshot directory is set")
		return
	}

	snapshot := telemetry.NewSnapshot(g.rngSeed, g.sim.Tick(), g.width, g.height, g.sim.Store().Snapshot(nil))

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshots.Dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.sim.Tick(), "particles", len(snapshot.Particles))
}

// loadSnapshot restores particles and tick from a snapshot file.
func (g *Game) loadSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	particles, err := snapshot.Restore()
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	g.sim.Restore(snapshot.Tick, particles)
	g.collector.Rebase(snapshot.Tick)

	slog.Info("snapshot loaded",
		"path", path,
		"tick", snapshot.Tick,
		"particles", len(particles),
		"seed", snapshot.RNGSeed,
	)
	return nil
}
