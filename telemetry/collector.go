// Package telemetry provides windowed fire statistics, perf timing, CSV output, and snapshots.
package telemetry

import (
	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/systems"
)

// Collector accumulates frame reports within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	ringSpawned    int
	logsSpawned    int
	burstAsh       int
	deathAsh       int
	removed        int
	peakPopulation int

	// Reused between flushes
	fireLives []float64
	ashLives  []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFrame folds one step's report into the current window.
func (c *Collector) RecordFrame(r systems.FrameReport) {
	c.ringSpawned += r.RingSpawned
	c.logsSpawned += r.LogsSpawned
	c.burstAsh += r.BurstAsh
	c.deathAsh += r.DeathAsh
	c.removed += r.Removed
	if r.Population > c.peakPopulation {
		c.peakPopulation = r.Population
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// particles is the store contents at window end, used for counts and life
// distributions.
func (c *Collector) Flush(currentTick int32, particles []components.Particle) WindowStats {
	c.fireLives = c.fireLives[:0]
	c.ashLives = c.ashLives[:0]
	for i := range particles {
		p := &particles[i]
		if p.Kind == components.KindFire {
			c.fireLives = append(c.fireLives, float64(p.Life))
		} else {
			c.ashLives = append(c.ashLives, float64(p.Life))
		}
	}

	fire := ComputeLifeStats(c.fireLives)
	ash := ComputeLifeStats(c.ashLives)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		FireCount:      len(c.fireLives),
		AshCount:       len(c.ashLives),
		PeakPopulation: c.peakPopulation,

		RingSpawned: c.ringSpawned,
		LogsSpawned: c.logsSpawned,
		BurstAsh:    c.burstAsh,
		DeathAsh:    c.deathAsh,
		Removed:     c.removed,

		FireLifeMean: fire.Mean,
		FireLifeStd:  fire.Std,
		FireLifeP10:  fire.P10,
		FireLifeP50:  fire.P50,
		FireLifeP90:  fire.P90,

		AshLifeMean: ash.Mean,
		AshLifeStd:  ash.Std,
		AshLifeP10:  ash.P10,
		AshLifeP50:  ash.P50,
		AshLifeP90:  ash.P90,
	}

	c.Reset(currentTick)
	return stats
}

// Reset discards the current window's counters and starts a new window at
// tick. Used after the simulation is cleared.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.ringSpawned = 0
	c.logsSpawned = 0
	c.burstAsh = 0
	c.deathAsh = 0
	c.removed = 0
	c.peakPopulation = 0
}

// Rebase moves the window start to tick and keeps the counters, used after
// a snapshot load.
func (c *Collector) Rebase(tick int32) {
	c.windowStartTick = tick
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
