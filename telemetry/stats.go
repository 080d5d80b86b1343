package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	FireCount      int `csv:"fire"`
	AshCount       int `csv:"ash"`
	PeakPopulation int `csv:"peak_population"`

	// Spawns and removals during window
	RingSpawned int `csv:"ring_spawned"`
	LogsSpawned int `csv:"logs_spawned"`
	BurstAsh    int `csv:"burst_ash"`
	DeathAsh    int `csv:"death_ash"`
	Removed     int `csv:"removed"`

	// Remaining life distribution (sampled at window end)
	FireLifeMean float64 `csv:"fire_life_mean"`
	FireLifeStd  float64 `csv:"fire_life_std"`
	FireLifeP10  float64 `csv:"fire_life_p10"`
	FireLifeP50  float64 `csv:"fire_life_p50"`
	FireLifeP90  float64 `csv:"fire_life_p90"`

	AshLifeMean float64 `csv:"ash_life_mean"`
	AshLifeStd  float64 `csv:"ash_life_std"`
	AshLifeP10  float64 `csv:"ash_life_p10"`
	AshLifeP50  float64 `csv:"ash_life_p50"`
	AshLifeP90  float64 `csv:"ash_life_p90"`
}

// LifeStats summarizes a set of remaining-life values.
type LifeStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeLifeStats calculates mean, sample standard deviation, and
// percentiles. Returns zeros for an empty slice. values is not modified.
func ComputeLifeStats(values []float64) LifeStats {
	n := len(values)
	if n == 0 {
		return LifeStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var ls LifeStats
	ls.Mean = stat.Mean(sorted, nil)
	if n > 1 {
		ls.Std = stat.StdDev(sorted, nil)
	}
	ls.P10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	ls.P50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	ls.P90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)
	return ls
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fire", s.FireCount),
		slog.Int("ash", s.AshCount),
		slog.Int("peak_population", s.PeakPopulation),
		slog.Int("ring_spawned", s.RingSpawned),
		slog.Int("logs_spawned", s.LogsSpawned),
		slog.Int("burst_ash", s.BurstAsh),
		slog.Int("death_ash", s.DeathAsh),
		slog.Int("removed", s.Removed),
		slog.Float64("fire_life_mean", s.FireLifeMean),
		slog.Float64("fire_life_std", s.FireLifeStd),
		slog.Float64("fire_life_p10", s.FireLifeP10),
		slog.Float64("fire_life_p50", s.FireLifeP50),
		slog.Float64("fire_life_p90", s.FireLifeP90),
		slog.Float64("ash_life_mean", s.AshLifeMean),
		slog.Float64("ash_life_std", s.AshLifeStd),
		slog.Float64("ash_life_p10", s.AshLifeP10),
		slog.Float64("ash_life_p50", s.AshLifeP50),
		slog.Float64("ash_life_p90", s.AshLifeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"fire", s.FireCount,
		"ash", s.AshCount,
		"peak_population", s.PeakPopulation,
		"ring_spawned", s.RingSpawned,
		"logs_spawned", s.LogsSpawned,
		"burst_ash", s.BurstAsh,
		"death_ash", s.DeathAsh,
		"removed", s.Removed,
		"fire_life_mean", s.FireLifeMean,
		"fire_life_p50", s.FireLifeP50,
		"ash_life_mean", s.AshLifeMean,
		"ash_life_p50", s.AshLifeP50,
	)
}
