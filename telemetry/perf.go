package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/ember/systems"
)

// Phase names for a simulation frame. The step phases come from the
// simulation's phase hook; PhaseTelemetry covers stats collection.
const (
	PhaseSpawnRing = systems.PhaseSpawnRing
	PhaseSpawnLogs = systems.PhaseSpawnLogs
	PhaseAshBurst  = systems.PhaseAshBurst
	PhaseIntegrate = systems.PhaseIntegrate
	PhaseTelemetry = systems.PhaseTelemetry
)

// phases is the registry that orders log attributes and CSV rows.
var phases = systems.NewPhaseRegistry()

// stepTiming is the wall time of one step, split by phase.
type stepTiming struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector times steps and their phases over the last N steps.
//
// Usage per step: StartTick, then StartPhase as each phase begins, then
// EndTick. A phase runs until the next StartPhase or EndTick.
type PerfCollector struct {
	ring   []stepTiming
	next   int
	filled int

	current    stepTiming
	stepBegan  time.Time
	phase      string
	phaseBegan time.Time

	// Render loop cadence, independent of steps
	prevFrame time.Time
	frameGap  time.Duration
}

// NewPerfCollector creates a collector averaging over window steps.
// A non-positive window falls back to 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]stepTiming, window)}
}

// StartTick marks the beginning of a step.
func (p *PerfCollector) StartTick() {
	p.stepBegan = time.Now()
	p.current = stepTiming{phases: make(map[string]time.Duration, 8)}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseBegan = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current.phases[p.phase] += now.Sub(p.phaseBegan)
	}
}

// EndTick closes the step and stores it in the window, evicting the oldest.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""
	p.current.total = now.Sub(p.stepBegan)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame marks a presented frame; consecutive calls give the frame time.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.prevFrame.IsZero() {
		p.frameGap = now.Sub(p.prevFrame)
	}
	p.prevFrame = now
}

// PerfStats is a summary of the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration // mean time per phase
	PhasePct map[string]float64       // PhaseAvg as a percentage of AvgTickDuration

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the steps currently in the window. The maps are never nil.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameGap,
	}
	if p.frameGap > 0 {
		s.FPS = float64(time.Second) / float64(p.frameGap)
	}
	if p.filled == 0 {
		return s
	}

	var sum time.Duration
	for i, st := range p.ring[:p.filled] {
		sum += st.total
		if i == 0 || st.total < s.MinTickDuration {
			s.MinTickDuration = st.total
		}
		if st.total > s.MaxTickDuration {
			s.MaxTickDuration = st.total
		}
		for name, d := range st.phases {
			s.PhaseAvg[name] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = sum / n
	for name, d := range s.PhaseAvg {
		s.PhaseAvg[name] = d / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = 100 * float64(s.PhaseAvg[name]) / float64(s.AvgTickDuration)
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the summary with one percentage per known phase.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, id := range phases.IDs() {
		// Skip phases too small to matter
		if pct := s.PhasePct[id]; pct > 0.1 {
			attrs = append(attrs, id+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, id := range phases.IDs() {
		attrs = append(attrs, slog.Float64(id+"_pct", s.PhasePct[id]))
	}
	return slog.GroupValue(attrs...)
}

// PerfRowTick is the phase value of the whole-step row in perf.csv.
const PerfRowTick = "tick"

// PerfStatsCSV is one perf.csv row. Each window writes a whole-step row
// followed by one row per registered phase, so new phases need no new columns.
type PerfStatsCSV struct {
	WindowEnd int32   `csv:"window_end"`
	Phase     string  `csv:"phase"`
	Name      string  `csv:"name"`
	AvgUS     int64   `csv:"avg_us"`
	MinUS     int64   `csv:"min_us"`
	MaxUS     int64   `csv:"max_us"`
	Pct       float64 `csv:"pct"`
	PerSec    float64 `csv:"per_sec"`
	FPS       float64 `csv:"fps"`
}

// ToCSV flattens the stats into perf.csv rows for the window ending at windowEnd.
// Min, max, throughput and FPS are only set on the whole-step row.
func (s PerfStats) ToCSV(windowEnd int32) []PerfStatsCSV {
	all := phases.All()
	rows := make([]PerfStatsCSV, 0, len(all)+1)

	rows = append(rows, PerfStatsCSV{
		WindowEnd: windowEnd,
		Phase:     PerfRowTick,
		Name:      "Step",
		AvgUS:     s.AvgTickDuration.Microseconds(),
		MinUS:     s.MinTickDuration.Microseconds(),
		MaxUS:     s.MaxTickDuration.Microseconds(),
		Pct:       100,
		PerSec:    s.TicksPerSecond,
		FPS:       s.FPS,
	})
	for _, info := range all {
		rows = append(rows, PerfStatsCSV{
			WindowEnd: windowEnd,
			Phase:     info.ID,
			Name:      info.Name,
			AvgUS:     s.PhaseAvg[info.ID].Microseconds(),
			Pct:       s.PhasePct[info.ID],
		})
	}
	return rows
}
