package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/ember/systems"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpawnRing)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseSpawnRing]; !ok {
		t.Error("expected spawn_ring phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseIntegrate]; !ok {
		t.Error("expected integrate phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpawnRing)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		MinTickDuration: 1000 * time.Microsecond,
		MaxTickDuration: 2000 * time.Microsecond,
		PhaseAvg: map[string]time.Duration{
			PhaseSpawnRing: 150 * time.Microsecond,
			PhaseIntegrate: 1200 * time.Microsecond,
		},
		PhasePct: map[string]float64{
			PhaseSpawnRing: 10,
			PhaseIntegrate: 80,
			PhaseTelemetry: 5,
		},
		FPS: 60,
	}

	rows := s.ToCSV(300)

	ids := systems.NewPhaseRegistry().IDs()
	if len(rows) != len(ids)+1 {
		t.Fatalf("got %d rows, want %d (step + one per phase)", len(rows), len(ids)+1)
	}

	step := rows[0]
	if step.Phase != PerfRowTick || step.WindowEnd != 300 || step.AvgUS != 1500 ||
		step.MinUS != 1000 || step.MaxUS != 2000 || step.Pct != 100 || step.FPS != 60 {
		t.Errorf("step row = %+v", step)
	}

	want := map[string]struct {
		avgUS int64
		pct   float64
	}{
		PhaseSpawnRing: {150, 10},
		PhaseSpawnLogs: {0, 0},
		PhaseAshBurst:  {0, 0},
		PhaseIntegrate: {1200, 80},
		PhaseTelemetry: {0, 5},
	}
	for i, row := range rows[1:] {
		if row.Phase != ids[i] {
			t.Errorf("row %d phase = %q, want %q", i+1, row.Phase, ids[i])
		}
		if row.WindowEnd != 300 {
			t.Errorf("row %d window_end = %d, want 300", i+1, row.WindowEnd)
		}
		w := want[row.Phase]
		if row.AvgUS != w.avgUS || row.Pct != w.pct {
			t.Errorf("%s: avg_us=%d pct=%v, want %d %v", row.Phase, row.AvgUS, row.Pct, w.avgUS, w.pct)
		}
		if row.MinUS != 0 || row.MaxUS != 0 || row.FPS != 0 {
			t.Errorf("%s: step-only columns set: %+v", row.Phase, row)
		}
	}
}
