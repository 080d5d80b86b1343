package systems

import "testing"

func TestPhaseRegistryOrderMatchesStep(t *testing.T) {
	reg := NewPhaseRegistry()

	sim := NewSimulation(NewSliceStore(0), ConstantSource(0), DefaultParams())
	var stepPhases []string
	sim.SetPhaseHook(func(phase string) { stepPhases = append(stepPhases, phase) })
	sim.Step(640, 480)

	// Step phases come first, followed by telemetry
	ids := reg.IDs()
	if len(ids) != len(stepPhases)+1 {
		t.Fatalf("registry has %d phases, want %d", len(ids), len(stepPhases)+1)
	}
	for i, phase := range stepPhases {
		if ids[i] != phase {
			t.Errorf("registry[%d] = %q, want %q", i, ids[i], phase)
		}
	}
	if ids[len(ids)-1] != PhaseTelemetry {
		t.Errorf("last phase = %q, want %q", ids[len(ids)-1], PhaseTelemetry)
	}
}

func TestPhaseRegistryGetName(t *testing.T) {
	reg := NewPhaseRegistry()

	tests := []struct {
		id   string
		want string
	}{
		{PhaseIntegrate, "Integrate"},
		{PhaseAshBurst, "Ash Burst"},
		{"unknown_phase", "unknown_phase"},
	}
	for _, tt := range tests {
		if got := reg.GetName(tt.id); got != tt.want {
			t.Errorf("GetName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}

	if _, ok := reg.Get("unknown_phase"); ok {
		t.Error("Get(unknown) reported ok")
	}
}
