package systems

// PhaseTelemetry names the stats collection that follows each step. It is
// timed by the driver, not reported through the phase hook.
const PhaseTelemetry = "telemetry"

// PhaseInfo describes a frame phase for UI display.
type PhaseInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
}

// PhaseRegistry holds metadata about all frame phases in execution order.
// This centralizes phase naming so the UI and perf tracker stay in sync.
type PhaseRegistry struct {
	phases []PhaseInfo
	byID   map[string]PhaseInfo
}

// NewPhaseRegistry creates a registry with all known phases.
func NewPhaseRegistry() *PhaseRegistry {
	reg := &PhaseRegistry{
		byID: make(map[string]PhaseInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases in the order Step runs them.
func (r *PhaseRegistry) registerDefaults() {
	r.Register(PhaseInfo{ID: PhaseSpawnRing, Name: "Ring", Description: "Spawns the per-frame fire ring"})
	r.Register(PhaseInfo{ID: PhaseSpawnLogs, Name: "Logs", Description: "Spawns capped log bursts"})
	r.Register(PhaseInfo{ID: PhaseAshBurst, Name: "Ash Burst", Description: "Bursts ash at dead fire"})
	r.Register(PhaseInfo{ID: PhaseIntegrate, Name: "Integrate", Description: "Moves, decays, and compacts particles"})
	r.Register(PhaseInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Collects window stats"})
}

// Register adds a phase to the registry.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.phases = append(r.phases, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *PhaseRegistry) Get(id string) (PhaseInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *PhaseRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *PhaseRegistry) All() []PhaseInfo {
	return r.phases
}

// IDs returns all phase IDs in registration order.
func (r *PhaseRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, info := range r.phases {
		ids[i] = info.ID
	}
	return ids
}
