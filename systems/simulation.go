package systems

import "github.com/pthm-cable/ember/components"

// Phase names reported to the phase hook during Step.
const (
	PhaseSpawnRing = "spawn_ring"
	PhaseSpawnLogs = "spawn_logs"
	PhaseAshBurst  = "ash_burst"
	PhaseIntegrate = "integrate"
)

// FrameReport summarizes what one Step did.
type FrameReport struct {
	Tick        int32
	RingSpawned int
	LogsSpawned int
	BurstAsh    int // Ash from the pre-integration burst pass
	DeathAsh    int // Ash left directly by fire particles dying during integration
	Removed     int
	Population  int // Store size after the step
}

// Simulation owns the particle store and runs one frame per Step.
type Simulation struct {
	params     Params
	store      ParticleStore
	spawner    *Spawner
	integrator *Integrator

	tick int32

	// Called with a Phase* name as each phase begins; may be nil
	onPhase func(phase string)
}

// NewSimulation wires a spawner and integrator around store.
func NewSimulation(store ParticleStore, rng RandomSource, params Params) *Simulation {
	s := &Simulation{params: params, store: store}
	s.spawner = NewSpawner(store, rng, &s.params)
	s.integrator = NewIntegrator(store, s.spawner, rng, &s.params)
	return s
}

// SetPhaseHook installs a callback invoked as each step phase begins.
func (s *Simulation) SetPhaseHook(fn func(phase string)) {
	s.onPhase = fn
}

func (s *Simulation) phase(name string) {
	if s.onPhase != nil {
		s.onPhase(name)
	}
}

// Step advances the simulation by one frame for a viewport of the given size.
// Spawning completes before integration, and integration (including
// compaction) completes before Step returns.
func (s *Simulation) Step(width, height float32) FrameReport {
	cx := width / 2
	cy := height / 2

	var r FrameReport

	s.phase(PhaseSpawnRing)
	r.RingSpawned = s.spawner.SpawnRing(cx, cy)

	s.phase(PhaseSpawnLogs)
	r.LogsSpawned = s.spawner.SpawnLogs(cx, cy)

	s.phase(PhaseAshBurst)
	r.BurstAsh = s.spawner.BurstAsh()

	s.phase(PhaseIntegrate)
	r.DeathAsh, r.Removed = s.integrator.Integrate()

	s.tick++
	r.Tick = s.tick
	r.Population = s.store.Len()
	return r
}

// Store returns the particle store. Renderers should only read from it.
func (s *Simulation) Store() ParticleStore {
	return s.store
}

// Spawner returns the simulation's spawner.
func (s *Simulation) Spawner() *Spawner {
	return s.spawner
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Params returns a copy of the current lifecycle parameters.
func (s *Simulation) Params() Params {
	return s.params
}

// SetLogCap changes the population cap gating log bursts.
func (s *Simulation) SetLogCap(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.params.LogCap = limit
}

// Counts returns the number of fire and ash particles.
func (s *Simulation) Counts() (fire, ash int) {
	s.store.Each(func(p *components.Particle) {
		if p.Kind == components.KindFire {
			fire++
		} else {
			ash++
		}
	})
	return fire, ash
}

// Reset removes every particle and rewinds the tick counter.
func (s *Simulation) Reset() {
	s.store.Clear()
	s.tick = 0
}

// Restore replaces the store contents with particles and sets the tick counter.
func (s *Simulation) Restore(tick int32, particles []components.Particle) {
	s.store.Clear()
	for _, p := range particles {
		s.store.Add(p)
	}
	s.tick = tick
}
