package systems

import (
	"math"

	"github.com/pthm-cable/ember/components"
)

// Spawner creates particles and appends them to the store.
type Spawner struct {
	store  ParticleStore
	rng    RandomSource
	params *Params

	// Reused by BurstAsh
	burstSites []components.Position
}

// NewSpawner creates a spawner writing into store.
func NewSpawner(store ParticleStore, rng RandomSource, params *Params) *Spawner {
	return &Spawner{store: store, rng: rng, params: params}
}

// newParticle applies the creation policy for kind.
//
// Fire: x, y are ignored and the particle is placed at the origin; velocity is
// damped and lifetime stretched, producing a slow burn.
// Ash: position, velocity and lifetime are stored unmodified.
func (s *Spawner) newParticle(kind components.Kind, x, y, vx, vy, lifetime float32) components.Particle {
	switch kind {
	case components.KindFire:
		return components.Particle{
			Position: s.params.Origin,
			Velocity: components.Velocity{X: vx * s.params.VelocityDamping, Y: vy * s.params.VelocityDamping},
			Life:     lifetime * s.params.LifetimeScale,
			Kind:     components.KindFire,
		}
	default:
		return components.Particle{
			Position: components.Position{X: x, Y: y},
			Velocity: components.Velocity{X: vx, Y: vy},
			Life:     lifetime,
			Kind:     components.KindAsh,
		}
	}
}

// CreateFire adds a fire particle. The requested x, y are ignored: fire
// particles always start at the simulation origin.
func (s *Spawner) CreateFire(x, y, vx, vy, lifetime float32) {
	s.store.Add(s.newParticle(components.KindFire, x, y, vx, vy, lifetime))
}

// CreateAsh adds an ash particle exactly as requested.
func (s *Spawner) CreateAsh(x, y, vx, vy, lifetime float32) {
	s.store.Add(s.newParticle(components.KindAsh, x, y, vx, vy, lifetime))
}

// RingSite returns the requested coordinates of ring particle i around (cx, cy).
func (s *Spawner) RingSite(cx, cy float32, i int) (x, y float32) {
	angle := 2 * math.Pi * float64(i) / float64(s.params.RingCount)
	x = cx + s.params.RingRadius*float32(math.Cos(angle))
	y = cy + s.params.RingRadius*float32(math.Sin(angle))
	return x, y
}

// SpawnRing emits the per-frame fire ring and returns how many particles it added.
func (s *Spawner) SpawnRing(cx, cy float32) int {
	for i := 0; i < s.params.RingCount; i++ {
		x, y := s.RingSite(cx, cy, i)
		s.CreateFire(x, y, 0, 0, s.params.RingLifetime)
	}
	return s.params.RingCount
}

// LogSite returns a jittered log position near (cx, cy).
func (s *Spawner) LogSite(cx, cy float32) (x, y float32) {
	spread := s.params.LogSpread
	x = cx + float32(s.rng.IntRange(-spread, spread+1))
	y = cy + float32(s.rng.IntRange(-spread, spread+1))
	return x, y
}

// SpawnLogs emits a log burst if the population is below the cap.
// The cap only gates this source. Returns how many particles it added.
func (s *Spawner) SpawnLogs(cx, cy float32) int {
	if s.store.Len() >= s.params.LogCap {
		return 0
	}
	for i := 0; i < s.params.LogCount; i++ {
		x, y := s.LogSite(cx, cy)
		s.CreateFire(x, y, 0, 0, s.params.LogLifetime)
	}
	return s.params.LogCount
}

// BurstAsh emits a large ash burst at every fire particle already at zero life.
// Sites are collected first so the store is not grown while being iterated.
// Returns how many ash particles it added.
func (s *Spawner) BurstAsh() int {
	s.burstSites = s.burstSites[:0]
	s.store.Each(func(p *components.Particle) {
		if p.Kind == components.KindFire && p.Dead() {
			s.burstSites = append(s.burstSites, p.Position)
		}
	})

	r := s.params.AshBurstRange
	for _, site := range s.burstSites {
		for i := 0; i < s.params.AshBurstCount; i++ {
			vx := s.params.AshBurstSpread * float32(s.rng.IntRange(-r, r))
			vy := -s.params.AshBurstLift - s.params.AshBurstRise*float32(s.rng.IntRange(0, 2*r))
			s.CreateAsh(site.X, site.Y, vx, vy, s.params.AshBurstLifetime)
		}
	}
	return len(s.burstSites) * s.params.AshBurstCount
}
