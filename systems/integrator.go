package systems

import "github.com/pthm-cable/ember/components"

// Integrator advances every particle by one frame.
type Integrator struct {
	store   ParticleStore
	spawner *Spawner
	rng     RandomSource
	params  *Params

	// Fire particles that died this pass; their ash is spawned after it
	pending []components.Particle
}

// NewIntegrator creates an integrator over store, using rng for fire
// turbulence and spawner for the ash left behind by dying fire particles.
// The spawner must write into the same store.
func NewIntegrator(store ParticleStore, spawner *Spawner, rng RandomSource, params *Params) *Integrator {
	return &Integrator{store: store, spawner: spawner, rng: rng, params: params}
}

// Integrate runs one frame over the store: moves particles, applies kind-specific
// physics and decay, leaves one ash particle per dying fire particle, and
// removes every exhausted particle. Ash created here is not advanced until
// the next frame. Returns the number of ash particles created and removed.
func (it *Integrator) Integrate() (deathAsh, removed int) {
	it.pending = it.pending[:0]

	it.store.Each(it.advance)

	for _, p := range it.pending {
		it.spawner.CreateAsh(p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, it.params.DeathAshLifetime)
	}
	deathAsh = len(it.pending)

	removed = it.store.RemoveWhere(func(p *components.Particle) bool {
		return p.Dead()
	})
	return deathAsh, removed
}

// advance applies one semi-implicit Euler step to a single particle.
func (it *Integrator) advance(p *components.Particle) {
	p.Position.X += p.Velocity.X
	p.Position.Y += p.Velocity.Y

	switch p.Kind {
	case components.KindFire:
		r := it.params.TurbulenceRange
		p.Velocity.X += it.params.Turbulence * float32(it.rng.IntRange(-r, r))
		p.Velocity.Y += it.params.Turbulence*float32(it.rng.IntRange(-r, r)) - it.params.Buoyancy
		p.Life -= it.params.FireDecay

		if p.Life <= 0 {
			// Death leaves exactly one ash particle where the fire was
			it.pending = append(it.pending, *p)
			p.Life = 0
		}

	case components.KindAsh:
		p.Life -= it.params.AshDecay
		if p.Life < 0 {
			p.Life = 0
		}
	}
}
