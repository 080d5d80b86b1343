package systems

import (
	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
)

// Params holds the numeric rules of the particle lifecycle.
type Params struct {
	// Fire creation policy
	Origin          components.Position // Fire particles always spawn here
	VelocityDamping float32
	LifetimeScale   float32

	// Fire integration
	FireDecay        float32
	Turbulence       float32
	TurbulenceRange  int
	Buoyancy         float32
	DeathAshLifetime float32

	// Fire ring
	RingCount    int
	RingRadius   float32
	RingLifetime float32

	// Log bursts
	LogCap      int
	LogCount    int
	LogSpread   int
	LogLifetime float32

	// Ash
	AshDecay         float32
	AshBurstCount    int
	AshBurstLifetime float32
	AshBurstSpread   float32
	AshBurstLift     float32
	AshBurstRise     float32
	AshBurstRange    int
}

// DefaultParams returns the stock fire rules.
func DefaultParams() Params {
	return Params{
		Origin:          components.Position{X: 320, Y: 300},
		VelocityDamping: 0.2,
		LifetimeScale:   5.0,

		FireDecay:        0.005,
		Turbulence:       0.01,
		TurbulenceRange:  50,
		Buoyancy:         0.1,
		DeathAshLifetime: 0.5,

		RingCount:    10,
		RingRadius:   100,
		RingLifetime: 1.0,

		LogCap:      100,
		LogCount:    5,
		LogSpread:   100,
		LogLifetime: 2.0,

		AshDecay:         0.001,
		AshBurstCount:    50,
		AshBurstLifetime: 1.0,
		AshBurstSpread:   0.05,
		AshBurstLift:     0.2,
		AshBurstRise:     0.05,
		AshBurstRange:    50,
	}
}

// NewParams converts loaded configuration into lifecycle parameters.
func NewParams(cfg *config.Config) Params {
	return Params{
		Origin:          components.Position{X: cfg.Derived.OriginX32, Y: cfg.Derived.OriginY32},
		VelocityDamping: float32(cfg.Fire.VelocityDamping),
		LifetimeScale:   float32(cfg.Fire.LifetimeScale),

		FireDecay:        float32(cfg.Fire.Decay),
		Turbulence:       float32(cfg.Fire.Turbulence),
		TurbulenceRange:  cfg.Fire.TurbulenceRange,
		Buoyancy:         float32(cfg.Fire.Buoyancy),
		DeathAshLifetime: float32(cfg.Fire.DeathAshLifetime),

		RingCount:    cfg.Ring.Count,
		RingRadius:   float32(cfg.Ring.Radius),
		RingLifetime: float32(cfg.Ring.Lifetime),

		LogCap:      cfg.Logs.PopulationCap,
		LogCount:    cfg.Logs.Count,
		LogSpread:   cfg.Logs.Spread,
		LogLifetime: float32(cfg.Logs.Lifetime),

		AshDecay:         float32(cfg.Ash.Decay),
		AshBurstCount:    cfg.Ash.BurstCount,
		AshBurstLifetime: float32(cfg.Ash.BurstLifetime),
		AshBurstSpread:   float32(cfg.Ash.BurstSpread),
		AshBurstLift:     float32(cfg.Ash.BurstLift),
		AshBurstRise:     float32(cfg.Ash.BurstRise),
		AshBurstRange:    cfg.Ash.BurstRange,
	}
}

// NewStore creates the particle store backend named in the config.
func NewStore(cfg *config.Config) ParticleStore {
	if cfg.Store.Backend == config.BackendECS {
		return NewEntityStore()
	}
	return NewSliceStore(cfg.Store.InitialCapacity)
}
