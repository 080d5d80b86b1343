// Package components defines the particle data model and its ECS components.
package components

// Kind identifies a particle variant. It is fixed at creation.
type Kind uint8

const (
	KindFire Kind = iota // Actively decaying, turbulent, buoyant
	KindAsh              // Terminal by-product of a dead fire particle
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindFire:
		return "fire"
	case KindAsh:
		return "ash"
	default:
		return "unknown"
	}
}

// Particle is the sole simulation entity.
// Life is the remaining fraction and doubles as the color/alpha input.
type Particle struct {
	Position Position
	Velocity Velocity
	Life     float32
	Kind     Kind
}

// Dead reports whether the particle has exhausted its life.
func (p *Particle) Dead() bool {
	return p.Life <= 0
}
