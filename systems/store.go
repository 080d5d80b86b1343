package systems

import "github.com/pthm-cable/ember/components"

// ParticleStore is an unordered collection that owns every particle.
// Iteration order is insertion-independent and may change after RemoveWhere.
type ParticleStore interface {
	// Add appends a particle.
	Add(p components.Particle)
	// Len returns the number of stored particles.
	Len() int
	// Each calls fn with a mutable pointer to every particle.
	// fn must not add or remove particles.
	Each(fn func(p *components.Particle))
	// RemoveWhere deletes every particle matching pred in one compacting pass
	// and returns how many were removed.
	RemoveWhere(pred func(p *components.Particle) bool) int
	// Snapshot appends a copy of every particle to dst and returns it.
	Snapshot(dst []components.Particle) []components.Particle
	// Clear removes all particles.
	Clear()
}

// SliceStore keeps particles in one contiguous slice.
type SliceStore struct {
	particles []components.Particle
}

// NewSliceStore creates a slice-backed store with the given initial capacity.
func NewSliceStore(capacity int) *SliceStore {
	if capacity < 0 {
		capacity = 0
	}
	return &SliceStore{particles: make([]components.Particle, 0, capacity)}
}

// Add appends a particle.
func (s *SliceStore) Add(p components.Particle) {
	s.particles = append(s.particles, p)
}

// Len returns the number of particles.
func (s *SliceStore) Len() int {
	return len(s.particles)
}

// Each calls fn for every particle in place.
func (s *SliceStore) Each(fn func(p *components.Particle)) {
	for i := range s.particles {
		fn(&s.particles[i])
	}
}

// RemoveWhere compacts survivors to the front of the slice.
func (s *SliceStore) RemoveWhere(pred func(p *components.Particle) bool) int {
	alive := 0
	for i := range s.particles {
		if pred(&s.particles[i]) {
			continue
		}
		s.particles[alive] = s.particles[i]
		alive++
	}
	removed := len(s.particles) - alive
	s.particles = s.particles[:alive]
	return removed
}

// Snapshot appends a copy of every particle to dst.
func (s *SliceStore) Snapshot(dst []components.Particle) []components.Particle {
	return append(dst, s.particles...)
}

// Clear removes all particles, keeping the backing array.
func (s *SliceStore) Clear() {
	s.particles = s.particles[:0]
}
