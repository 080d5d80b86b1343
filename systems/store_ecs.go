package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ember/components"
)

// EntityStore keeps particles as entities in an ark ECS world.
// Each particle is an entity with Position, Velocity, Life and Kind components.
type EntityStore struct {
	world *ecs.World

	mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Life,
		components.Kind,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Life,
		components.Kind,
	]

	count int

	// Reused between RemoveWhere calls
	doomed []ecs.Entity
}

// NewEntityStore creates an ECS-backed store with its own world.
func NewEntityStore() *EntityStore {
	world := ecs.NewWorld()
	return &EntityStore{
		world: world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Life,
			components.Kind,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Life,
			components.Kind,
		](world),
	}
}

// Add creates an entity for the particle.
func (s *EntityStore) Add(p components.Particle) {
	pos := p.Position
	vel := p.Velocity
	life := components.Life{Value: p.Life}
	kind := p.Kind
	s.mapper.NewEntity(&pos, &vel, &life, &kind)
	s.count++
}

// Len returns the number of particle entities.
func (s *EntityStore) Len() int {
	return s.count
}

// Each assembles a Particle per entity, calls fn, and writes the mutable fields back.
// Kind is never written back.
func (s *EntityStore) Each(fn func(p *components.Particle)) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, life, kind := query.Get()

		p := components.Particle{Position: *pos, Velocity: *vel, Life: life.Value, Kind: *kind}
		fn(&p)

		*pos = p.Position
		*vel = p.Velocity
		life.Value = p.Life
	}
}

// RemoveWhere collects matching entities during the query and removes them after it closes.
func (s *EntityStore) RemoveWhere(pred func(p *components.Particle) bool) int {
	s.doomed = s.doomed[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, life, kind := query.Get()
		p := components.Particle{Position: *pos, Velocity: *vel, Life: life.Value, Kind: *kind}
		if pred(&p) {
			s.doomed = append(s.doomed, query.Entity())
		}
	}

	// Query iteration complete; the world is unlocked
	for _, e := range s.doomed {
		s.mapper.Remove(e)
	}
	s.count -= len(s.doomed)
	return len(s.doomed)
}

// Snapshot appends a copy of every particle to dst.
func (s *EntityStore) Snapshot(dst []components.Particle) []components.Particle {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, life, kind := query.Get()
		dst = append(dst, components.Particle{Position: *pos, Velocity: *vel, Life: life.Value, Kind: *kind})
	}
	return dst
}

// Clear removes every particle entity.
func (s *EntityStore) Clear() {
	s.RemoveWhere(func(*components.Particle) bool { return true })
}
