package components

// Position represents a particle's world position.
type Position struct {
	X, Y float32
}

// Velocity represents a particle's per-frame displacement.
type Velocity struct {
	X, Y float32
}

// Life is the ECS form of a particle's remaining life.
type Life struct {
	Value float32
}
