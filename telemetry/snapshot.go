package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/ember/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the particle store contents at a given tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	ViewportWidth  float32 `json:"viewport_width"`
	ViewportHeight float32 `json:"viewport_height"`

	Tick int32 `json:"tick"`

	Particles []ParticleState `json:"particles"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	Kind string  `json:"kind"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	VelX float32 `json:"vel_x"`
	VelY float32 `json:"vel_y"`
	Life float32 `json:"life"`
}

// NewSnapshot captures particles into a snapshot.
func NewSnapshot(seed int64, tick int32, width, height float32, particles []components.Particle) *Snapshot {
	s := &Snapshot{
		Version:        SnapshotVersion,
		RNGSeed:        seed,
		ViewportWidth:  width,
		ViewportHeight: height,
		Tick:           tick,
		Particles:      make([]ParticleState, len(particles)),
	}
	for i, p := range particles {
		s.Particles[i] = ParticleState{
			Kind: p.Kind.String(),
			X:    p.Position.X,
			Y:    p.Position.Y,
			VelX: p.Velocity.X,
			VelY: p.Velocity.Y,
			Life: p.Life,
		}
	}
	return s
}

// Restore converts the snapshot back into particles.
func (s *Snapshot) Restore() ([]components.Particle, error) {
	out := make([]components.Particle, len(s.Particles))
	for i, ps := range s.Particles {
		var kind components.Kind
		switch ps.Kind {
		case "fire":
			kind = components.KindFire
		case "ash":
			kind = components.KindAsh
		default:
			return nil, fmt.Errorf("particle %d: unknown kind %q", i, ps.Kind)
		}
		out[i] = components.Particle{
			Position: components.Position{X: ps.X, Y: ps.Y},
			Velocity: components.Velocity{X: ps.VelX, Y: ps.VelY},
			Life:     ps.Life,
			Kind:     kind,
		}
	}
	return out, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}

// SnapshotPolicy says where snapshots go and whether one is written at shutdown.
type SnapshotPolicy struct {
	Dir    string // Empty disables snapshots
	OnExit bool   // Write a final snapshot at shutdown (headless runs)
}

// Enabled reports whether snapshots can be saved at all.
func (p SnapshotPolicy) Enabled() bool {
	return p.Dir != ""
}

// SaveOnExit reports whether a final snapshot should be written at shutdown.
func (p SnapshotPolicy) SaveOnExit() bool {
	return p.OnExit && p.Enabled()
}
