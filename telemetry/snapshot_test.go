package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/ember/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	particles := []components.Particle{
		{
			Position: components.Position{X: 320, Y: 300},
			Velocity: components.Velocity{X: 0.5, Y: -0.3},
			Life:     4.25,
			Kind:     components.KindFire,
		},
		{
			Position: components.Position{X: 150, Y: 250},
			Velocity: components.Velocity{X: -0.1, Y: 0.2},
			Life:     0.5,
			Kind:     components.KindAsh,
		},
	}
	snapshot := NewSnapshot(42, 1000, 640, 480, particles)

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Version != SnapshotVersion {
		t.Errorf("Version mismatch: got %d, want %d", loaded.Version, SnapshotVersion)
	}
	if loaded.RNGSeed != 42 {
		t.Errorf("RNGSeed mismatch: got %d, want 42", loaded.RNGSeed)
	}
	if loaded.Tick != 1000 {
		t.Errorf("Tick mismatch: got %d, want 1000", loaded.Tick)
	}
	if loaded.ViewportWidth != 640 || loaded.ViewportHeight != 480 {
		t.Errorf("viewport = %vx%v, want 640x480", loaded.ViewportWidth, loaded.ViewportHeight)
	}

	restored, err := loaded.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(restored) != len(particles) {
		t.Fatalf("restored %d particles, want %d", len(restored), len(particles))
	}
	for i := range particles {
		if restored[i] != particles[i] {
			t.Errorf("particle %d: got %+v, want %+v", i, restored[i], particles[i])
		}
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := SaveSnapshot(NewSnapshot(1, 3000, 640, 480, nil), tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestSnapshotRestoreUnknownKind(t *testing.T) {
	s := &Snapshot{
		Version:   SnapshotVersion,
		Particles: []ParticleState{{Kind: "smoke", Life: 1}},
	}
	if _, err := s.Restore(); err == nil {
		t.Error("expected error for unknown particle kind")
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", "{not json"},
		{"wrong version", `{"version": 99, "tick": 1, "particles": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "bad.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSnapshot(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadSnapshot(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSnapshotPolicy(t *testing.T) {
	tests := []struct {
		name       string
		policy     SnapshotPolicy
		enabled    bool
		saveOnExit bool
	}{
		{"disabled", SnapshotPolicy{}, false, false},
		{"exit without dir", SnapshotPolicy{OnExit: true}, false, false},
		{"manual only", SnapshotPolicy{Dir: "snaps"}, true, false},
		{"headless exit", SnapshotPolicy{Dir: "snaps", OnExit: true}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Enabled(); got != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", got, tt.enabled)
			}
			if got := tt.policy.SaveOnExit(); got != tt.saveOnExit {
				t.Errorf("SaveOnExit() = %v, want %v", got, tt.saveOnExit)
			}
		})
	}
}
