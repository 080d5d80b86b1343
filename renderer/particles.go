// Package renderer draws the particle store into a raylib window.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/systems"
)

// ParticleRenderer draws each particle as a point colored by Shade.
type ParticleRenderer struct {
	pointSize int32
	scratch   []components.Particle
}

// NewParticleRenderer creates a renderer drawing points of the given size in pixels.
func NewParticleRenderer(pointSize int) *ParticleRenderer {
	if pointSize < 1 {
		pointSize = 1
	}
	return &ParticleRenderer{pointSize: int32(pointSize)}
}

// Draw renders every particle in the store. Must be called between
// rl.BeginDrawing and rl.EndDrawing. The store is only read.
func (r *ParticleRenderer) Draw(store systems.ParticleStore) {
	r.scratch = store.Snapshot(r.scratch[:0])

	for i := range r.scratch {
		p := &r.scratch[i]

		red, green, blue, alpha := systems.Shade(*p).RGBA8()
		color := rl.Color{R: red, G: green, B: blue, A: alpha}

		if r.pointSize == 1 {
			rl.DrawPixelV(rl.Vector2{X: p.Position.X, Y: p.Position.Y}, color)
			continue
		}
		half := r.pointSize / 2
		rl.DrawRectangle(int32(p.Position.X)-half, int32(p.Position.Y)-half, r.pointSize, r.pointSize, color)
	}
}
