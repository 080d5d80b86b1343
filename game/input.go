package game

import rl "github.com/gen2brain/raylib-go/raylib"

// controlsLegend is drawn along the bottom of the window.
const controlsLegend = "[Space] pause  [,/.] speed  [R] reset  [S] snapshot  [H] controls  [F11] fullscreen"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.togglePause()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.adjustSteps(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.adjustSteps(1)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}
}
