package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/ui"
)

// Draw renders the particles and overlays. Requires an open raylib window.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.particleRenderer.Draw(g.sim.Store())
	g.drawUI()

	rl.EndDrawing()
}

// drawUI draws the HUD, the controls panel, and applies panel changes.
func (g *Game) drawUI() {
	fire, ash := g.sim.Counts()
	params := g.sim.Params()

	g.hud.Draw(ui.HUDData{
		Title:          g.cfg.Screen.Title,
		FireCount:      fire,
		AshCount:       ash,
		LogCap:         params.LogCap,
		Tick:           g.sim.Tick(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
	})

	action, bottom := g.controls.Draw(ui.ControlsState{
		Paused:         g.paused,
		LogCap:         params.LogCap,
		MaxLogCap:      maxLogCapSlider,
		StepsPerUpdate: g.stepsPerUpdate,
		MaxSteps:       maxStepsPerUpdate,
		FireCount:      fire,
		AshCount:       ash,
	})
	g.applyControls(action)

	if g.controls.IsVisible() {
		g.perfPanel.SetPosition(10, bottom+10)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
}

// applyControls applies the changes requested through the controls panel.
func (g *Game) applyControls(a ui.ControlsAction) {
	if a.TogglePause {
		g.togglePause()
	}
	if a.Reset {
		g.reset()
	}
	if a.Snapshot {
		g.saveSnapshot()
	}
	if a.LogCap != g.sim.Params().LogCap {
		g.sim.SetLogCap(a.LogCap)
	}
	g.stepsPerUpdate = clampInt(a.StepsPerUpdate, 1, maxStepsPerUpdate)
}
