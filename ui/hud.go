package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/systems"
	"github.com/pthm-cable/ember/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	FireCount      int
	AshCount       int
	LogCap         int
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Fire: %d | Ash: %d | Total: %d/%d", data.FireCount, data.AshCount, data.FireCount+data.AshCount, data.LogCap),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.StepsPerUpdate, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timing.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.PhaseRegistry
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: systems.NewPhaseRegistry(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := p.registry.All()
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(phases)+2) + padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Step Timing")
	y = r.DrawLabelValue(x, y, "Avg", stats.AvgTickDuration.Round(time.Microsecond).String())

	for _, phase := range phases {
		pct := stats.PhasePct[phase.ID]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", phase.Name, pct), x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
