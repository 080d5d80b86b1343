package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState carries the values the controls panel can change.
type ControlsState struct {
	Paused         bool
	LogCap         int
	MaxLogCap      int
	StepsPerUpdate int
	MaxSteps       int
	FireCount      int
	AshCount       int
}

// ControlsAction reports what the user did in the panel this frame.
type ControlsAction struct {
	TogglePause    bool
	Reset          bool
	Snapshot       bool
	LogCap         int
	StepsPerUpdate int
}

// ControlsPanel renders the toggleable left-side controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the requested changes along with the
// Y coordinate below the panel. A hidden panel returns the state unchanged.
func (c *ControlsPanel) Draw(state ControlsState) (ControlsAction, int32) {
	action := ControlsAction{LogCap: state.LogCap, StepsPerUpdate: state.StepsPerUpdate}
	if !c.visible {
		return action, c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)
	panelHeight := lineHeight*11 + padding*2

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := c.x + padding
	y := r.DrawSectionHeader(x, c.y+padding, "Controls")

	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 20}, pauseLabel) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 6, Y: float32(y), Width: half, Height: 20}, "Reset") {
		action.Reset = true
	}
	y += 26
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: 20}, "Save Snapshot") {
		action.Snapshot = true
	}
	y += 30

	rl.DrawText(fmt.Sprintf("Log cap: %d", state.LogCap), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	newCap := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: 14},
		"", "",
		float32(state.LogCap), 0, float32(state.MaxLogCap),
	)
	action.LogCap = int(newCap)
	y += 22

	rl.DrawText(fmt.Sprintf("Steps/frame: %d", state.StepsPerUpdate), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	newSteps := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: 14},
		"", "",
		float32(state.StepsPerUpdate), 1, float32(state.MaxSteps),
	)
	action.StepsPerUpdate = int(newSteps + 0.5)
	y += 24

	total := float32(state.FireCount + state.AshCount)
	y = r.DrawBar(x, y, "Fire", float32(state.FireCount), total, c.width-padding*2)
	y = r.DrawBar(x, y, "Ash", float32(state.AshCount), total, c.width-padding*2)

	return action, c.y + panelHeight
}
