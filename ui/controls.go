package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a command picked in the option panel.
type Action int

const (
	ActionZoomIn Action = iota
	ActionZoomOut
	ActionResetZoom
	ActionScaleToFit
	ActionScrollToTop
	ActionScrollToEnd
	ActionCycleDirection
	ActionToggleMomentumScroll
	ActionToggleRecording
	ActionSaveView
)

var actionNames = [...]string{
	"zoomIn", "zoomOut", "resetZoom", "scaleToFit", "scrollToTop", "scrollToEnd",
	"cycleDirection", "toggleMomentumScroll", "toggleRecording", "saveView",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// PanelState is the viewer state the option panel shows and edits.
// Deceleration and MaxScale are written back by the sliders.
type PanelState struct {
	Direction      string
	MomentumScroll bool
	Recording      bool
	Deceleration   float64
	MaxScale       float64
	MinScale       float64
	Scale          float64
}

// OptionsPanel renders the right-side option panel. It covers the area the
// viewport treats as blocking.
type OptionsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewOptionsPanel creates a panel at the given window rectangle.
func NewOptionsPanel(x, y, width, height int32) *OptionsPanel {
	return &OptionsPanel{renderer: NewRenderer(), x: x, y: y, width: width, height: height}
}

// SetBounds moves the panel.
func (p *OptionsPanel) SetBounds(x, y, width, height int32) {
	p.x, p.y, p.width, p.height = x, y, width, height
}

// Contains reports whether the window point lies on the panel.
func (p *OptionsPanel) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.bounds())
}

func (p *OptionsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(p.height)}
}

// Draw renders the panel and returns the actions clicked this frame along
// with the Y position below the last control.
func (p *OptionsPanel) Draw(state *PanelState) ([]Action, int32) {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, p.height)

	var picked []Action
	x := float32(p.x + pad)
	y := p.y + pad
	inner := float32(p.width - pad*2)
	half := (inner - 6) / 2

	y = r.DrawSectionHeader(p.x+pad, y, "View")
	y = r.DrawScaleGauge(p.x+pad, y, "Scale", state.Scale, state.MinScale, state.MaxScale, p.width-pad*2)
	y += 4

	button := func(col int, label string, a Action) {
		bx := x + float32(col)*(half+6)
		if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: half, Height: 24}, label) {
			picked = append(picked, a)
		}
	}

	button(0, "Zoom In", ActionZoomIn)
	button(1, "Zoom Out", ActionZoomOut)
	y += 30
	button(0, "Reset Zoom", ActionResetZoom)
	button(1, "Fit", ActionScaleToFit)
	y += 30
	button(0, "Top", ActionScrollToTop)
	button(1, "End", ActionScrollToEnd)
	y += 38

	y = r.DrawSectionHeader(p.x+pad, y, "Input")
	button(0, "Dir: "+state.Direction, ActionCycleDirection)
	button(1, "Wheel: "+onOff(state.MomentumScroll), ActionToggleMomentumScroll)
	y += 32

	rl.DrawText("Deceleration", p.x+pad, y, r.Theme.Font, r.Theme.Label)
	y += 14
	state.Deceleration = float64(gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: inner - 40, Height: 16},
		"", fmt.Sprintf("%.3f", state.Deceleration),
		float32(state.Deceleration), 0.8, 0.99,
	))
	y += 24

	rl.DrawText("Max scale", p.x+pad, y, r.Theme.Font, r.Theme.Label)
	y += 14
	state.MaxScale = float64(gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: inner - 40, Height: 16},
		"", fmt.Sprintf("%.1f", state.MaxScale),
		float32(state.MaxScale), 1, 10,
	))
	y += 32

	y = r.DrawSectionHeader(p.x+pad, y, "Telemetry")
	button(0, "Record: "+onOff(state.Recording), ActionToggleRecording)
	button(1, "Save View", ActionSaveView)
	y += 38

	return picked, y
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
