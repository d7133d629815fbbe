package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/telemetry"
	"github.com/pthm-cable/artboard/viewport"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	OffsetX     float64
	OffsetY     float64
	Scale       float64
	Interaction viewport.Interaction
	Cards       int
	Visible     int
	Selected    string
	FPS         int32
	Recording   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	r.DrawPanel(5, 5, 330, 84)

	rl.DrawText(data.Title, 12, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Offset: %.1f, %.1f | Scale: %.3f", data.OffsetX, data.OffsetY, data.Scale),
		12, 35, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Cards: %d (%d drawn) | FPS: %d", data.Cards, data.Visible, data.FPS),
		12, 52, 14, rl.LightGray,
	)

	status := data.Interaction.String()
	if data.Selected != "" {
		status += " | " + data.Selected
	}
	rl.DrawText(status, 12, 69, 14, r.Theme.InteractionColor(data.Interaction))
	if data.Recording {
		rl.DrawCircle(320, 18, 6, rl.Red)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	p.renderer.DrawPanel(x-5, y-5, 230, int32(len(telemetry.Phases))*14+60)

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Work: %s  p95: %s  FPS: %.0f", stats.MeanWork.Round(time.Microsecond), stats.P95Work.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16
	if stats.OverBudget > 0 {
		rl.DrawText(fmt.Sprintf("%d/%d frames over %s", stats.OverBudget, stats.Frames, stats.Budget.Round(time.Microsecond)), x, y, 12, rl.Orange)
	}
	y += 14

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-8s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
