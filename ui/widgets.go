package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel primitives in one Theme.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills and outlines a panel.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws title and returns the y of the next line.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFont, r.Theme.Header)
	return y + r.Theme.Line + 2
}

// DrawScaleGauge draws scale on a logarithmic track from minScale to
// maxScale, with a tick at 1. Scales past either end, reached while
// overscaling, are clamped and drawn in GaugeOut. It returns the y of the
// next line.
func (r *Renderer) DrawScaleGauge(x, y int32, label string, scale, minScale, maxScale float64, width int32) int32 {
	t := r.Theme
	pos, ok := logPosition(scale, minScale, maxScale)
	fill := t.GaugeFill
	if !ok {
		fill = t.GaugeOut
	}

	trackX := x + t.LabelWidth
	trackW := width - t.LabelWidth - 50

	rl.DrawText(label+":", x, y, t.Font, t.Label)
	rl.DrawRectangle(trackX, y+2, trackW, t.GaugeH, t.GaugeTrack)
	rl.DrawRectangle(trackX, y+2, int32(float64(trackW)*pos), t.GaugeH, fill)
	if one, inRange := logPosition(1, minScale, maxScale); inRange {
		tick := trackX + int32(float64(trackW)*one)
		rl.DrawRectangle(tick, y, 1, t.GaugeH+4, t.Value)
	}
	rl.DrawText(fmt.Sprintf("%.0f%%", scale*100), trackX+trackW+5, y, t.Font, t.Value)

	return y + t.Line + 2
}

// logPosition maps v onto [0, 1] between lo and hi on a log scale. ok is
// false when v had to be clamped.
func logPosition(v, lo, hi float64) (pos float64, ok bool) {
	if lo <= 0 || hi <= lo || v <= 0 {
		return 0, false
	}
	pos = math.Log(v/lo) / math.Log(hi/lo)
	if pos < 0 || pos > 1 {
		return math.Min(math.Max(pos, 0), 1), false
	}
	return pos, true
}
