package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/board"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/scrollbar"
	"github.com/pthm-cable/artboard/sticky"
	"github.com/pthm-cable/artboard/ui"
)

var (
	background   = rl.Color{R: 32, G: 34, B: 40, A: 255}
	artboardFill = rl.Color{R: 236, G: 236, B: 240, A: 255}
	selection    = rl.Color{R: 255, G: 200, B: 40, A: 255}
	gridDots     = rl.Color{R: 180, G: 182, B: 190, A: 255}
	scrollTrack  = rl.Color{R: 20, G: 22, B: 28, A: 120}
	scrollThumb  = rl.Color{R: 200, G: 202, B: 210, A: 200}
	labelFill    = rl.Color{R: 20, G: 22, B: 28, A: 220}
)

var palette = []board.Tint{
	{R: 244, G: 162, B: 97, A: 255},
	{R: 42, G: 157, B: 143, A: 255},
	{R: 233, G: 196, B: 106, A: 255},
	{R: 38, G: 70, B: 83, A: 255},
	{R: 231, G: 111, B: 81, A: 255},
	{R: 131, G: 56, B: 236, A: 255},
}

const (
	cardFontSize  = 20
	minFontSize   = 6
	labelFontSize = 14
	labelPad      = 4
	controls      = "Drag/wheel: pan | Ctrl+wheel: zoom | Alt+click: zoom | Tab: next card | R: record | S: save view | P: perf | F11: fullscreen"
)

func color(t board.Tint) rl.Color {
	return rl.Color{R: t.R, G: t.G, B: t.B, A: t.A}
}

func rect(r geom.Rect) rl.Rectangle {
	return rl.Rectangle{X: float32(r.X), Y: float32(r.Y), Width: float32(r.Width), Height: float32(r.Height)}
}

// drawBoard draws the artboard and every visible card.
func (g *Viewer) drawBoard() {
	cam := g.tracker.Camera()
	if size, ok := g.v.ArtboardSize(); ok {
		area := cam.ContentRectToScreen(geom.Rect{Width: size.Width, Height: size.Height})
		rl.DrawRectangleRec(rect(area), artboardFill)
		g.grid.Draw(cam, area)
	}

	fontSize := int32(cardFontSize * cam.ScaleX)
	for _, it := range g.visible {
		r := rect(cam.ContentRectToScreen(it.Rect))
		rl.DrawRectangleRounded(r, 0.08, 6, color(it.Tint))
		if it.ID == g.selected {
			rl.DrawRectangleRoundedLinesEx(r, 0.08, 6, 3, selection)
		}
		if fontSize >= minFontSize {
			rl.DrawText(it.Label, int32(r.X)+fontSize/2, int32(r.Y)+fontSize/2, fontSize, rl.White)
		}
	}
}

// drawOverlay draws the pinned labels, the scrollbars, the HUD, the option
// panel and the overview.
func (g *Viewer) drawOverlay() {
	g.drawLabels()
	g.drawScrollbars()

	selected := ""
	if it, ok := g.board.Get(g.selected); ok {
		selected = it.Label
	}
	g.hud.Draw(ui.HUDData{
		Title:       g.cfg.Screen.Title,
		OffsetX:     g.snap.Offset.X,
		OffsetY:     g.snap.Offset.Y,
		Scale:       g.snap.Scale,
		Interaction: g.snap.Interaction,
		Cards:       g.board.Len(),
		Visible:     len(g.visible),
		Selected:    selected,
		FPS:         rl.GetFPS(),
		Recording:   g.recording,
	})
	g.hud.DrawControls(int32(g.screenHeight), controls)

	g.panelUI.Direction = g.v.Options().Direction.String()
	g.panelUI.MomentumScroll = g.momentumScroll
	g.panelUI.Recording = g.recording
	g.panelUI.Scale = g.snap.Scale
	actions, y := g.panel.Draw(&g.panelUI)
	for _, a := range actions {
		g.applyAction(a)
	}
	g.applyPanel(g.panelUI)

	g.drawOverview(y)

	if g.showPerf {
		g.perfPanel.Draw(g.perf.Stats())
	}
}

// drawOverview draws the overview inside the option panel starting at y.
func (g *Viewer) drawOverview(y int32) {
	if g.overview == nil {
		return
	}
	l, err := g.overview.Layout()
	if err != nil {
		g.overviewRect = geom.Rect{}
		return
	}
	panel := g.panelRect()
	box := geom.Rect{
		X:      panel.X + (panel.Width-g.overviewSize().Width)/2,
		Y:      float64(y),
		Width:  g.overviewSize().Width,
		Height: l.Height,
	}
	g.overviewRect = box
	at := func(r geom.Rect) rl.Rectangle {
		return rect(geom.Rect{X: box.X + r.X, Y: box.Y + r.Y, Width: r.Width, Height: r.Height})
	}

	rl.DrawRectangleRec(rect(box), rl.Color{R: 12, G: 14, B: 18, A: 255})
	rl.DrawRectangleRec(at(l.Artboard), artboardFill)
	g.board.Each(func(it board.Item) {
		r := geom.Rect{
			X:      l.Artboard.X + it.Rect.X*l.Scale,
			Y:      l.Artboard.Y + it.Rect.Y*l.Scale,
			Width:  it.Rect.Width * l.Scale,
			Height: it.Rect.Height * l.Scale,
		}
		rl.DrawRectangleRec(at(r), color(it.Tint))
	})
	rl.DrawRectangleLinesEx(at(l.Visible), 2, selection)
	rl.DrawText(fmt.Sprintf("%.0f%%", g.snap.Scale*100), int32(box.X)+4, int32(box.Y+box.Height)+4, 12, rl.LightGray)
}

func (g *Viewer) drawScrollbars() {
	for _, bar := range []*scrollbar.Scrollbar{g.scrollY, g.scrollX} {
		if bar == nil {
			continue
		}
		l := bar.Layout()
		if !l.Scrollable {
			continue
		}
		track := g.scrollbarRect(bar)
		thumb := track
		if bar.Orientation() == scrollbar.OrientationX {
			thumb.X += l.ThumbOffset
			thumb.Width = l.ThumbSize
		} else {
			thumb.Y += l.ThumbOffset
			thumb.Height = l.ThumbSize
		}
		rl.DrawRectangleRec(rect(track), scrollTrack)
		rl.DrawRectangleRounded(rect(thumb), 1, 6, scrollThumb)
	}
}

// drawLabels draws the artboard title and the badge of the selected card.
func (g *Viewer) drawLabels() {
	if size, ok := g.v.ArtboardSize(); ok && g.title != nil {
		g.drawLabel(g.title, fmt.Sprintf("%s  %.0f x %.0f", g.cfg.Screen.Title, size.Width, size.Height))
	}
	if it, ok := g.board.Get(g.selected); ok && g.badge != nil {
		g.drawLabel(g.badge, fmt.Sprintf("#%d", it.ID))
	}
}

// drawLabel draws text at the position s computed this frame. A label whose
// measured size changed reports it so the next frame places it correctly.
func (g *Viewer) drawLabel(s *sticky.Sticky, text string) {
	size := geom.Size{
		Width:  float64(rl.MeasureText(text, labelFontSize) + 2*labelPad),
		Height: labelFontSize + 2*labelPad,
	}
	if size != s.Size() {
		g.v.NotifySizeChange(s, size)
	}
	p, ok := s.Position()
	if !ok {
		return
	}
	rl.DrawRectangleRec(rect(geom.Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height}), labelFill)
	rl.DrawText(text, int32(p.X)+labelPad, int32(p.Y)+labelPad, labelFontSize, rl.RayWhite)
}
