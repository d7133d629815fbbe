package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/gesture"
	"github.com/pthm-cable/artboard/input"
	"github.com/pthm-cable/artboard/scrollbar"
	"github.com/pthm-cable/artboard/sticky"
	"github.com/pthm-cable/artboard/ui"
	"github.com/pthm-cable/artboard/viewport"
)

// clickSlop is how far (px) the pointer may travel for a press to still
// select a card.
const clickSlop = 5

// handleInput translates this frame's raylib input into adapter calls.
func (g *Viewer) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	mods := readModifiers()
	g.handleKeys(mods)
	if g.touchEnabled {
		g.handleTouch()
	} else {
		g.handleMouse(mods)
	}
	g.handleWheel(mods)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layoutPanel()
	g.grid.Resize(w, h)
	g.v.QueueResize(geom.Size{Width: float64(w), Height: float64(h)})
	g.notifySizes()
}

func (g *Viewer) handleKeys(mods modifiers) {
	switch {
	case rl.IsKeyPressed(rl.KeyTab):
		step := 1
		if mods.shift {
			step = -1
		}
		g.cycleSelection(step)
	case rl.IsKeyPressed(rl.KeyP):
		g.showPerf = !g.showPerf
	case rl.IsKeyPressed(rl.KeyR):
		g.applyAction(ui.ActionToggleRecording)
	case rl.IsKeyPressed(rl.KeyS):
		g.applyAction(ui.ActionSaveView)
	}

	for key, code := range keyCodes {
		if rl.IsKeyReleased(key) {
			g.mouse.KeyUp(mods.keyEvent(code))
			continue
		}
		if !rl.IsKeyPressed(key) && !rl.IsKeyPressedRepeat(key) {
			continue
		}
		e := mods.keyEvent(code)
		g.mouse.KeyDown(e)
		if code == "Space" || g.keyboard.KeyDown(e) {
			continue
		}
		switch code {
		case "Equal":
			g.v.ZoomIn()
		case "Minus":
			g.v.ZoomOut()
		}
	}
}

func (g *Viewer) handleMouse(mods modifiers) {
	pos := rl.GetMousePosition()
	e := input.PointerEvent{
		X:       float64(pos.X),
		Y:       float64(pos.Y),
		Buttons: buttons(rl.IsMouseButtonDown(rl.MouseButtonLeft), rl.IsMouseButtonDown(rl.MouseButtonRight)),
	}
	defer func() { g.lastMouse = pos }()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) || rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		if bar, at, ok := g.scrollbarAt(e.Coord()); ok {
			if err := bar.PointerDown(at); err != nil {
				g.log.Debug("scrollbar unavailable", "error", err)
			}
			return
		}
		if g.overview != nil && g.overviewRect.Contains(e.Coord()) {
			if err := g.overview.PointerDown(g.overviewLocal(e.Coord())); err != nil {
				g.log.Debug("overview unavailable", "error", err)
			}
			return
		}
		if g.panel.Contains(pos.X, pos.Y) {
			return
		}
		g.pressAt = &pos
		g.mouse.PointerDown(e)
		g.clickZoom.PointerDown(e)
		return
	}

	bar := g.draggedScrollbar()
	if pos != g.lastMouse {
		switch {
		case bar != nil:
			bar.PointerMove(g.trackPos(bar, e.Coord()))
		case g.overview != nil && g.overview.Dragging():
			g.overview.PointerMove(g.overviewLocal(e.Coord()))
		default:
			g.mouse.PointerMove(e)
		}
	}

	if !rl.IsMouseButtonReleased(rl.MouseButtonLeft) && !rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		return
	}
	if bar != nil {
		bar.PointerUp()
		return
	}
	if g.overview != nil && g.overview.Dragging() {
		g.overview.PointerUp()
		return
	}

	press := g.pressAt
	g.pressAt = nil
	suppress := g.mouse.SuppressClick()
	g.mouse.PointerUp(e)
	if press == nil || suppress || !rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		return
	}
	if mods.alt {
		g.clickZoom.PointerUp(e)
		return
	}
	if rl.Vector2Distance(*press, pos) <= clickSlop {
		g.selectAt(e.Coord())
	}
}

func (g *Viewer) handleWheel(mods modifiers) {
	move := rl.GetMouseWheelMoveV()
	if move.X == 0 && move.Y == 0 {
		return
	}
	pos := rl.GetMousePosition()
	if g.panel.Contains(pos.X, pos.Y) {
		return
	}
	dx, dy := wheelDelta(move)
	if mods.shift && dx == 0 {
		dx, dy = dy, 0
	}
	g.wheel.Handle(input.WheelEvent{
		WheelEvent: gesture.WheelEvent{
			DeltaX: dx,
			DeltaY: dy,
			Ctrl:   mods.ctrl,
			Alt:    mods.alt,
			Meta:   mods.meta,
			Shift:  mods.shift,
		},
		X: float64(pos.X),
		Y: float64(pos.Y),
	})
}

func (g *Viewer) handleTouch() {
	cur := readTouches()
	started, held, lifted := diffTouches(g.touches, cur)
	prev := g.touches
	g.touches = cur

	if len(lifted) > 0 {
		g.touch.End(held, lifted)
	}
	if len(started) > 0 {
		if !g.doubleTap.Start(cur) {
			g.touch.Start(cur)
		}
		return
	}
	if touchesMoved(prev, cur) {
		g.touch.Move(cur)
	}
}

// scrollbarAt returns the scrollbar whose track contains the window point p
// and the track position of p. Tracks with nothing to scroll are not drawn
// and take no presses.
func (g *Viewer) scrollbarAt(p geom.Coord) (*scrollbar.Scrollbar, float64, bool) {
	if g.scrollY == nil {
		return nil, 0, false
	}
	for _, bar := range []*scrollbar.Scrollbar{g.scrollY, g.scrollX} {
		if bar.Layout().Scrollable && g.scrollbarRect(bar).Contains(p) {
			return bar, g.trackPos(bar, p), true
		}
	}
	return nil, 0, false
}

func (g *Viewer) draggedScrollbar() *scrollbar.Scrollbar {
	switch {
	case g.scrollY == nil:
		return nil
	case g.scrollY.Dragging():
		return g.scrollY
	case g.scrollX.Dragging():
		return g.scrollX
	}
	return nil
}

// trackPos converts a window point into a position along the track of bar.
func (g *Viewer) trackPos(bar *scrollbar.Scrollbar, p geom.Coord) float64 {
	r := g.scrollbarRect(bar)
	if bar.Orientation() == scrollbar.OrientationX {
		return p.X - r.X
	}
	return p.Y - r.Y
}

// overviewLocal converts a window point into overview coordinates.
func (g *Viewer) overviewLocal(p geom.Coord) geom.Coord {
	return geom.Coord{X: p.X - g.overviewRect.X, Y: p.Y - g.overviewRect.Y}
}

func (g *Viewer) selectAt(p geom.Coord) {
	cam := g.tracker.Camera()
	x, y := cam.ScreenToContent(p.X, p.Y)
	it, ok := g.board.HitTest(geom.Coord{X: x, Y: y})
	if !ok {
		g.selected = -1
		return
	}
	g.selectCard(it.ID)
	g.log.Debug("card selected", "id", it.ID, "label", it.Label)
}

// selectCard selects id and pins the badge to the card's top-right corner.
func (g *Viewer) selectCard(id int) {
	g.selected = id
	it, ok := g.board.Get(id)
	if !ok || g.badge == nil {
		return
	}
	g.badge.SetAnchor(sticky.At(it.Rect.Right(), it.Rect.Y))
}

// cycleSelection selects the card step places away and scrolls to it.
func (g *Viewer) cycleSelection(step int) {
	if len(g.cards) == 0 {
		return
	}
	idx := -1
	for i, id := range g.cards {
		if id == g.selected {
			idx = i
		}
	}
	idx = ((idx+step)%len(g.cards) + len(g.cards)) % len(g.cards)
	g.selectCard(g.cards[idx])
	err := g.board.ScrollTo(g.v, g.selected, viewport.ScrollIntoViewOptions{
		Scale:            g.cfg.Board.FocusScale,
		AnimationOptions: g.cfg.Input.Keyboard.Animation,
	})
	if err != nil {
		g.log.Warn("scroll to card", "id", g.selected, "error", err)
	}
}

// applyAction runs an option panel command.
func (g *Viewer) applyAction(a ui.Action) {
	anim := g.cfg.Input.Keyboard.Animation
	switch a {
	case ui.ActionZoomIn:
		g.v.ZoomIn()
	case ui.ActionZoomOut:
		g.v.ZoomOut()
	case ui.ActionResetZoom:
		g.v.ResetZoom(anim)
	case ui.ActionScaleToFit:
		g.v.ScaleToFit(viewport.ScrollIntoViewOptions{AnimationOptions: anim})
	case ui.ActionScrollToTop:
		g.v.ScrollToTop(anim)
	case ui.ActionScrollToEnd:
		g.v.ScrollToEnd(anim)
	case ui.ActionCycleDirection:
		err := g.v.SetOption(func(o *viewport.Options) {
			o.Direction = (o.Direction + 1) % (geom.DirectionBoth + 1)
		})
		if err != nil {
			g.log.Error("setting direction", "error", err)
		}
	case ui.ActionToggleMomentumScroll:
		g.toggleMomentumScroll()
	case ui.ActionToggleRecording:
		if g.recording {
			g.stopRecording()
		} else {
			g.startRecording()
		}
	case ui.ActionSaveView:
		g.saveViewState(nil)
	}
	g.log.Debug("action", "name", a.String())
}

// toggleMomentumScroll replaces the wheel adapter with one using the other
// scroll mode.
func (g *Viewer) toggleMomentumScroll() {
	opts := g.cfg.Input.Wheel
	opts.MomentumScroll = !g.momentumScroll
	g.v.RemovePlugin(g.wheel)
	w, err := input.Attach[*input.Wheel](g.v, opts)
	if err != nil {
		g.log.Error("attaching wheel", "error", err)
		return
	}
	g.wheel = w
	g.momentumScroll = opts.MomentumScroll
}

// applyPanel pushes slider edits into the viewport options.
func (g *Viewer) applyPanel(state ui.PanelState) {
	o := g.v.Options()
	if state.Deceleration == o.MomentumDeceleration && state.MaxScale == o.MaxScale {
		return
	}
	err := g.v.SetOption(func(o *viewport.Options) {
		o.MomentumDeceleration = state.Deceleration
		o.MaxScale = state.MaxScale
	})
	if err != nil {
		g.log.Warn("rejected panel options", "error", err)
	}
}
