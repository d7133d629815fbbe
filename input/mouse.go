package input

import (
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/gesture"
	"github.com/pthm-cable/artboard/viewport"
)

// DefaultMouseVelocity is the release-velocity tuning for mouse drags.
func DefaultMouseVelocity() gesture.VelocityOptions {
	return gesture.VelocityOptions{
		MaxTimeWindow: 200,
		MinVelocity:   300,
		MaxVelocity:   6000,
		Multiplicator: 1.2,
	}
}

// MouseOptions configures mouse dragging.
type MouseOptions struct {
	// UseSpacebar only allows primary-button drags while space is held.
	UseSpacebar bool `yaml:"use_spacebar"`
	// Velocity overrides non-zero fields of DefaultMouseVelocity.
	Velocity gesture.VelocityOptions `yaml:"velocity"`
	// DirectionThreshold is the angular tolerance in degrees for locking a
	// drag to one axis (20 when 0).
	DirectionThreshold float64 `yaml:"direction_threshold"`
}

// Init implements viewport.PluginDefinition.
func (o MouseOptions) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	if o.DirectionThreshold <= 0 {
		o.DirectionThreshold = defaultDirectionThreshold
	}
	return &Mouse{
		v:        v,
		opts:     o,
		velocity: gesture.NewVelocityQueue(DefaultMouseVelocity(), v.Now),
	}, nil
}

// Mouse drags the viewport with the primary or secondary button and flings
// it on release.
type Mouse struct {
	v        *viewport.Viewport
	opts     MouseOptions
	velocity *gesture.VelocityQueue

	space         bool
	dragging      bool
	initialPoint  geom.Coord
	initialOffset geom.Coord
}

// KeyDown tracks the space key.
func (m *Mouse) KeyDown(e KeyEvent) {
	if e.Code == "Space" {
		m.space = true
	}
}

// KeyUp tracks the space key.
func (m *Mouse) KeyUp(e KeyEvent) {
	if e.Code == "Space" {
		m.space = false
	}
}

// PressingSpace reports whether space is held.
func (m *Mouse) PressingSpace() bool { return m.space }

// Dragging reports whether a drag is in progress.
func (m *Mouse) Dragging() bool { return m.dragging }

func (m *Mouse) canDrag() bool {
	return m.space || !m.opts.UseSpacebar
}

// PointerDown stops any momentum and starts a drag for the primary button
// (when dragging is allowed) or the secondary button (unless space is
// held). It reports whether a drag started.
func (m *Mouse) PointerDown(e PointerEvent) bool {
	m.v.ClearMomentum()

	if !(e.Buttons == ButtonPrimary && m.canDrag()) && !(e.Buttons == ButtonSecondary && !m.space) {
		return false
	}
	m.velocity.Init(m.opts.Velocity)
	m.initialOffset = m.v.PrepareForDrag()
	m.initialPoint = e.Coord()
	m.dragging = true
	return true
}

// PointerMove follows the pointer, locking the drag direction on the first
// move.
func (m *Mouse) PointerMove(e PointerEvent) {
	if !m.dragging {
		return
	}
	if m.opts.UseSpacebar && !m.space {
		m.PointerUp(e)
		return
	}

	p := e.Coord()
	m.velocity.Add(p)
	if m.v.TouchDirection() == geom.DirectionNone {
		m.v.SetTouchDirection(geom.GetDirection(p, m.initialPoint, m.opts.DirectionThreshold))
	}
	m.v.SetDirectionOffset(
		m.initialOffset.X+p.X-m.initialPoint.X,
		m.initialOffset.Y+p.Y-m.initialPoint.Y,
	)
}

// PointerUp ends the drag and starts momentum with the release velocity.
func (m *Mouse) PointerUp(e PointerEvent) {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.velocity.Add(e.Coord())
	m.v.StartMomentum(m.velocity.Velocity())
}

// SuppressClick reports whether a click should be swallowed because it
// stopped a fling or happened during a space drag.
func (m *Mouse) SuppressClick() bool {
	return m.space ||
		m.v.Interaction() == viewport.InteractionMomentum ||
		m.v.WasMomentumScrolling()
}

// Destroy implements viewport.Destroyer.
func (m *Mouse) Destroy() {
	m.dragging = false
	m.space = false
	m.velocity.Reset()
}
