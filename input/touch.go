package input

import (
	"math"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/gesture"
	"github.com/pthm-cable/artboard/viewport"
)

const (
	carryOverVelocity  = 200 // px/s of momentum that keeps the direction lock
	carryOverWindow    = 300 // ms
	pinchLiftWindow    = 200 // ms after a pinch in which lifting does not fling
	overscaleDuration  = 300 // ms
	overscaleEasing    = "easeOutBack"
	overscaleAnimation = "touchScaleBoundaries"
)

// DefaultTouchVelocity is the release-velocity tuning for touch drags.
func DefaultTouchVelocity() gesture.VelocityOptions {
	return gesture.VelocityOptions{
		MaxTimeWindow: 210,
		MinVelocity:   20,
		MaxVelocity:   5000,
		Multiplicator: 1.35,
	}
}

// TouchOptions configures touch dragging and pinch zoom.
type TouchOptions struct {
	// TwoFingerScrolling ignores single-finger drags.
	TwoFingerScrolling bool `yaml:"two_finger_scrolling"`
	// Velocity overrides non-zero fields of DefaultTouchVelocity.
	Velocity gesture.VelocityOptions `yaml:"velocity"`
	// DirectionThreshold is the angular tolerance in degrees (20 when 0).
	DirectionThreshold float64 `yaml:"direction_threshold"`
	// OverscaleAnimation is used to bring a pinch past the scale limits
	// back into range (easeOutBack over 300 ms by default).
	OverscaleAnimation viewport.AnimationOptions `yaml:"overscale_animation"`
}

// Init implements viewport.PluginDefinition.
func (o TouchOptions) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	if o.DirectionThreshold <= 0 {
		o.DirectionThreshold = defaultDirectionThreshold
	}
	if o.OverscaleAnimation.Easing == "" && o.OverscaleAnimation.EasingFunc == nil {
		o.OverscaleAnimation.Easing = overscaleEasing
	}
	if o.OverscaleAnimation.Duration <= 0 {
		o.OverscaleAnimation.Duration = overscaleDuration
	}
	return &Touch{
		v:         v,
		opts:      o,
		velocity:  gesture.NewVelocityQueue(DefaultTouchVelocity(), v.Now),
		direction: gesture.NewDirectionQueue(o.DirectionThreshold, v.Now),
		pinchFrom: 1,
	}, nil
}

// Touch handles one-finger drags with momentum and two-finger pinch zoom.
type Touch struct {
	v         *viewport.Viewport
	opts      TouchOptions
	velocity  *gesture.VelocityQueue
	direction *gesture.DirectionQueue

	pinchFrom    float64
	initialScale float64

	// tracking is false until a drag has been started from a move.
	tracking      bool
	initialPoint  geom.Coord
	initialOffset geom.Coord
	lastTouch     *geom.Coord

	scaleMidpoint *geom.Coord
	lastScaleAt   float64
	scaled        bool

	startDirection geom.Direction
	startAt        float64
}

// carriedDirection keeps the lock of a fast fling the new touch interrupts,
// so repeated swipes along one axis stay on it.
func (t *Touch) carriedDirection() geom.Direction {
	if t.v.Interaction() != viewport.InteractionMomentum {
		return geom.DirectionNone
	}
	d := t.v.TouchDirection()
	if d != geom.DirectionVertical && d != geom.DirectionHorizontal {
		return geom.DirectionNone
	}
	m, ok := t.v.Momentum()
	if !ok || math.Abs(m.X)+math.Abs(m.Y) < carryOverVelocity {
		return geom.DirectionNone
	}
	return d
}

func (t *Touch) dragStart(touches []TouchPoint) {
	t.startDirection = t.carriedDirection()
	last := touches[len(touches)-1]
	p := geom.Coord{X: last.X, Y: last.Y}
	t.lastTouch = &p
	t.initialPoint = p
	t.tracking = true
	t.startAt = t.v.Now()
	t.initialOffset = t.v.PrepareForDrag()
	t.initialScale = t.v.Scale()
	t.velocity.Init(t.opts.Velocity)
}

// Start handles touches being placed; touches are all active fingers.
func (t *Touch) Start(touches []TouchPoint) {
	switch {
	case len(touches) == 1 && !t.opts.TwoFingerScrolling:
		t.dragStart(touches)
		t.direction.Reset()
		mid := geom.Midpoint(touchCoords(touches)...)
		t.velocity.Add(mid)
		t.direction.Add(mid)
	case len(touches) == 2:
		t.velocity.Init(t.opts.Velocity)
		t.direction.Reset()
		pts := touchCoords(touches)
		t.pinchFrom = math.Max(geom.Distance(pts[0], pts[1]), 1)
		t.initialScale = t.v.Scale()
	}
}

// Move handles finger movement; touches are all active fingers.
func (t *Touch) Move(touches []TouchPoint) {
	if len(touches) == 0 || (t.opts.TwoFingerScrolling && len(touches) != 2) {
		return
	}
	if t.lastTouch == nil || !t.tracking {
		t.dragStart(touches)
		return
	}

	now := t.v.Now()
	pts := touchCoords(touches)
	mid := geom.Midpoint(pts...)
	t.velocity.Add(mid)

	if len(touches) >= 2 {
		t.pinch(pts, mid, now)
		return
	}

	t.v.SetInteraction(viewport.InteractionDragging)
	if t.v.TouchDirection() == geom.DirectionNone {
		if t.startDirection != geom.DirectionNone && now-t.startAt <= carryOverWindow {
			t.v.SetTouchDirection(t.startDirection)
		} else {
			t.direction.Add(mid)
			if d, ok := t.direction.Direction(true); ok {
				t.v.SetTouchDirection(d)
			}
		}
	}
	t.v.SetDirectionOffset(
		t.initialOffset.X+mid.X-t.initialPoint.X,
		t.initialOffset.Y+mid.Y-t.initialPoint.Y,
	)
	t.lastTouch = &mid
}

func (t *Touch) pinch(pts []geom.Coord, mid geom.Coord, now float64) {
	v := t.v
	if v.Interaction() != viewport.InteractionScaling {
		v.SetInteraction(viewport.InteractionScaling)
		m := mid
		t.lastTouch = &m
	}
	t.velocity.Init(t.opts.Velocity)

	scale := v.Scale()
	offset := v.Offset()
	lm := local(v, mid)
	focal := geom.Coord{X: (lm.X - offset.X) / scale, Y: (lm.Y - offset.Y) / scale}

	v.SetScale(t.initialScale*geom.Distance(pts[0], pts[1])/t.pinchFrom, false)
	updated := v.Scale()

	diff := mid.Sub(*t.lastTouch)
	v.SetOffset(lm.X-focal.X*updated+diff.X, lm.Y-focal.Y*updated+diff.Y, true)

	t.scaleMidpoint = &lm
	t.lastTouch = &mid
	t.lastScaleAt = now
	t.scaled = true
}

// End handles fingers being lifted. remaining are the fingers still down,
// lifted the ones that were just released.
func (t *Touch) End(remaining, lifted []TouchPoint) {
	v := t.v
	if len(lifted) > 2 {
		return
	}
	if len(remaining) <= 1 && t.scaleMidpoint != nil {
		t.applyScaleBoundaries(*t.scaleMidpoint)
	}

	if v.Interaction() == viewport.InteractionScaling && len(remaining) == 1 {
		v.SetTouchDirection(geom.DirectionBoth)
		v.SetInteraction(viewport.InteractionDragging)
		t.tracking = false
		t.initialOffset = v.Offset()
		p := geom.Coord{X: remaining[0].X, Y: remaining[0].Y}
		t.lastTouch = &p
		t.lastScaleAt = v.Now()
		t.scaled = true
		t.initialScale = v.Scale()
		return
	}
	if len(remaining) != 0 {
		return
	}

	v.SetInteraction(viewport.InteractionNone)
	if !t.tracking || t.lastTouch == nil {
		return
	}
	t.tracking = false
	t.scaleMidpoint = nil

	if t.scaled && v.Now()-t.lastScaleAt < pinchLiftWindow {
		if _, animating := v.Animation(); !animating {
			v.StartMomentum(geom.Coord{})
		}
		return
	}

	mid := *t.lastTouch
	if len(lifted) > 0 {
		mid = geom.Midpoint(touchCoords(lifted)...)
	}
	if v.TouchDirection() == geom.DirectionNone {
		t.direction.Add(mid)
		if d, ok := t.direction.Direction(true); ok {
			v.SetTouchDirection(d)
		}
	}
	t.velocity.Add(mid)
	v.StartMomentum(t.velocity.Velocity())
}

// applyScaleBoundaries animates a pinch that ended past the scale limits
// back to the nearest limit around the pinch midpoint (container
// coordinates).
func (t *Touch) applyScaleBoundaries(mid geom.Coord) {
	v := t.v
	opts := v.Options()
	scale := v.Scale()
	if scale >= opts.MinScale && scale <= opts.MaxScale {
		return
	}

	offset := v.Offset()
	targetX := (mid.X - offset.X) / scale
	targetY := (mid.Y - offset.Y) / scale
	target := opts.MinScale
	if scale > opts.MaxScale {
		target = opts.MaxScale
	}

	t.lastTouch = nil
	t.tracking = false
	v.AnimateTo(overscaleAnimation,
		-targetX*target+mid.X,
		-targetY*target+mid.Y,
		target,
		t.opts.OverscaleAnimation,
	)
}

// Destroy implements viewport.Destroyer.
func (t *Touch) Destroy() {
	t.tracking = false
	t.lastTouch = nil
	t.scaleMidpoint = nil
	t.velocity.Reset()
	t.direction.Reset()
}
