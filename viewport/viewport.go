// Package viewport implements the pan and zoom engine of an artboard: the
// offset and scale state, the interaction state machine, boundary damping,
// and the momentum, scale-momentum and animation integrators advanced once
// per frame by Loop.
//
// A Viewport is not safe for concurrent use. Input adapters and the frame
// driver are expected to call it from one goroutine.
package viewport

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/easing"
	"github.com/pthm-cable/artboard/geom"
)

const (
	coalesceWindow        = 300 // ms between animateOrJump calls that jump instead
	momentumGraceWindow   = 200 // ms after momentum stops that count as scrolling
	boundarySnapTolerance = 0.1
	dampedScaleFactor     = 0.9
)

// Container supplies the page-space rectangle of the element the artboard
// is displayed in.
type Container interface {
	Rect() geom.Rect
}

// StaticContainer is a Container with a fixed rectangle.
type StaticContainer geom.Rect

// Rect implements Container.
func (c StaticContainer) Rect() geom.Rect { return geom.Rect(c) }

// ContainerFunc adapts a function to Container.
type ContainerFunc func() geom.Rect

// Rect implements Container.
func (f ContainerFunc) Rect() geom.Rect { return f() }

// state is owned by the Viewport; callers only ever see copies.
type state struct {
	offset         geom.Coord
	scale          float64
	interaction    Interaction
	momentum       *Momentum
	scaleTarget    *Transform
	animation      *Animation
	touchDirection geom.Direction

	artboardSize  *geom.Size
	containerSize geom.Size
	containerRect geom.Rect

	lastLoopTime float64

	momentumStoppedAt float64
	momentumStopped   bool

	lastAnimateToAt float64
	animatedTo      bool
}

// Viewport is the artboard controller.
type Viewport struct {
	opts      Options
	container Container
	now       clock.Source
	log       *slog.Logger

	state state

	rectUpdatedAt   float64
	resizeApplied   bool
	pendingResize   *geom.Size
	pendingResizeAt float64

	plugins     []*Registration
	initPlugins []PluginDefinition
}

// Option configures New.
type Option func(*Viewport)

// WithOptions replaces the default Options.
func WithOptions(o Options) Option {
	return func(v *Viewport) { v.opts = o }
}

// WithClock sets the millisecond time source.
func WithClock(now clock.Source) Option {
	return func(v *Viewport) { v.now = now }
}

// WithLogger sets the logger for state transitions and anomalies.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewport) { v.log = l }
}

// WithPlugins registers plugins once the viewport is constructed.
func WithPlugins(defs ...PluginDefinition) Option {
	return func(v *Viewport) { v.initPlugins = append(v.initPlugins, defs...) }
}

// New creates a viewport for container.
func New(container Container, opts ...Option) (*Viewport, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: nil container", ErrInvalidOptions)
	}

	v := &Viewport{
		opts:      DefaultOptions(),
		container: container,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.now == nil {
		v.now = clock.Monotonic()
	}
	if err := v.opts.Validate(); err != nil {
		return nil, err
	}

	rect := container.Rect()
	v.state.containerRect = rect
	v.state.containerSize = geom.Size{Width: rect.Width, Height: rect.Height}
	v.rectUpdatedAt = v.now()

	v.state.scale = 1
	if it := v.opts.InitTransform; it != nil {
		v.state.offset = geom.Coord{
			X: geom.AsValidNumber(it.X, 0),
			Y: geom.AsValidNumber(it.Y, 0),
		}
		if s := geom.AsValidNumber(it.Scale, 1); s > 0 {
			v.state.scale = s
		}
	}

	defs := v.initPlugins
	v.initPlugins = nil
	for _, def := range defs {
		if _, err := v.AddPlugin(def); err != nil {
			v.Destroy()
			return nil, fmt.Errorf("init plugin: %w", err)
		}
	}
	return v, nil
}

// Now returns the viewport clock's current time.
func (v *Viewport) Now() float64 {
	return v.now()
}

// Logger returns the viewport logger.
func (v *Viewport) Logger() *slog.Logger {
	return v.log
}

// Options returns a copy of the current options.
func (v *Viewport) Options() Options {
	return v.opts
}

// SetOptions replaces every option.
func (v *Viewport) SetOptions(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	v.opts = o
	return nil
}

// SetOption applies fn to a copy of the options and keeps the result if it
// validates.
func (v *Viewport) SetOption(fn func(*Options)) error {
	o := v.opts
	fn(&o)
	return v.SetOptions(o)
}

// Offset returns the current offset.
func (v *Viewport) Offset() geom.Coord {
	return v.state.offset
}

// FinalOffset returns the target of the running animation, or the current
// offset.
func (v *Viewport) FinalOffset() geom.Coord {
	if a := v.state.animation; a != nil {
		return geom.Coord{X: a.X, Y: a.Y}
	}
	return v.state.offset
}

// Scale returns the current scale.
func (v *Viewport) Scale() float64 {
	return v.state.scale
}

// FinalScale returns the scale the viewport is heading to.
func (v *Viewport) FinalScale() float64 {
	switch {
	case v.state.animation != nil:
		return v.state.animation.Scale
	case v.state.scaleTarget != nil:
		return v.state.scaleTarget.Scale
	}
	return v.state.scale
}

// Interaction returns the current interaction mode.
func (v *Viewport) Interaction() Interaction {
	return v.state.interaction
}

// SetInteraction switches the interaction mode. Leaving a momentum mode for
// a non-momentum one records the stop time.
func (v *Viewport) SetInteraction(i Interaction) {
	s := &v.state
	if s.interaction == i {
		return
	}
	if s.interaction.isMomentum() && !i.isMomentum() {
		v.stampMomentumStop()
	}
	v.log.Debug("interaction changed", "from", s.interaction, "to", i)
	s.interaction = i
}

func (v *Viewport) stampMomentumStop() {
	v.state.momentumStoppedAt = v.now()
	v.state.momentumStopped = true
}

// WasMomentumScrolling reports whether momentum stopped within the last
// 200 ms, so a click ending a fling can be ignored.
func (v *Viewport) WasMomentumScrolling() bool {
	return v.state.momentumStopped && v.now()-v.state.momentumStoppedAt < momentumGraceWindow
}

// TouchDirection returns the locked drag direction.
func (v *Viewport) TouchDirection() geom.Direction {
	return v.state.touchDirection
}

// SetTouchDirection locks the drag direction.
func (v *Viewport) SetTouchDirection(d geom.Direction) {
	v.state.touchDirection = d
}

// Momentum returns a copy of the current momentum.
func (v *Viewport) Momentum() (Momentum, bool) {
	if v.state.momentum == nil {
		return Momentum{}, false
	}
	return *v.state.momentum, true
}

// SetMomentum stores a momentum vector in px/s. Axes disabled by the
// Direction option are zeroed; a deceleration of 0 uses the configured one.
func (v *Viewport) SetMomentum(x, y, deceleration float64) {
	if !v.opts.Direction.AllowsX() {
		x = 0
	}
	if !v.opts.Direction.AllowsY() {
		y = 0
	}
	if deceleration <= 0 {
		deceleration = v.opts.MomentumDeceleration
	}
	v.state.momentum = &Momentum{X: x, Y: y, Deceleration: deceleration}
}

// ClearMomentum drops the momentum vector.
func (v *Viewport) ClearMomentum() {
	v.state.momentum = nil
}

// Animation returns a copy of the running animation.
func (v *Viewport) Animation() (Animation, bool) {
	if v.state.animation == nil {
		return Animation{}, false
	}
	return *v.state.animation, true
}

// CancelAnimation stops any animation and momentum.
func (v *Viewport) CancelAnimation() {
	v.state.animation = nil
	v.state.momentum = nil
}

// ScaleTarget returns a copy of the momentum-zoom target.
func (v *Viewport) ScaleTarget() (Transform, bool) {
	if v.state.scaleTarget == nil {
		return Transform{}, false
	}
	return *v.state.scaleTarget, true
}

// SetScaleTarget sets the transform momentum zoom eases toward. Disabled
// axes target the horizontal center and 0.
func (v *Viewport) SetScaleTarget(x, y, scale float64) {
	if !v.opts.Direction.AllowsX() {
		x = v.CenterX(0)
	}
	if !v.opts.Direction.AllowsY() {
		y = 0
	}
	v.state.scaleTarget = &Transform{X: x, Y: y, Scale: scale}
}

// ArtboardSize returns the unscaled content size, if known.
func (v *Viewport) ArtboardSize() (geom.Size, bool) {
	if v.state.artboardSize == nil {
		return geom.Size{}, false
	}
	return *v.state.artboardSize, true
}

// SetArtboardSize sets the unscaled content size, switching to bounded mode.
func (v *Viewport) SetArtboardSize(width, height float64) {
	v.state.artboardSize = &geom.Size{Width: width, Height: height}
}

// ClearArtboardSize switches to infinite-canvas mode.
func (v *Viewport) ClearArtboardSize() {
	v.state.artboardSize = nil
}

// ContainerSize returns the container size.
func (v *Viewport) ContainerSize() geom.Size {
	return v.state.containerSize
}

// ContainerRect returns the cached page-space container rectangle.
func (v *Viewport) ContainerRect() geom.Rect {
	return v.state.containerRect
}

// Boundaries returns the valid offset range at targetScale, or at the
// current scale when targetScale is 0. Without an artboard size every edge
// is infinite.
func (v *Viewport) Boundaries(targetScale float64) geom.Boundaries {
	s := &v.state
	if s.artboardSize == nil {
		return geom.Unbounded()
	}
	if targetScale <= 0 || math.IsNaN(targetScale) {
		targetScale = s.scale
	}

	width := s.artboardSize.Width * targetScale
	height := s.artboardSize.Height * targetScale
	bounds := v.opts.OverscrollBounds
	cw, ch := s.containerSize.Width, s.containerSize.Height

	return geom.Boundaries{
		XMin: -width + math.Min(bounds.Left, cw/4),
		XMax: cw - math.Min(bounds.Right, cw/4),
		YMin: -height + math.Min(bounds.Top, ch/4),
		YMax: ch - math.Min(bounds.Bottom, ch/4),
	}
}

// CenterX returns the x offset that centers the artboard, scaled by
// targetScale (current scale when 0), in the part of the container not
// covered by blocking rectangles.
func (v *Viewport) CenterX(targetScale float64) float64 {
	s := &v.state
	if s.artboardSize == nil {
		return s.offset.X
	}
	if targetScale <= 0 {
		targetScale = s.scale
	}
	centerX, _ := geom.CalculateCenterPosition(v.opts.blockingRects(), v.container.Rect(), s.artboardSize.Width*targetScale)
	return centerX
}

func (v *Viewport) constrainScale(scale float64) float64 {
	return geom.Clamp(scale, v.opts.MinScale, v.opts.MaxScale)
}

// SetScale sets the scale. Immediate values are clamped to the scale range;
// otherwise out-of-range values are rubber-banded.
func (v *Viewport) SetScale(scale float64, immediate bool) {
	if immediate {
		v.state.scale = v.constrainScale(scale)
		return
	}
	v.state.scale = geom.DampenRelative(scale, v.opts.MinScale, v.opts.MaxScale, dampedScaleFactor)
}

// SetOffset moves the viewport. NaN keeps an axis, as do axes disabled by
// the Direction option. Immediate moves are clamped into the boundaries;
// otherwise overscroll is rubber-banded with SpringDamping.
func (v *Viewport) SetOffset(x, y float64, immediate bool) {
	s := &v.state
	if math.IsNaN(x) || !v.opts.Direction.AllowsX() {
		x = s.offset.X
	}
	if math.IsNaN(y) || !v.opts.Direction.AllowsY() {
		y = s.offset.Y
	}
	b := v.Boundaries(0)

	if immediate {
		s.offset = geom.LimitOffset(x, y, b)
		return
	}
	s.offset = geom.Coord{
		X: geom.DampenRelative(x, b.XMin, b.XMax, v.opts.SpringDamping),
		Y: geom.DampenRelative(y, b.YMin, b.YMax, v.opts.SpringDamping),
	}
}

// SetDirectionOffset applies a drag offset restricted to the locked touch
// direction.
func (v *Viewport) SetDirectionOffset(x, y float64) {
	switch v.state.touchDirection {
	case geom.DirectionVertical:
		v.SetOffset(v.state.offset.X, y, false)
	case geom.DirectionHorizontal:
		v.SetOffset(x, v.state.offset.Y, false)
	default:
		v.SetOffset(x, y, false)
	}
}

// PrepareForDrag stops all motion, enters Dragging and returns the offset a
// drag should be computed from. When the viewport is overscrolled the
// rubber-band damping is undone so the content does not jump under the
// pointer.
func (v *Viewport) PrepareForDrag() geom.Coord {
	s := &v.state
	initial := s.offset
	b := v.Boundaries(0)

	v.CancelAnimation()
	v.SetInteraction(InteractionDragging)
	s.scaleTarget = nil
	s.touchDirection = geom.DirectionNone

	sd := v.opts.SpringDamping
	dampedX := geom.DampenRelative(initial.X, b.XMin, b.XMax, sd)
	dampedY := geom.DampenRelative(initial.Y, b.YMin, b.YMax, sd)
	initial.X += (initial.X - dampedX) / sd
	initial.Y += (initial.Y - dampedY) / sd

	v.SetOffset(initial.X, initial.Y, false)
	return initial
}

// AnimateToBoundary starts a momentum snap-back when the offset lies more
// than 0.1 px outside the boundaries.
func (v *Viewport) AnimateToBoundary() {
	off := v.state.offset
	target := geom.LimitOffset(off.X, off.Y, v.Boundaries(0))

	if math.Abs(target.X-off.X) > boundarySnapTolerance || math.Abs(target.Y-off.Y) > boundarySnapTolerance {
		v.SetMomentum(off.X-target.X, off.Y-target.Y, 0)
		v.SetInteraction(InteractionMomentum)
	}
}

// StartMomentum flings the viewport with velocity (px/s), keeping only the
// axes of the locked touch direction. A zero velocity settles into the
// boundaries instead.
func (v *Viewport) StartMomentum(velocity geom.Coord) {
	if math.Abs(velocity.X)+math.Abs(velocity.Y) == 0 {
		v.state.momentum = nil
		v.SetInteraction(InteractionNone)
		v.AnimateToBoundary()
		return
	}

	td := v.state.touchDirection
	x, y := velocity.X, velocity.Y
	if !td.AllowsX() {
		x = 0
	}
	if !td.AllowsY() {
		y = 0
	}
	v.SetMomentum(x, y, 0)
	v.SetInteraction(InteractionMomentum)
}

// stopMomentum ends any momentum mode. A residual overshoot inside the
// tolerance band is settled exactly; a larger one (after a stalled frame)
// starts a snap-back.
func (v *Viewport) stopMomentum() {
	s := &v.state
	s.momentum = nil
	s.scaleTarget = nil
	s.animation = nil
	v.SetInteraction(InteractionNone)
	s.touchDirection = geom.DirectionNone
	v.stampMomentumStop()

	b := v.Boundaries(0)
	if b.Contains(s.offset, boundaryTolerance) {
		s.offset = geom.LimitOffset(s.offset.X, s.offset.Y, b)
		return
	}
	v.AnimateToBoundary()
}

func (v *Viewport) resolveEasing(o AnimationOptions) (easing.Func, string) {
	if o.EasingFunc != nil {
		return o.EasingFunc, ""
	}
	if fn, ok := easing.Lookup(o.Easing); ok {
		return fn, o.Easing
	}
	v.log.Warn("unknown easing, using default", "easing", o.Easing, "default", defaultEasing)
	return easing.EaseOutCubic, defaultEasing
}

// AnimateTo starts an eased transition to (x, y) at scale (current scale when
// 0). Axes disabled by the Direction option target the horizontal center
// and 0.
func (v *Viewport) AnimateTo(key string, x, y, scale float64, opts AnimationOptions) {
	s := &v.state
	v.SetInteraction(InteractionNone)

	if !v.opts.Direction.AllowsX() {
		x = v.CenterX(scale)
	}
	if !v.opts.Direction.AllowsY() {
		y = 0
	}
	if scale <= 0 || math.IsNaN(scale) {
		scale = s.scale
	}

	opts = opts.withDefaults(defaultEasing, defaultDuration)
	fn, name := v.resolveEasing(opts)

	s.animation = &Animation{
		Key:        key,
		X:          x,
		Y:          y,
		Scale:      scale,
		StartX:     s.offset.X,
		StartY:     s.offset.Y,
		StartScale: s.scale,
		Easing:     fn,
		EasingName: name,
		Duration:   opts.Duration,
	}
	s.momentum = nil
	s.scaleTarget = nil
}

func (v *Viewport) coalescing() bool {
	return v.state.animatedTo && v.now()-v.state.lastAnimateToAt < coalesceWindow
}

func (v *Viewport) stampAnimateTo() {
	v.state.lastAnimateToAt = v.now()
	v.state.animatedTo = true
}

// AnimateOrJumpBy moves by (dx, dy). Calls arriving within 300 ms of the
// previous one jump from the running animation's target instead of starting
// a new animation. NaN deltas count as 0.
func (v *Viewport) AnimateOrJumpBy(dx, dy float64, opts AnimationOptions) {
	s := &v.state
	dx = geom.AsValidNumber(dx, 0)
	dy = geom.AsValidNumber(dy, 0)

	if v.coalescing() {
		from := v.FinalOffset()
		v.SetOffset(from.X+dx, from.Y+dy, true)
		s.animation = nil
	} else {
		limited := geom.LimitOffset(s.offset.X+dx, s.offset.Y+dy, v.Boundaries(0))
		v.AnimateTo("animateOrJumpBy", limited.X, limited.Y, s.scale, opts)
	}
	v.stampAnimateTo()
}

// AnimateOrJumpTo moves to (x, y) with the same coalescing as
// AnimateOrJumpBy. NaN keeps an axis.
func (v *Viewport) AnimateOrJumpTo(x, y float64, opts AnimationOptions) {
	s := &v.state
	x = geom.AsValidNumber(x, s.offset.X)
	y = geom.AsValidNumber(y, s.offset.Y)

	if v.coalescing() {
		v.SetOffset(x, y, true)
		s.animation = nil
	} else {
		v.AnimateTo("animateOrJumpTo", x, y, s.scale, opts)
	}
	v.stampAnimateTo()
}

func (v *Viewport) updateContainerRect(force bool) {
	now := v.now()
	if force || now-v.rectUpdatedAt > v.opts.RootClientRectMaxStale {
		v.state.containerRect = v.container.Rect()
		v.rectUpdatedAt = now
	}
}

// CalculateScaleAroundPoint returns the transform that scales to
// targetScale while keeping the content under the page point p in place.
// It does not change any state.
func (v *Viewport) CalculateScaleAroundPoint(p geom.Coord, targetScale float64) Transform {
	return v.CalculateScaleAroundPointFrom(p, targetScale, v.state.offset, v.state.scale)
}

// CalculateScaleAroundPointFrom is CalculateScaleAroundPoint starting from
// the given offset and scale instead of the current ones.
func (v *Viewport) CalculateScaleAroundPointFrom(p geom.Coord, targetScale float64, offset geom.Coord, scale float64) Transform {
	v.updateContainerRect(false)
	newScale := v.constrainScale(targetScale)
	if scale <= 0 {
		scale = v.state.scale
	}

	rect := v.state.containerRect
	x := p.X - rect.X
	y := p.Y - rect.Y
	contentX := (x - offset.X) / scale
	contentY := (y - offset.Y) / scale

	limited := geom.LimitOffset(-contentX*newScale+x, -contentY*newScale+y, v.Boundaries(newScale))
	return Transform{X: limited.X, Y: limited.Y, Scale: newScale}
}

// ScaleAroundPoint scales immediately around the page point p.
func (v *Viewport) ScaleAroundPoint(p geom.Coord, targetScale float64) {
	t := v.CalculateScaleAroundPoint(p, targetScale)
	v.SetScale(t.Scale, true)
	v.SetOffset(t.X, t.Y, true)
}

// AnimateScaleAroundPoint animates a scale around the page point p.
func (v *Viewport) AnimateScaleAroundPoint(p geom.Coord, targetScale float64, opts AnimationOptions) {
	t := v.CalculateScaleAroundPoint(p, targetScale)
	v.AnimateTo("scaleAroundPoint", t.X, t.Y, t.Scale, opts)
}
