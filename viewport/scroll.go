package viewport

import (
	"fmt"
	"math"

	"github.com/pthm-cable/artboard/geom"
)

const (
	zoomStepBase         = 1.5
	shortDuration        = 300 // ms
	scrollIntoViewEasing = "easeInOutExpo"
)

// ScaleMode picks the scale ScrollIntoView ends at.
type ScaleMode uint8

const (
	// ScaleModeNone scrolls at scale 1.
	ScaleModeNone ScaleMode = iota
	// ScaleModeFull fits the target into the container minus the margin.
	ScaleModeFull
	// ScaleModeBlocking fits the target into the part of the container not
	// covered by blocking rectangles and centers the artboard there.
	ScaleModeBlocking
)

// Behavior picks how ScrollIntoView moves.
type Behavior uint8

const (
	// BehaviorAuto animates unless an animation is already running.
	BehaviorAuto Behavior = iota
	BehaviorSmooth
	BehaviorInstant
)

// Axis restricts which axes ScrollIntoView centers.
type Axis uint8

const (
	AxisBoth Axis = iota
	AxisX
	AxisY
)

// ScrollIntoViewOptions configures ScrollIntoView. The animation defaults
// are easeInOutExpo over 300 ms.
type ScrollIntoViewOptions struct {
	Scale    ScaleMode
	Behavior Behavior
	Axis     Axis
	AnimationOptions
}

// ParseScaleMode parses "none", "full" or "blocking".
func ParseScaleMode(s string) (ScaleMode, error) {
	switch s {
	case "", "none":
		return ScaleModeNone, nil
	case "full":
		return ScaleModeFull, nil
	case "blocking":
		return ScaleModeBlocking, nil
	}
	return ScaleModeNone, fmt.Errorf("unknown scale mode %q", s)
}

func (m ScaleMode) String() string {
	switch m {
	case ScaleModeNone:
		return "none"
	case ScaleModeFull:
		return "full"
	case ScaleModeBlocking:
		return "blocking"
	}
	return fmt.Sprintf("ScaleMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m ScaleMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ScaleMode) UnmarshalText(text []byte) error {
	parsed, err := ParseScaleMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ScrollUp scrolls content down by amount (ScrollStepAmount when 0).
func (v *Viewport) ScrollUp(amount float64, opts AnimationOptions) {
	v.AnimateOrJumpBy(0, v.step(amount, 1), opts)
}

// ScrollDown scrolls content up by amount (ScrollStepAmount when 0).
func (v *Viewport) ScrollDown(amount float64, opts AnimationOptions) {
	v.AnimateOrJumpBy(0, v.step(amount, -1), opts)
}

// ScrollLeft scrolls content right by amount (ScrollStepAmount when 0).
func (v *Viewport) ScrollLeft(amount float64, opts AnimationOptions) {
	v.AnimateOrJumpBy(v.step(amount, 1), 0, opts)
}

// ScrollRight scrolls content left by amount (ScrollStepAmount when 0).
func (v *Viewport) ScrollRight(amount float64, opts AnimationOptions) {
	v.AnimateOrJumpBy(v.step(amount, -1), 0, opts)
}

func (v *Viewport) step(amount, sign float64) float64 {
	if amount != 0 {
		return amount
	}
	return sign * v.opts.ScrollStepAmount
}

func (v *Viewport) ScrollPageUp(opts AnimationOptions) {
	v.AnimateOrJumpBy(0, v.state.containerSize.Height, opts)
}

func (v *Viewport) ScrollPageDown(opts AnimationOptions) {
	v.AnimateOrJumpBy(0, -v.state.containerSize.Height, opts)
}

func (v *Viewport) ScrollPageLeft(opts AnimationOptions) {
	v.AnimateOrJumpBy(v.state.containerSize.Width, 0, opts)
}

func (v *Viewport) ScrollPageRight(opts AnimationOptions) {
	v.AnimateOrJumpBy(-v.state.containerSize.Width, 0, opts)
}

// ScrollToTop moves the top of the artboard to the margin.
func (v *Viewport) ScrollToTop(opts AnimationOptions) {
	v.AnimateOrJumpTo(math.NaN(), v.opts.Margin, opts)
}

// ScrollToEnd moves the bottom of the artboard to the margin. It does
// nothing in infinite-canvas mode.
func (v *Viewport) ScrollToEnd(opts AnimationOptions) {
	size, ok := v.ArtboardSize()
	if !ok {
		return
	}
	y := -size.Height*v.state.scale + v.state.containerSize.Height - v.opts.Margin
	v.AnimateOrJumpTo(math.NaN(), y, opts)
}

// ZoomIn zooms in one step around the container center.
func (v *Viewport) ZoomIn() { v.Zoom(1) }

// ZoomOut zooms out one step around the container center.
func (v *Viewport) ZoomOut() { v.Zoom(-1) }

// Zoom scales by sqrt(1.5) in the direction of delta's sign around the
// container center.
func (v *Viewport) Zoom(delta float64) {
	factor := math.Pow(zoomStepBase, sign(delta)/2)
	rect := v.container.Rect()
	center := geom.Coord{X: rect.X + rect.Width/2, Y: rect.Y + rect.Height/2}
	v.ScaleAroundPoint(center, v.state.scale*factor)
}

// ResetZoom animates back to scale 1. An artboard shorter than the
// container is centered; otherwise the content at the vertical center stays
// there. Without an artboard size it scales around the container center.
func (v *Viewport) ResetZoom(opts AnimationOptions) {
	if opts.Duration <= 0 {
		opts.Duration = shortDuration
	}

	s := &v.state
	if s.artboardSize == nil {
		rect := v.container.Rect()
		center := geom.Coord{X: rect.X + rect.Width/2, Y: rect.Y + rect.Height/2}
		v.AnimateScaleAroundPoint(center, 1, opts)
		return
	}

	container := s.containerSize
	artboard := *s.artboardSize

	if artboard.Height < container.Height {
		y := container.Height/2 - artboard.Height/2
		v.AnimateTo("resetZoom", v.CenterX(1), y, 1, opts)
		return
	}

	viewportCenterY := container.Height / 2
	contentCenterY := (-s.offset.Y + viewportCenterY) / s.scale
	bounds := v.opts.OverscrollBounds
	y := math.Min(
		math.Max(-contentCenterY+viewportCenterY, -artboard.Height+container.Height-bounds.Top),
		bounds.Top+bounds.Bottom,
	)
	v.AnimateTo("resetZoom", v.CenterX(1), y, 1, opts)
}

// ScaleToFit fits the whole artboard, avoiding blocking rectangles. The
// scale mode in opts is ignored.
func (v *Viewport) ScaleToFit(opts ScrollIntoViewOptions) {
	size, ok := v.ArtboardSize()
	if !ok {
		return
	}
	opts.Scale = ScaleModeBlocking
	v.ScrollIntoView(geom.Rect{Width: size.Width, Height: size.Height}, opts)
}

// ScrollIntoView centers the unscaled artboard rectangle target in the
// container.
func (v *Viewport) ScrollIntoView(target geom.Rect, opts ScrollIntoViewOptions) {
	s := &v.state
	container := s.containerSize
	margin := v.opts.Margin

	targetScale := 1.0
	switch opts.Scale {
	case ScaleModeFull:
		scaleX := (container.Width - margin*2) / target.Width
		scaleY := (container.Height - margin*2) / target.Height
		targetScale = math.Min(math.Min(scaleX, scaleY), v.opts.MaxScale)
	case ScaleModeBlocking:
		_, available := geom.CalculateCenterPosition(v.opts.blockingRects(), v.container.Rect(), target.Width)
		scaleX := (available - margin*2) / target.Width
		scaleY := (container.Height - margin*2) / target.Height
		targetScale = math.Min(math.Min(scaleX, scaleY), v.opts.MaxScale)
	}

	scrollX := opts.Axis == AxisBoth || opts.Axis == AxisX
	scrollY := opts.Axis == AxisBoth || opts.Axis == AxisY

	x := s.offset.X
	switch {
	case opts.Scale == ScaleModeBlocking:
		x = v.CenterX(targetScale)
	case scrollX:
		x = -(target.X * targetScale) + (container.Width-target.Width*targetScale)/2
	}
	y := s.offset.Y
	if scrollY {
		y = -(target.Y * targetScale) + (container.Height-target.Height*targetScale)/2
	}

	if opts.Behavior == BehaviorSmooth || (opts.Behavior == BehaviorAuto && s.animation == nil) {
		anim := opts.AnimationOptions.withDefaults(scrollIntoViewEasing, shortDuration)
		v.AnimateTo("scrollIntoView", x, y, targetScale, anim)
		return
	}

	v.CancelAnimation()
	v.SetScale(targetScale, true)
	v.SetOffset(x, y, true)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
