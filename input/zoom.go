package input

import (
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

const (
	tapSlop          = 10  // px
	doubleTapWindow  = 300 // ms
	doubleTapInScale = 6
	doubleTapOutAt   = 3
	zoomDuration     = 500 // ms
	zoomEasing       = "easeInOutExpo"
)

func zoomAnimation(o viewport.AnimationOptions) viewport.AnimationOptions {
	if o.Easing == "" && o.EasingFunc == nil {
		o.Easing = zoomEasing
	}
	if o.Duration <= 0 {
		o.Duration = zoomDuration
	}
	return o
}

// ClickZoomOptions configures click-to-zoom for mouse pointers.
type ClickZoomOptions struct {
	Animation viewport.AnimationOptions `yaml:"animation"`
}

// Init implements viewport.PluginDefinition.
func (o ClickZoomOptions) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	o.Animation = zoomAnimation(o.Animation)
	return &ClickZoom{v: v, opts: o}, nil
}

// ClickZoom toggles between scale 1 and the maximum scale on a click that
// did not move the pointer.
type ClickZoom struct {
	v     *viewport.Viewport
	opts  ClickZoomOptions
	start *geom.Coord
}

// PointerDown records where the click started.
func (c *ClickZoom) PointerDown(e PointerEvent) {
	p := e.Coord()
	c.start = &p
}

// PointerUp zooms around the start point and reports whether it did.
func (c *ClickZoom) PointerUp(e PointerEvent) bool {
	start := c.start
	c.start = nil
	if start == nil || geom.Distance(*start, e.Coord()) > tapSlop {
		return false
	}
	if c.v.WasMomentumScrolling() {
		return false
	}
	c.v.AnimateScaleAroundPoint(*start, c.targetScale(), c.opts.Animation)
	return true
}

func (c *ClickZoom) targetScale() float64 {
	maxScale := c.v.Options().MaxScale
	current := c.v.FinalScale()
	if current < 1 || current >= maxScale*0.5 {
		return 1
	}
	return maxScale
}

// DoubleTapZoomOptions configures double-tap-to-zoom for touch input.
type DoubleTapZoomOptions struct {
	Animation viewport.AnimationOptions `yaml:"animation"`
}

// Init implements viewport.PluginDefinition.
func (o DoubleTapZoomOptions) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	o.Animation = zoomAnimation(o.Animation)
	return &DoubleTapZoom{v: v, opts: o}, nil
}

// DoubleTapZoom toggles between scale 1 and 6 on two quick taps. A tap that
// stops a fling does not count as the first tap because the offset moved in
// between.
type DoubleTapZoom struct {
	v    *viewport.Viewport
	opts DoubleTapZoomOptions

	startAt     float64
	startOffset *geom.Coord
}

// Start handles touches being placed and reports whether it zoomed.
func (d *DoubleTapZoom) Start(touches []TouchPoint) bool {
	if len(touches) != 1 {
		return false
	}
	now := d.v.Now()
	if d.startOffset != nil && now-d.startAt < doubleTapWindow &&
		geom.Distance(*d.startOffset, d.v.Offset()) < tapSlop {
		d.startOffset = nil
		target := 1.0
		if d.v.FinalScale() < doubleTapOutAt {
			target = doubleTapInScale
		}
		d.v.AnimateScaleAroundPoint(geom.Coord{X: touches[0].X, Y: touches[0].Y}, target, d.opts.Animation)
		return true
	}

	off := d.v.Offset()
	d.startAt = now
	d.startOffset = &off
	return false
}
