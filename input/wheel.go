package input

import (
	"math"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/gesture"
	"github.com/pthm-cable/artboard/viewport"
)

const (
	wheelZoomScale        = 0.0008
	momentumScrollGain    = 9.6
	momentumScrollDecel   = 0.9
	defaultWheelZoomSpeed = 1.2
)

// WheelOptions configures wheel scrolling and zooming.
type WheelOptions struct {
	// ScrollSpeed multiplies scroll deltas (1 when 0).
	ScrollSpeed float64 `yaml:"scroll_speed"`
	// ZoomFactor scales ctrl/meta wheel zoom (1.2 when 0).
	ZoomFactor float64 `yaml:"zoom_factor"`
	// MomentumScroll turns deltas into momentum instead of direct moves.
	MomentumScroll bool `yaml:"momentum_scroll"`
	// MomentumZoom eases zoom steps through the scale target instead of
	// applying them at once.
	MomentumZoom bool `yaml:"momentum_zoom"`
}

// Init implements viewport.PluginDefinition.
func (o WheelOptions) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	if o.ScrollSpeed <= 0 {
		o.ScrollSpeed = 1
	}
	if o.ZoomFactor <= 0 {
		o.ZoomFactor = defaultWheelZoomSpeed
	}
	return &Wheel{v: v, opts: o, normalizer: gesture.NewWheelNormalizer()}, nil
}

// WheelEvent is a wheel event at a page position.
type WheelEvent struct {
	gesture.WheelEvent
	X, Y float64
}

// Wheel scrolls on wheel and trackpad input and zooms while ctrl or meta is
// held.
type Wheel struct {
	v          *viewport.Viewport
	opts       WheelOptions
	normalizer *gesture.WheelNormalizer
}

// Normalizer exposes the axis-lock state.
func (w *Wheel) Normalizer() *gesture.WheelNormalizer { return w.normalizer }

// Handle applies one wheel event.
func (w *Wheel) Handle(e WheelEvent) {
	v := w.v
	if e.Timestamp == 0 {
		e.Timestamp = v.Now()
	}

	if e.Ctrl || e.Meta {
		v.CancelAnimation()
		w.zoom(geom.Coord{X: e.X, Y: e.Y}, -e.DeltaY)
		return
	}

	d := w.normalizer.Normalize(e.WheelEvent)
	speed := w.opts.ScrollSpeed

	if w.opts.MomentumScroll {
		m, _ := v.Momentum()
		v.SetInteraction(viewport.InteractionMomentum)
		v.SetMomentum(
			m.X-d.X*speed*momentumScrollGain,
			m.Y-d.Y*speed*momentumScrollGain,
			momentumScrollDecel,
		)
		return
	}

	offset := v.Offset()
	v.CancelAnimation()
	v.SetInteraction(viewport.InteractionNone)
	v.SetOffset(offset.X-d.X*speed, offset.Y-d.Y*speed, true)
}

func (w *Wheel) zoom(p geom.Coord, delta float64) {
	v := w.v
	factor := math.Exp(delta * w.opts.ZoomFactor * wheelZoomScale)

	if !w.opts.MomentumZoom {
		v.ScaleAroundPoint(p, v.Scale()*factor)
		return
	}

	var t viewport.Transform
	if target, ok := v.ScaleTarget(); ok && v.Interaction() == viewport.InteractionMomentumScaling {
		t = v.CalculateScaleAroundPointFrom(p, target.Scale*factor, geom.Coord{X: target.X, Y: target.Y}, target.Scale)
	} else {
		t = v.CalculateScaleAroundPoint(p, v.Scale()*factor)
	}
	v.SetScaleTarget(t.X, t.Y, t.Scale)
	v.SetInteraction(viewport.InteractionMomentumScaling)
}

// Destroy implements viewport.Destroyer.
func (w *Wheel) Destroy() {
	w.normalizer.Reset()
}
