package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/artboard/geom"
)

// ErrInvalidOptions is returned when options fail validation.
var ErrInvalidOptions = errors.New("invalid viewport options")

// Transform is an offset plus scale.
type Transform struct {
	X, Y  float64
	Scale float64
}

// Options configures a Viewport.
type Options struct {
	MinScale float64
	MaxScale float64

	// ScrollStepAmount is the distance of one arrow-key scroll step.
	ScrollStepAmount float64

	// Margin is kept around content by ScrollToTop, ScrollToEnd and
	// ScrollIntoView.
	Margin float64

	MomentumDeceleration float64
	SpringDamping        float64

	// Direction restricts which axes may move.
	Direction geom.Direction

	// OverscrollBounds is how far content may be dragged past each edge.
	OverscrollBounds geom.Edges

	// InitTransform is applied once by New. NaN fields keep the defaults
	// (offset 0, scale 1).
	InitTransform *Transform

	// RootClientRectMaxStale is how long (ms) the cached container rectangle
	// is trusted before it is read again.
	RootClientRectMaxStale float64

	// BlockingRects returns page-space rectangles that cover part of the
	// container, used for obstruction-aware horizontal centering.
	BlockingRects func() []geom.Rect
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MinScale:               0.1,
		MaxScale:               5,
		ScrollStepAmount:       256,
		Margin:                 20,
		MomentumDeceleration:   0.96,
		SpringDamping:          0.5,
		Direction:              geom.DirectionBoth,
		OverscrollBounds:       geom.UniformEdges(30),
		RootClientRectMaxStale: 5000,
	}
}

// Validate checks that every field is usable by the integrators.
func (o Options) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(finite(o.MinScale) && o.MinScale > 0, "min scale must be positive, got %v", o.MinScale)
	check(finite(o.MaxScale) && o.MaxScale >= o.MinScale, "max scale %v below min scale %v", o.MaxScale, o.MinScale)
	check(finite(o.ScrollStepAmount) && o.ScrollStepAmount > 0, "scroll step must be positive, got %v", o.ScrollStepAmount)
	check(finite(o.Margin) && o.Margin >= 0, "margin must not be negative, got %v", o.Margin)
	check(o.MomentumDeceleration > 0 && o.MomentumDeceleration <= 1, "momentum deceleration must be in (0,1], got %v", o.MomentumDeceleration)
	check(o.SpringDamping > 0 && o.SpringDamping <= 1, "spring damping must be in (0,1], got %v", o.SpringDamping)
	check(o.Direction <= geom.DirectionBoth, "unknown direction %v", o.Direction)
	check(o.RootClientRectMaxStale >= 0, "root rect max stale must not be negative, got %v", o.RootClientRectMaxStale)

	b := o.OverscrollBounds
	for _, e := range []float64{b.Top, b.Right, b.Bottom, b.Left} {
		check(finite(e) && e >= 0, "overscroll bounds must be non-negative, got %v", e)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
}

func (o Options) blockingRects() []geom.Rect {
	if o.BlockingRects == nil {
		return nil
	}
	return o.BlockingRects()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
