package geom

import "math"

// Clamp restricts v to [min, max].
func Clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Dampen pulls a value that lies outside [min, max] back toward the violated
// edge, keeping factor of the overshoot.
func Dampen(v, min, max, factor float64) float64 {
	if v < min {
		return min + (v-min)*factor
	}
	if v > max {
		return max + (v-max)*factor
	}
	return v
}

// DampenRelative is a saturating variant of Dampen: the kept overshoot
// shrinks as the overshoot grows relative to the width of the range. This is
// the rubber band used while dragging and pinching.
func DampenRelative(v, min, max, factor float64) float64 {
	if v < min {
		overshoot := v - min
		return min + (overshoot*factor)/(1+math.Abs(overshoot)/(max-min))
	}
	if v > max {
		overshoot := v - max
		return max + (overshoot*factor)/(1+math.Abs(overshoot)/(max-min))
	}
	return v
}

// LimitOffset hard-clamps both axes into the boundaries.
func LimitOffset(x, y float64, b Boundaries) Coord {
	return Coord{
		X: Clamp(x, b.XMin, b.XMax),
		Y: Clamp(y, b.YMin, b.YMax),
	}
}

// WithPrecision rounds v up to the next multiple of step.
func WithPrecision(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step) * step
}

// AdjustScaleForPrecision returns a scale close to currentScale at which
// size*scale lands on a multiple of precision.
func AdjustScaleForPrecision(size, currentScale, precision float64) float64 {
	if size == 0 || precision <= 0 {
		return currentScale
	}
	scaled := size * currentScale
	target := math.Round(scaled/precision) * precision
	return target / size
}

// AsValidNumber returns v, or def when v is NaN.
func AsValidNumber(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Coord) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint returns the first point, or the midpoint of the first two points
// when at least two are given. It returns the zero Coord for no points.
func Midpoint(points ...Coord) Coord {
	switch len(points) {
	case 0:
		return Coord{}
	case 1:
		return points[0]
	}
	return Coord{
		X: (points[0].X + points[1].X) / 2,
		Y: (points[0].Y + points[1].Y) / 2,
	}
}
