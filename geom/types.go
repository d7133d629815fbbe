// Package geom provides the geometry types and numeric helpers shared by the
// viewport engine: clamping, interpolation, overscroll damping and direction
// classification.
package geom

import "math"

// Coord is a point or vector in container pixels.
type Coord struct {
	X, Y float64
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Mul scales both components.
func (c Coord) Mul(s float64) Coord {
	return Coord{X: c.X * s, Y: c.Y * s}
}

// IsZero reports whether both components are zero.
func (c Coord) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Coord) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Boundaries is the valid offset range of the viewport.
type Boundaries struct {
	XMin, XMax, YMin, YMax float64
}

// Unbounded returns boundaries that accept any offset (infinite canvas).
func Unbounded() Boundaries {
	return Boundaries{
		XMin: math.Inf(-1),
		XMax: math.Inf(1),
		YMin: math.Inf(-1),
		YMax: math.Inf(1),
	}
}

// IsUnbounded reports whether all four edges are infinite.
func (b Boundaries) IsUnbounded() bool {
	return math.IsInf(b.XMin, -1) && math.IsInf(b.XMax, 1) &&
		math.IsInf(b.YMin, -1) && math.IsInf(b.YMax, 1)
}

// Contains reports whether c lies within the boundaries widened by tolerance.
func (b Boundaries) Contains(c Coord, tolerance float64) bool {
	return c.X >= b.XMin-tolerance && c.X <= b.XMax+tolerance &&
		c.Y >= b.YMin-tolerance && c.Y <= b.YMax+tolerance
}

// Edges holds one value per side, e.g. margins or overscroll bounds.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// UniformEdges returns edges with the same value on every side.
func UniformEdges(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}
