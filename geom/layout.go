package geom

import (
	"math"
	"strings"
)

// PartialEdges holds optional per-edge values where nil (or NaN) means "use the
// default".
type PartialEdges struct {
	Top, Right, Bottom, Left *float64
}

// ParseEdges fills every missing or NaN edge of p with def.
func ParseEdges(p *PartialEdges, def float64) Edges {
	if p == nil {
		return UniformEdges(def)
	}
	pick := func(v *float64) float64 {
		if v == nil || math.IsNaN(*v) {
			return def
		}
		return *v
	}
	return Edges{
		Top:    pick(p.Top),
		Right:  pick(p.Right),
		Bottom: pick(p.Bottom),
		Left:   pick(p.Left),
	}
}

// CalculateCenterPosition finds the horizontal center of the part of the
// viewport that is not covered by blocking rectangles (toolbars, side panels)
// and returns the x offset that centers widthToPlace in it, plus the width of
// the unobstructed span.
//
// A rectangle only counts as blocking when it sits more than 1/7 of the
// viewport width away from the viewport center.
func CalculateCenterPosition(blocking []Rect, viewport Rect, widthToPlace float64) (centerX, availableWidth float64) {
	viewportCenterX := (viewport.X + viewport.Width) / 2
	threshold := viewport.Width / 7

	left := viewport.X
	for _, r := range blocking {
		if r.X < viewportCenterX && viewportCenterX-r.X > threshold && r.Right() > left {
			left = r.Right()
		}
	}

	right := viewport.Width + viewport.X
	for _, r := range blocking {
		if r.X > viewportCenterX && r.X-viewportCenterX > threshold && r.X < right {
			right = r.X
		}
	}

	centerX = (left+right)/2 - widthToPlace/2 - viewport.X
	return centerX, right - left
}

// ParseOrigin converts "vertical-horizontal" names such as "top-left" or
// "center-center" into fractional coordinates.
func ParseOrigin(origin string) Coord {
	vertical, horizontal, _ := strings.Cut(origin, "-")

	var c Coord
	switch horizontal {
	case "left":
		c.X = 0
	case "center":
		c.X = 0.5
	default:
		c.X = 1
	}
	switch vertical {
	case "top":
		c.Y = 0
	case "center":
		c.Y = 0.5
	default:
		c.Y = 1
	}
	return c
}
