// Package sticky pins an overlay element to a point of the artboard. The
// element follows the artboard while it pans and zooms without scaling
// itself, and can be kept inside the container.
package sticky

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

const defaultOrigin = "top-left"

// Anchor is the artboard point an element sticks to: either a named origin
// such as "bottom-right", resolved against the artboard size, or a point in
// artboard units.
type Anchor struct {
	Name  string
	Point geom.Coord
}

// Named returns an anchor for a "vertical-horizontal" origin name.
func Named(name string) Anchor { return Anchor{Name: name} }

// At returns an anchor for a point in artboard units.
func At(x, y float64) Anchor { return Anchor{Point: geom.Coord{X: x, Y: y}} }

type anchorPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// UnmarshalYAML implements yaml.Unmarshaler. A scalar is an origin name, a
// mapping an x/y point.
func (a *Anchor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*a = Anchor{Name: node.Value}
		return nil
	}
	var p anchorPoint
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("sticky position: %w", err)
	}
	*a = At(p.X, p.Y)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a Anchor) MarshalYAML() (any, error) {
	if a.Name != "" {
		return a.Name, nil
	}
	return anchorPoint{X: a.Point.X, Y: a.Point.Y}, nil
}

// Options configures a sticky element.
type Options struct {
	Disabled bool   `yaml:"disabled"`
	Position Anchor `yaml:"position"`
	// Origin is the point of the element placed on the anchor, e.g.
	// "bottom-left" puts the element above the anchor.
	Origin string `yaml:"origin"`
	// Margin is added on the edges named by Origin and kept free with
	// KeepVisible.
	Margin      geom.Edges `yaml:"margin"`
	KeepVisible bool       `yaml:"keep_visible"`
	// Precision rounds the position; 0 disables rounding.
	Precision float64 `yaml:"precision"`
	// Size of the element in px.
	Size geom.Size `yaml:"size"`
}

// DefaultOptions returns an element whose top-left corner sticks to the
// top-left of the artboard.
func DefaultOptions() Options {
	return Options{
		Position:  Named(defaultOrigin),
		Origin:    defaultOrigin,
		Precision: 0.5,
	}
}

// Compute returns the container position of the element's top-left corner
// for one snapshot. Named anchors collapse to the artboard origin in
// infinite-canvas mode.
func Compute(o Options, snap viewport.Snapshot) geom.Coord {
	originName := o.Origin
	if originName == "" {
		originName = defaultOrigin
	}
	origin := geom.ParseOrigin(originName)

	var art geom.Size
	if snap.HasArtboardSize {
		art = geom.Size{Width: snap.ArtboardSize.Width * snap.Scale, Height: snap.ArtboardSize.Height * snap.Scale}
	}

	var p geom.Coord
	if o.Position.Name != "" {
		named := geom.ParseOrigin(o.Position.Name)
		p = geom.Coord{X: named.X * art.Width, Y: named.Y * art.Height}
	} else {
		p = geom.Coord{X: o.Position.Point.X * snap.Scale, Y: o.Position.Point.Y * snap.Scale}
	}

	m := o.Margin
	x := p.X + snap.Offset.X + edgeMargin(origin.X, m.Left, m.Right) - o.Size.Width*origin.X
	y := p.Y + snap.Offset.Y + edgeMargin(origin.Y, m.Top, m.Bottom) - o.Size.Height*origin.Y

	if o.KeepVisible {
		c := snap.ContainerSize
		x = min(max(x, m.Left), c.Width-o.Size.Width-m.Right)
		y = min(max(y, m.Top), c.Height-o.Size.Height-m.Bottom)
	}

	return geom.Coord{
		X: geom.WithPrecision(x, o.Precision),
		Y: geom.WithPrecision(y, o.Precision),
	}
}

// edgeMargin pushes a start-anchored element away from the start and an
// end-anchored one away from the end. Centered elements get no margin.
func edgeMargin(origin, start, end float64) float64 {
	switch origin {
	case 0:
		return start
	case 1:
		return -end
	}
	return 0
}

// Init implements viewport.PluginDefinition.
func (o Options) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	return &Sticky{opts: o}, nil
}

// Sticky is the sticky element plugin. It recomputes the position every
// frame while enabled.
type Sticky struct {
	opts   Options
	pos    geom.Coord
	placed bool
}

// Loop implements viewport.Looper.
func (s *Sticky) Loop(snap viewport.Snapshot) {
	if s.opts.Disabled {
		return
	}
	s.pos = Compute(s.opts, snap)
	s.placed = true
}

// Position returns the element position of the last frame. It reports false
// while the element is disabled or before the first frame.
func (s *Sticky) Position() (geom.Coord, bool) {
	if s.opts.Disabled || !s.placed {
		return geom.Coord{}, false
	}
	return s.pos, true
}

// SetAnchor moves the element to another anchor from the next frame on.
func (s *Sticky) SetAnchor(a Anchor) {
	s.opts.Position = a
}

// SetEnabled turns position updates on or off.
func (s *Sticky) SetEnabled(enabled bool) {
	s.opts.Disabled = !enabled
}

// Size returns the element size.
func (s *Sticky) Size() geom.Size { return s.opts.Size }

// Resize sets the element size.
func (s *Sticky) Resize(size geom.Size) {
	s.opts.Size = size
}

// OnSizeChange implements viewport.SizeChangeHandler for size reports
// targeting this element.
func (s *Sticky) OnSizeChange(target any, size geom.Size) {
	if target == any(s) {
		s.Resize(size)
	}
}
