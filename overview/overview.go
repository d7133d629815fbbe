// Package overview lays out a minimap of the artboard: the artboard fitted
// into a box and the currently visible area drawn on top of it. Clicking the
// minimap centers the view there; dragging the visible area pans.
package overview

import (
	"errors"
	"math"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

// ErrUnknownArtboardSize is returned in infinite-canvas mode, or for an
// artboard with no area, where there is nothing to fit.
var ErrUnknownArtboardSize = errors.New("overview needs an artboard size")

const minAvailable = 1 // px the padding may never eat into

// Options configures an overview.
type Options struct {
	// Size is the overview box. With AutoHeight only the width is used.
	Size geom.Size `yaml:"size"`
	// Padding is kept around the fitted artboard; it shrinks when the box
	// is too small to hold it.
	Padding float64 `yaml:"padding"`
	// AutoHeight derives the box height from the artboard aspect ratio.
	AutoHeight bool `yaml:"auto_height"`
}

// DefaultOptions returns a 200x150 box with 20 px padding.
func DefaultOptions() Options {
	return Options{Size: geom.Size{Width: 200, Height: 150}, Padding: 20}
}

// Layout is one frame of the overview, in overview pixels unless noted.
type Layout struct {
	// Height of the box; differs from Options.Size with AutoHeight.
	Height float64
	// Scale maps artboard units to overview pixels.
	Scale float64
	// Artboard is the fitted artboard.
	Artboard geom.Rect
	// Visible is the visible area drawn over the artboard.
	Visible geom.Rect
	// VisibleArea is the visible area in artboard units.
	VisibleArea geom.Rect
}

// Compute lays out the overview for one snapshot.
func Compute(o Options, snap viewport.Snapshot) (Layout, error) {
	if !snap.HasArtboardSize {
		return Layout{}, ErrUnknownArtboardSize
	}
	art := snap.ArtboardSize
	if art.Width <= 0 || art.Height <= 0 {
		return Layout{}, ErrUnknownArtboardSize
	}
	width := o.Size.Width
	height := o.Size.Height
	if o.AutoHeight {
		height = (width-o.Padding*2)/(art.Width/art.Height) + o.Padding*2
	}

	padX := adjustPadding(o.Padding, width)
	padY := adjustPadding(o.Padding, height)
	availW := width - padX*2
	availH := height - padY*2

	scale := availH / art.Height
	if art.Width/art.Height > availW/availH {
		scale = availW / art.Width
	}

	artboard := geom.Rect{
		Width:  art.Width * scale,
		Height: art.Height * scale,
	}
	artboard.X = padX + (availW-artboard.Width)/2
	artboard.Y = padY + (availH-artboard.Height)/2

	area := geom.Rect{
		X:      -snap.Offset.X / snap.Scale,
		Y:      -snap.Offset.Y / snap.Scale,
		Width:  snap.ContainerSize.Width / snap.Scale,
		Height: snap.ContainerSize.Height / snap.Scale,
	}

	return Layout{
		Height:   height,
		Scale:    scale,
		Artboard: artboard,
		Visible: geom.Rect{
			X:      artboard.X + area.X*scale,
			Y:      artboard.Y + area.Y*scale,
			Width:  area.Width * scale,
			Height: area.Height * scale,
		},
		VisibleArea: area,
	}, nil
}

func adjustPadding(padding, extent float64) float64 {
	maxTotal := extent - minAvailable
	if padding*2 <= maxTotal {
		return padding
	}
	return math.Max(1, padding*maxTotal/(padding*2))
}

// Init implements viewport.PluginDefinition.
func (o Options) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	return &Overview{v: v, opts: o, err: ErrUnknownArtboardSize}, nil
}

// Overview is the minimap plugin. It recomputes its layout every frame.
type Overview struct {
	v    *viewport.Viewport
	opts Options

	layout    Layout
	viewScale float64
	err       error

	dragging       bool
	dragStart      geom.Coord
	initialVisible geom.Coord
}

// Loop implements viewport.Looper.
func (o *Overview) Loop(snap viewport.Snapshot) {
	layout, err := Compute(o.opts, snap)
	if err != nil {
		if o.err == nil {
			o.v.Logger().Warn("overview disabled", "err", err)
		}
		o.err = err
		return
	}
	o.layout = layout
	o.viewScale = snap.Scale
	o.err = nil
}

// Layout returns the layout of the last frame.
func (o *Overview) Layout() (Layout, error) {
	return o.layout, o.err
}

// Resize sets the overview box size.
func (o *Overview) Resize(size geom.Size) {
	o.opts.Size = size
}

// OnSizeChange implements viewport.SizeChangeHandler for size reports
// targeting this overview.
func (o *Overview) OnSizeChange(target any, size geom.Size) {
	if target == any(o) {
		o.Resize(size)
	}
}

// OnVisible reports whether the overview point p lies on the visible area.
func (o *Overview) OnVisible(p geom.Coord) bool {
	return o.err == nil && o.layout.Visible.Contains(p)
}

// PointerDown starts a drag at the overview point p. A press outside the
// visible area first centers the view on it.
func (o *Overview) PointerDown(p geom.Coord) error {
	if o.err != nil {
		return o.err
	}
	o.v.CancelAnimation()
	o.v.SetInteraction(viewport.InteractionNone)

	if !o.dragging && !o.OnVisible(p) {
		o.center(p)
	}

	o.dragging = true
	o.dragStart = p
	offset := o.v.Offset()
	o.initialVisible = geom.Coord{X: -offset.X / o.viewScale, Y: -offset.Y / o.viewScale}
	return nil
}

func (o *Overview) center(p geom.Coord) {
	l := o.layout
	x := (p.X-l.Artboard.X)/l.Scale - l.VisibleArea.Width/2
	y := (p.Y-l.Artboard.Y)/l.Scale - l.VisibleArea.Height/2
	o.v.SetOffset(-x*o.viewScale, -y*o.viewScale, true)
}

// PointerMove pans by the drag distance converted to artboard units.
func (o *Overview) PointerMove(p geom.Coord) {
	if !o.dragging {
		return
	}
	l := o.layout
	x := o.initialVisible.X + (p.X-o.dragStart.X)/l.Scale
	y := o.initialVisible.Y + (p.Y-o.dragStart.Y)/l.Scale
	o.v.SetOffset(-x*o.viewScale, -y*o.viewScale, true)
}

// PointerUp ends the drag.
func (o *Overview) PointerUp() {
	o.dragging = false
}

// Dragging reports whether the visible area is being dragged.
func (o *Overview) Dragging() bool { return o.dragging }
