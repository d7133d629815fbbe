// Package camera maps between artboard content coordinates and screen
// coordinates for one rendered frame of a viewport.
package camera

import (
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

// DefaultPrecision is the step offsets are rounded to before drawing.
const DefaultPrecision = 0.5

// Camera is the render transform of a single frame.
// Content point (x, y) is drawn at Origin + Offset + (x*ScaleX, y*ScaleY).
type Camera struct {
	// Origin is the screen position of the container's top-left corner.
	Origin geom.Coord

	// Offset of the artboard inside the container.
	OffsetX, OffsetY float64

	// ScaleX and ScaleY are equal unless the camera was quantized with
	// scale precision.
	ScaleX, ScaleY float64

	// Viewport dimensions (container size).
	ViewportW, ViewportH float64

	// Artboard size, if known.
	ArtboardW, ArtboardH float64
	HasArtboard          bool
}

// FromSnapshot creates the camera for a frame whose container sits at
// origin on screen.
func FromSnapshot(s viewport.Snapshot, origin geom.Coord) *Camera {
	return &Camera{
		Origin:      origin,
		OffsetX:     s.Offset.X,
		OffsetY:     s.Offset.Y,
		ScaleX:      s.Scale,
		ScaleY:      s.Scale,
		ViewportW:   s.ContainerSize.Width,
		ViewportH:   s.ContainerSize.Height,
		ArtboardW:   s.ArtboardSize.Width,
		ArtboardH:   s.ArtboardSize.Height,
		HasArtboard: s.HasArtboardSize,
	}
}

// Quantize rounds the offset up to multiples of precision. With
// adjustScale the per-axis scale is nudged so the drawn artboard size is a
// multiple of precision too, which keeps edges from shimmering while
// animating.
func (c *Camera) Quantize(precision float64, adjustScale bool) {
	c.OffsetX = geom.WithPrecision(c.OffsetX, precision)
	c.OffsetY = geom.WithPrecision(c.OffsetY, precision)
	if adjustScale && c.HasArtboard {
		c.ScaleX = geom.AdjustScaleForPrecision(c.ArtboardW, c.ScaleX, precision)
		c.ScaleY = geom.AdjustScaleForPrecision(c.ArtboardH, c.ScaleY, precision)
	}
}

// ContentToScreen converts content coordinates to screen coordinates.
func (c *Camera) ContentToScreen(x, y float64) (sx, sy float64) {
	sx = c.Origin.X + c.OffsetX + x*c.ScaleX
	sy = c.Origin.Y + c.OffsetY + y*c.ScaleY
	return sx, sy
}

// ScreenToContent converts screen coordinates to content coordinates.
func (c *Camera) ScreenToContent(sx, sy float64) (x, y float64) {
	x = (sx - c.Origin.X - c.OffsetX) / c.ScaleX
	y = (sy - c.Origin.Y - c.OffsetY) / c.ScaleY
	return x, y
}

// ContentRectToScreen converts a content rectangle to screen space.
func (c *Camera) ContentRectToScreen(r geom.Rect) geom.Rect {
	x, y := c.ContentToScreen(r.X, r.Y)
	return geom.Rect{X: x, Y: y, Width: r.Width * c.ScaleX, Height: r.Height * c.ScaleY}
}

// VisibleContentBounds returns the content-space rectangle covered by the
// viewport.
func (c *Camera) VisibleContentBounds() geom.Rect {
	x, y := c.ScreenToContent(c.Origin.X, c.Origin.Y)
	return geom.Rect{X: x, Y: y, Width: c.ViewportW / c.ScaleX, Height: c.ViewportH / c.ScaleY}
}

// IsVisible reports whether a content rectangle grown by margin (content
// units) overlaps the viewport. Used for culling.
func (c *Camera) IsVisible(r geom.Rect, margin float64) bool {
	r.X -= margin
	r.Y -= margin
	r.Width += margin * 2
	r.Height += margin * 2
	return c.VisibleContentBounds().Intersects(r)
}

// Tracker is a viewport plugin that keeps the camera of the latest frame.
type Tracker struct {
	// Origin is the container's screen position.
	Origin geom.Coord
	// Precision is passed to Quantize when positive.
	Precision float64
	// ScalePrecision also quantizes the scale.
	ScalePrecision bool

	cam *Camera
}

// Init implements viewport.PluginDefinition.
func (t *Tracker) Init(*viewport.Viewport) (viewport.Plugin, error) {
	t.cam = &Camera{ScaleX: 1, ScaleY: 1}
	return t, nil
}

// Loop implements viewport.Looper.
func (t *Tracker) Loop(s viewport.Snapshot) {
	cam := FromSnapshot(s, t.Origin)
	if t.Precision > 0 {
		cam.Quantize(t.Precision, t.ScalePrecision)
	}
	t.cam = cam
}

// Camera returns the camera of the latest frame.
func (t *Tracker) Camera() *Camera {
	return t.cam
}
