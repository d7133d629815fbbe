// Package scrollbar lays out a scrollbar for one axis of the viewport. The
// thumb covers the visible share of the scrollable range and shrinks while
// the view is overscrolled. Pressing the track scrolls a page; dragging the
// thumb scrolls to the matching offset.
package scrollbar

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

// ErrNotScrollable is returned for presses while the axis has no finite
// scroll range.
var ErrNotScrollable = errors.New("scrollbar has nothing to scroll")

const (
	maxThumbShare    = 0.9
	overscrollRange  = 400 // px of overscroll until the thumb stops shrinking
	overscrollShrink = 100 // px the thumb loses at full overscroll
)

// Orientation is the axis a scrollbar follows.
type Orientation uint8

const (
	OrientationY Orientation = iota
	OrientationX
)

func (o Orientation) String() string {
	switch o {
	case OrientationY:
		return "y"
	case OrientationX:
		return "x"
	}
	return fmt.Sprintf("Orientation(%d)", o)
}

// ParseOrientation parses "x" or "y".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "y", "":
		return OrientationY, nil
	case "x":
		return OrientationX, nil
	}
	return OrientationY, fmt.Errorf("unknown orientation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Options configures a scrollbar.
type Options struct {
	Orientation  Orientation `yaml:"orientation"`
	MinThumbSize float64     `yaml:"min_thumb_size"`
	// Length of the track in px.
	Length float64 `yaml:"length"`
	// Animation is used for the page scrolls of track presses.
	Animation viewport.AnimationOptions `yaml:"animation"`
}

// DefaultOptions returns a vertical 300 px track with a 32 px minimum thumb.
func DefaultOptions() Options {
	return Options{MinThumbSize: 32, Length: 300}
}

// Layout is one frame of the scrollbar in track pixels.
type Layout struct {
	Scrollable  bool
	ThumbSize   float64
	ThumbOffset float64
	// Max is the offset with the thumb at the start of the track and Range
	// the offset span the whole track covers.
	Max, Range float64
}

func axis(o Orientation, snap viewport.Snapshot) (root, offset, lo, hi float64) {
	b := snap.Boundaries
	if o == OrientationX {
		return snap.ContainerSize.Width, snap.Offset.X, b.XMin, b.XMax
	}
	return snap.ContainerSize.Height, snap.Offset.Y, b.YMin, b.YMax
}

// Compute lays out the scrollbar for one snapshot. Infinite or empty scroll
// ranges are not scrollable.
func Compute(o Options, snap viewport.Snapshot) Layout {
	root, offset, lo, hi := axis(o.Orientation, snap)
	size := hi - lo
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(size > 0) || root <= 0 || o.Length <= 0 {
		return Layout{}
	}

	minThumb := math.Min(o.MinThumbSize, o.Length)
	thumb := math.Min(math.Max(math.Min(root/size*root, root*maxThumbShare), minThumb), o.Length)
	scrollTop := size - (offset - lo)
	progress := 1 - (offset-lo)/size
	thumbOffset := geom.Clamp01(progress) * (o.Length - thumb)

	switch {
	case progress < 0:
		over := math.Abs(math.Max(scrollTop, -overscrollRange)) / overscrollRange
		thumb = math.Max(thumb-overscrollShrink*over, minThumb)
		thumbOffset = 0
	case progress > 1:
		over := math.Min(scrollTop-size, overscrollRange) / overscrollRange
		thumb = math.Max(thumb-overscrollShrink*over, minThumb)
		thumbOffset = o.Length - thumb
	}

	return Layout{
		Scrollable:  true,
		ThumbSize:   thumb,
		ThumbOffset: thumbOffset,
		Max:         hi,
		Range:       size,
	}
}

// Init implements viewport.PluginDefinition.
func (o Options) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	return &Scrollbar{v: v, opts: o}, nil
}

// Scrollbar is the scrollbar plugin. It recomputes its layout every frame.
type Scrollbar struct {
	v      *viewport.Viewport
	opts   Options
	layout Layout

	dragging   bool
	dragStart  float64
	thumbStart float64
}

// Loop implements viewport.Looper.
func (s *Scrollbar) Loop(snap viewport.Snapshot) {
	s.layout = Compute(s.opts, snap)
}

// Layout returns the layout of the last frame.
func (s *Scrollbar) Layout() Layout { return s.layout }

// Orientation returns the axis the scrollbar follows.
func (s *Scrollbar) Orientation() Orientation { return s.opts.Orientation }

// Resize sets the track length.
func (s *Scrollbar) Resize(length float64) {
	s.opts.Length = length
}

// OnSizeChange implements viewport.SizeChangeHandler. The track length is
// the height of vertical and the width of horizontal scrollbars.
func (s *Scrollbar) OnSizeChange(target any, size geom.Size) {
	if target != any(s) {
		return
	}
	if s.opts.Orientation == OrientationX {
		s.Resize(size.Width)
	} else {
		s.Resize(size.Height)
	}
}

// OnThumb reports whether the track position pos lies on the thumb.
func (s *Scrollbar) OnThumb(pos float64) bool {
	l := s.layout
	return l.Scrollable && pos >= l.ThumbOffset && pos <= l.ThumbOffset+l.ThumbSize
}

// PointerDown handles a press at track position pos: on the thumb it starts
// a drag, elsewhere it scrolls a page towards the press.
func (s *Scrollbar) PointerDown(pos float64) error {
	if !s.layout.Scrollable {
		return ErrNotScrollable
	}
	if !s.OnThumb(pos) {
		s.page(pos < s.layout.ThumbOffset)
		return nil
	}
	s.v.CancelAnimation()
	s.v.SetInteraction(viewport.InteractionNone)
	s.dragging = true
	s.dragStart = pos
	s.thumbStart = s.layout.ThumbOffset
	return nil
}

func (s *Scrollbar) page(back bool) {
	a := s.opts.Animation
	switch {
	case s.opts.Orientation == OrientationX && back:
		s.v.ScrollPageLeft(a)
	case s.opts.Orientation == OrientationX:
		s.v.ScrollPageRight(a)
	case back:
		s.v.ScrollPageUp(a)
	default:
		s.v.ScrollPageDown(a)
	}
}

// PointerMove moves the thumb by the drag distance and scrolls to the
// offset it stands for.
func (s *Scrollbar) PointerMove(pos float64) {
	if !s.dragging {
		return
	}
	l := s.layout
	maxThumb := s.opts.Length - l.ThumbSize
	if maxThumb <= 0 {
		return
	}
	t := geom.Clamp(s.thumbStart+pos-s.dragStart, 0, maxThumb)
	offset := l.Max - t/maxThumb*l.Range
	if s.opts.Orientation == OrientationX {
		s.v.SetOffset(offset, math.NaN(), true)
	} else {
		s.v.SetOffset(math.NaN(), offset, true)
	}
}

// PointerUp ends the drag.
func (s *Scrollbar) PointerUp() {
	s.dragging = false
}

// Dragging reports whether the thumb is being dragged.
func (s *Scrollbar) Dragging() bool { return s.dragging }
