package scrollbar

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

const thumb = 600.0 / 1400 * 600

func snapshot(y float64) viewport.Snapshot {
	return viewport.Snapshot{
		ContainerSize: geom.Size{Width: 800, Height: 600},
		Offset:        geom.Coord{Y: y},
		Scale:         1,
		Boundaries:    geom.Boundaries{XMin: -200, XMax: 0, YMin: -1400, YMax: 0},
	}
}

func track() Options {
	o := DefaultOptions()
	o.Length = 600
	return o
}

func TestComputeThumb(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   float64
	}{
		{"start", 0, 0},
		{"middle", -700, (600 - thumb) / 2},
		{"end", -1400, 600 - thumb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compute(track(), snapshot(tt.offset))
			require.True(t, l.Scrollable)
			assert.InDelta(t, thumb, l.ThumbSize, 1e-9)
			assert.InDelta(t, tt.want, l.ThumbOffset, 1e-9)
			assert.Equal(t, 0.0, l.Max)
			assert.Equal(t, 1400.0, l.Range)
		})
	}
}

func TestComputeOverscrollShrinksThumb(t *testing.T) {
	l := Compute(track(), snapshot(200))
	assert.InDelta(t, thumb-50, l.ThumbSize, 1e-9)
	assert.Equal(t, 0.0, l.ThumbOffset)

	l = Compute(track(), snapshot(-1600))
	assert.InDelta(t, thumb-50, l.ThumbSize, 1e-9)
	assert.InDelta(t, 600-(thumb-50), l.ThumbOffset, 1e-9)

	l = Compute(track(), snapshot(-5000))
	assert.InDelta(t, thumb-100, l.ThumbSize, 1e-9, "shrinking stops at 400 px")
}

func TestComputeMinThumb(t *testing.T) {
	snap := snapshot(0)
	snap.Boundaries.YMin = -100000
	l := Compute(track(), snap)
	assert.Equal(t, 32.0, l.ThumbSize)

	o := track()
	o.Length = 20
	l = Compute(o, snap)
	assert.Equal(t, 20.0, l.ThumbSize, "the thumb never outgrows the track")
	assert.Equal(t, 0.0, l.ThumbOffset)
}

func TestComputeHorizontal(t *testing.T) {
	o := Options{Orientation: OrientationX, MinThumbSize: 32, Length: 1000}
	snap := snapshot(0)
	snap.Offset.X = -100
	l := Compute(o, snap)
	require.True(t, l.Scrollable)
	assert.InDelta(t, 720, l.ThumbSize, 1e-9, "capped at 90% of the container")
	assert.InDelta(t, 140, l.ThumbOffset, 1e-9)
	assert.Equal(t, 200.0, l.Range)
}

func TestComputeNotScrollable(t *testing.T) {
	unbounded := snapshot(0)
	unbounded.Boundaries = geom.Unbounded()
	empty := snapshot(0)
	empty.Boundaries.YMin = 0
	noTrack := track()
	noTrack.Length = 0

	assert.False(t, Compute(track(), unbounded).Scrollable)
	assert.False(t, Compute(track(), empty).Scrollable)
	assert.False(t, Compute(noTrack, snapshot(0)).Scrollable)
	assert.False(t, Compute(track(), viewport.Snapshot{}).Scrollable)
}

func TestOrientationYAML(t *testing.T) {
	var o Options
	require.NoError(t, yaml.Unmarshal([]byte("orientation: x\nmin_thumb_size: 10\n"), &o))
	assert.Equal(t, OrientationX, o.Orientation)
	assert.Equal(t, 10.0, o.MinThumbSize)

	assert.Error(t, yaml.Unmarshal([]byte("orientation: z\n"), &o))

	out, err := yaml.Marshal(Options{Orientation: OrientationX})
	require.NoError(t, err)
	assert.Contains(t, string(out), "orientation: x")
}

func newScrollbar(t *testing.T, o Options) (*viewport.Viewport, *Scrollbar, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(1000)
	v, err := viewport.New(viewport.StaticContainer{Width: 800, Height: 600},
		viewport.WithClock(clk.Source()),
		viewport.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	v.SetArtboardSize(1000, 2000)
	v.SetOffset(0, 0, true)
	p, err := v.AddPlugin(o)
	require.NoError(t, err)
	v.Loop(clk.Now())
	return v, p.(*Scrollbar), clk
}

func TestScrollbarTrackPages(t *testing.T) {
	v, s, _ := newScrollbar(t, track())
	l := s.Layout()
	require.True(t, l.Scrollable)
	// Container 600 px, offsets -1970..570.
	assert.InDelta(t, 600.0/2540*600, l.ThumbSize, 1e-9)

	require.NoError(t, s.PointerDown(l.ThumbOffset+l.ThumbSize+10))
	assert.False(t, s.Dragging())
	a, ok := v.Animation()
	require.True(t, ok)
	assert.Equal(t, -600.0, a.Y)
	assert.Equal(t, 0.0, a.X)
}

func TestScrollbarTrackPagesBack(t *testing.T) {
	v, s, _ := newScrollbar(t, track())
	require.NoError(t, s.PointerDown(1))
	a, ok := v.Animation()
	require.True(t, ok)
	assert.Equal(t, 570.0, a.Y, "page scrolls stay within the boundaries")
}

func TestScrollbarHorizontalPages(t *testing.T) {
	o := track()
	o.Orientation = OrientationX
	v, s, _ := newScrollbar(t, o)
	l := s.Layout()
	require.NoError(t, s.PointerDown(l.ThumbOffset+l.ThumbSize+10))
	a, ok := v.Animation()
	require.True(t, ok)
	assert.Equal(t, -800.0, a.X)
	assert.Equal(t, 0.0, a.Y)
}

func TestScrollbarThumbDrag(t *testing.T) {
	v, s, _ := newScrollbar(t, track())
	v.AnimateTo("test", -300, -300, 1, viewport.AnimationOptions{})

	grab := s.Layout().ThumbOffset + 5
	require.True(t, s.OnThumb(grab))
	require.NoError(t, s.PointerDown(grab))
	assert.True(t, s.Dragging())
	_, animating := v.Animation()
	assert.False(t, animating)
	assert.Equal(t, viewport.InteractionNone, v.Interaction())

	s.PointerMove(grab + 1000)
	assert.InDelta(t, -1970, v.Offset().Y, 1e-9)
	assert.Equal(t, 0.0, v.Offset().X)

	s.PointerMove(grab - 1000)
	assert.InDelta(t, 570, v.Offset().Y, 1e-9)

	s.PointerUp()
	assert.False(t, s.Dragging())
	s.PointerMove(grab + 1000)
	assert.InDelta(t, 570, v.Offset().Y, 1e-9, "moves after release are ignored")
}

func TestScrollbarDragHalfway(t *testing.T) {
	v, s, _ := newScrollbar(t, track())
	l := s.Layout()
	maxThumb := 600 - l.ThumbSize
	grab := l.ThumbOffset + 1
	require.NoError(t, s.PointerDown(grab))

	s.PointerMove(grab + maxThumb/2 - l.ThumbOffset)
	assert.InDelta(t, 570-2540.0/2, v.Offset().Y, 1e-6)
}

func TestScrollbarInfiniteCanvas(t *testing.T) {
	v, s, clk := newScrollbar(t, track())
	v.ClearArtboardSize()
	v.Loop(clk.Advance(16))
	assert.False(t, s.Layout().Scrollable)
	assert.ErrorIs(t, s.PointerDown(10), ErrNotScrollable)
	assert.False(t, s.Dragging())
}

func TestScrollbarResize(t *testing.T) {
	v, s, clk := newScrollbar(t, track())
	v.NotifySizeChange(s, geom.Size{Width: 12, Height: 300})
	v.NotifySizeChange("other", geom.Size{Width: 1, Height: 1})
	v.Loop(clk.Advance(16))

	l := s.Layout()
	progress := 1 - 1970.0/2540
	assert.InDelta(t, progress*(300-l.ThumbSize), l.ThumbOffset, 1e-9)
	assert.False(t, math.IsNaN(l.ThumbOffset))
}
