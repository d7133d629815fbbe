package overview

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

func snapshot() viewport.Snapshot {
	return viewport.Snapshot{
		ContainerSize:   geom.Size{Width: 800, Height: 600},
		ArtboardSize:    geom.Size{Width: 1000, Height: 2000},
		HasArtboardSize: true,
		Scale:           1,
	}
}

func TestComputeFitsArtboard(t *testing.T) {
	l, err := Compute(DefaultOptions(), snapshot())
	require.NoError(t, err)

	assert.Equal(t, 150.0, l.Height)
	assert.InDelta(t, 0.055, l.Scale, 1e-12)
	assert.InDelta(t, 72.5, l.Artboard.X, 1e-9)
	assert.InDelta(t, 20, l.Artboard.Y, 1e-9)
	assert.InDelta(t, 55, l.Artboard.Width, 1e-9)
	assert.InDelta(t, 110, l.Artboard.Height, 1e-9)
	assert.InDelta(t, 44, l.Visible.Width, 1e-9)
	assert.InDelta(t, 33, l.Visible.Height, 1e-9)
	assert.Equal(t, geom.Rect{Width: 800, Height: 600}, l.VisibleArea)
}

func TestComputeEmptyArtboard(t *testing.T) {
	for _, size := range []geom.Size{{Width: 1000}, {Height: 2000}, {Width: -5, Height: 10}} {
		snap := snapshot()
		snap.ArtboardSize = size
		_, err := Compute(DefaultOptions(), snap)
		assert.ErrorIs(t, err, ErrUnknownArtboardSize, "size %v", size)

		o := DefaultOptions()
		o.AutoHeight = true
		_, err = Compute(o, snap)
		assert.ErrorIs(t, err, ErrUnknownArtboardSize, "auto height, size %v", size)
	}
}

func TestComputeVisibleAreaFollowsTransform(t *testing.T) {
	snap := snapshot()
	snap.Offset = geom.Coord{X: -200, Y: -400}
	snap.Scale = 2

	l, err := Compute(DefaultOptions(), snap)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 100, Y: 200, Width: 400, Height: 300}, l.VisibleArea)
	assert.InDelta(t, 72.5+100*0.055, l.Visible.X, 1e-9)
	assert.InDelta(t, 20+200*0.055, l.Visible.Y, 1e-9)
}

func TestComputeAutoHeight(t *testing.T) {
	o := DefaultOptions()
	o.AutoHeight = true
	l, err := Compute(o, snapshot())
	require.NoError(t, err)

	assert.InDelta(t, 360, l.Height, 1e-9)
	assert.InDelta(t, 0.16, l.Scale, 1e-12)
	assert.InDelta(t, 20, l.Artboard.X, 1e-9)
	assert.InDelta(t, 20, l.Artboard.Y, 1e-9)
}

func TestComputeShrinksPadding(t *testing.T) {
	o := Options{Size: geom.Size{Width: 30, Height: 150}, Padding: 20}
	l, err := Compute(o, snapshot())
	require.NoError(t, err)
	// 29 px of the 30 px width may be padding.
	assert.InDelta(t, 14.5, l.Artboard.X, 1e-9)
	assert.InDelta(t, 1, l.Artboard.Width, 1e-9)
}

func TestComputeInfiniteCanvas(t *testing.T) {
	snap := snapshot()
	snap.HasArtboardSize = false
	_, err := Compute(DefaultOptions(), snap)
	assert.ErrorIs(t, err, ErrUnknownArtboardSize)
}

func newOverview(t *testing.T, withArtboard bool) (*viewport.Viewport, *Overview, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(1000)
	v, err := viewport.New(viewport.StaticContainer{Width: 800, Height: 600},
		viewport.WithClock(clk.Source()),
		viewport.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	if withArtboard {
		v.SetArtboardSize(1000, 2000)
	}
	p, err := v.AddPlugin(DefaultOptions())
	require.NoError(t, err)
	v.Loop(clk.Now())
	return v, p.(*Overview), clk
}

func TestOverviewClickCenters(t *testing.T) {
	v, o, _ := newOverview(t, true)

	require.NoError(t, o.PointerDown(geom.Coord{X: 72.5 + 27.5, Y: 20 + 55}))
	assert.True(t, o.Dragging())
	assert.InDelta(t, -100, v.Offset().X, 1e-6)
	assert.InDelta(t, -700, v.Offset().Y, 1e-6)
	o.PointerUp()
	assert.False(t, o.Dragging())
}

func TestOverviewDragPans(t *testing.T) {
	v, o, clk := newOverview(t, true)
	v.SetOffset(-100, -700, true)
	v.Loop(clk.Advance(16))

	start := geom.Coord{X: 80, Y: 60}
	require.True(t, o.OnVisible(start))
	require.NoError(t, o.PointerDown(start))
	assert.Equal(t, geom.Coord{X: -100, Y: -700}, v.Offset(), "pressing the visible area does not jump")

	o.PointerMove(geom.Coord{X: 85.5, Y: 71})
	assert.InDelta(t, -200, v.Offset().X, 1e-6)
	assert.InDelta(t, -900, v.Offset().Y, 1e-6)
}

func TestOverviewStopsMotion(t *testing.T) {
	v, o, _ := newOverview(t, true)
	v.AnimateTo("test", -300, -300, 1, viewport.AnimationOptions{})
	require.NoError(t, o.PointerDown(geom.Coord{X: 80, Y: 30}))
	_, animating := v.Animation()
	assert.False(t, animating)
	assert.Equal(t, viewport.InteractionNone, v.Interaction())
}

func TestOverviewInfiniteCanvas(t *testing.T) {
	_, o, _ := newOverview(t, false)
	_, err := o.Layout()
	assert.ErrorIs(t, err, ErrUnknownArtboardSize)
	assert.ErrorIs(t, o.PointerDown(geom.Coord{}), ErrUnknownArtboardSize)
}

func TestOverviewResize(t *testing.T) {
	v, o, clk := newOverview(t, true)
	v.NotifySizeChange(o, geom.Size{Width: 400, Height: 300})
	v.NotifySizeChange("other", geom.Size{Width: 1, Height: 1})
	v.Loop(clk.Advance(16))

	l, err := o.Layout()
	require.NoError(t, err)
	assert.InDelta(t, 260.0/2000, l.Scale, 1e-12)
}
