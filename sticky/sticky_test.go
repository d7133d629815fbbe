package sticky

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

func snapshot(x, y, scale float64) viewport.Snapshot {
	return viewport.Snapshot{
		ContainerSize:   geom.Size{Width: 800, Height: 600},
		ArtboardSize:    geom.Size{Width: 1000, Height: 500},
		HasArtboardSize: true,
		Offset:          geom.Coord{X: x, Y: y},
		Scale:           scale,
	}
}

func TestComputeDefaultFollowsOffset(t *testing.T) {
	o := DefaultOptions()
	o.Size = geom.Size{Width: 80, Height: 20}
	p := Compute(o, snapshot(-100.2, 50, 2))
	assert.Equal(t, geom.Coord{X: -100, Y: 50}, p)
}

func TestComputeNamedAnchor(t *testing.T) {
	o := Options{
		Position: Named("bottom-right"),
		Origin:   "bottom-right",
		Margin:   geom.Edges{Right: 10, Bottom: 5},
		Size:     geom.Size{Width: 80, Height: 20},
	}
	p := Compute(o, snapshot(0, 0, 2))
	assert.Equal(t, geom.Coord{X: 2000 - 10 - 80, Y: 1000 - 5 - 20}, p)
}

func TestComputePointAnchor(t *testing.T) {
	o := Options{
		Position: At(100, 50),
		Origin:   "center-center",
		Margin:   geom.UniformEdges(8),
		Size:     geom.Size{Width: 40, Height: 20},
	}
	p := Compute(o, snapshot(10, 10, 2))
	assert.Equal(t, geom.Coord{X: 190, Y: 100}, p, "centered origins ignore the margin")
}

func TestComputeKeepVisible(t *testing.T) {
	o := DefaultOptions()
	o.Origin = "bottom-left"
	o.Margin = geom.UniformEdges(8)
	o.Size = geom.Size{Width: 100, Height: 20}

	assert.Equal(t, geom.Coord{X: -492, Y: -528}, Compute(o, snapshot(-500, -500, 1)))

	o.KeepVisible = true
	assert.Equal(t, geom.Coord{X: 8, Y: 8}, Compute(o, snapshot(-500, -500, 1)))
	assert.Equal(t, geom.Coord{X: 692, Y: 572}, Compute(o, snapshot(900, 700, 1)))
}

func TestComputeInfiniteCanvas(t *testing.T) {
	snap := snapshot(30, 40, 1)
	snap.HasArtboardSize = false
	o := Options{Position: Named("bottom-right"), Origin: "top-left"}
	assert.Equal(t, geom.Coord{X: 30, Y: 40}, Compute(o, snap))
}

func TestAnchorYAML(t *testing.T) {
	var o Options
	doc := "position: bottom-center\norigin: top-left\nmargin: {top: 4}\nkeep_visible: true\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &o))
	assert.Equal(t, Named("bottom-center"), o.Position)
	assert.Equal(t, 4.0, o.Margin.Top)
	assert.True(t, o.KeepVisible)

	require.NoError(t, yaml.Unmarshal([]byte("position: {x: 10, y: 20}\n"), &o))
	assert.Equal(t, At(10, 20), o.Position)

	assert.Error(t, yaml.Unmarshal([]byte("position: {x: nope}\n"), &o))

	out, err := yaml.Marshal(Options{Position: At(1, 2)})
	require.NoError(t, err)
	var back Options
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, At(1, 2), back.Position)
}

func newSticky(t *testing.T, o Options) (*viewport.Viewport, *Sticky, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(1000)
	v, err := viewport.New(viewport.StaticContainer{Width: 800, Height: 600},
		viewport.WithClock(clk.Source()),
		viewport.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	v.SetArtboardSize(1000, 500)
	v.SetOffset(0, 0, true)
	p, err := v.AddPlugin(o)
	require.NoError(t, err)
	return v, p.(*Sticky), clk
}

func TestStickyPlugin(t *testing.T) {
	v, s, clk := newSticky(t, DefaultOptions())
	_, ok := s.Position()
	assert.False(t, ok, "nothing to report before the first frame")

	snap := v.Loop(clk.Now())
	p, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, geom.Coord{}, p)

	s.SetAnchor(At(100, 50))
	v.Loop(clk.Advance(16))
	p, _ = s.Position()
	assert.Equal(t, geom.Coord{X: 100 * snap.Scale, Y: 50 * snap.Scale}, p)

	s.SetEnabled(false)
	_, ok = s.Position()
	assert.False(t, ok)
	s.SetEnabled(true)
	_, ok = s.Position()
	assert.True(t, ok)
}

func TestStickyResize(t *testing.T) {
	o := DefaultOptions()
	o.Origin = "bottom-right"
	o.Position = At(100, 100)
	v, s, clk := newSticky(t, o)

	v.NotifySizeChange(s, geom.Size{Width: 40, Height: 10})
	v.NotifySizeChange("other", geom.Size{Width: 1, Height: 1})
	assert.Equal(t, geom.Size{Width: 40, Height: 10}, s.Size())

	snap := v.Loop(clk.Now())
	p, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, geom.Coord{X: 100*snap.Scale - 40, Y: 100*snap.Scale - 10}, p)
}
