package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/artboard/camera"
	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

var red = Tint{R: 255, A: 255}

func TestAddGetRemove(t *testing.T) {
	b := New()
	id := b.Add(geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}, "first", red)
	require.Equal(t, 1, b.Len())

	it, ok := b.Get(id)
	require.True(t, ok)
	assert.Equal(t, Item{ID: id, Rect: geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}, Label: "first", Tint: red}, it)

	require.True(t, b.Move(id, 30, 40))
	it, _ = b.Get(id)
	assert.Equal(t, 30.0, it.Rect.X)
	assert.Equal(t, 40.0, it.Rect.Y)

	assert.True(t, b.Remove(id))
	assert.False(t, b.Remove(id))
	_, ok = b.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestGridAndBounds(t *testing.T) {
	b := New()
	ids := b.Grid(3, 2, 100, 50, 10, []Tint{red})
	require.Len(t, ids, 6)

	assert.Equal(t, geom.Size{Width: 330, Height: 120}, b.Bounds())

	last, ok := b.Get(ids[5])
	require.True(t, ok)
	assert.Equal(t, "B3", last.Label)
	assert.Equal(t, geom.Rect{X: 230, Y: 70, Width: 100, Height: 50}, last.Rect)

	var seen []int
	b.Each(func(it Item) { seen = append(seen, it.ID) })
	assert.Equal(t, ids, seen)
}

func TestVisibleCulls(t *testing.T) {
	b := New()
	b.Grid(10, 1, 100, 100, 0, nil)

	cam := &camera.Camera{ScaleX: 1, ScaleY: 1, ViewportW: 250, ViewportH: 100, OffsetX: -100}
	// Visible content is x 100..350.
	got := b.Visible(cam, 0)
	var ids []int
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int{2, 3, 4}, ids, "cards only touching an edge are culled")

	got = b.Visible(cam, 60)
	assert.Len(t, got, 5)
}

func TestHitTestTopmost(t *testing.T) {
	b := New()
	b.Add(geom.Rect{Width: 100, Height: 100}, "bottom", red)
	top := b.Add(geom.Rect{X: 50, Y: 50, Width: 100, Height: 100}, "top", red)

	it, ok := b.HitTest(geom.Coord{X: 75, Y: 75})
	require.True(t, ok)
	assert.Equal(t, top, it.ID)

	it, ok = b.HitTest(geom.Coord{X: 10, Y: 10})
	require.True(t, ok)
	assert.Equal(t, "bottom", it.Label)

	_, ok = b.HitTest(geom.Coord{X: 500, Y: 500})
	assert.False(t, ok)
}

func TestScrollTo(t *testing.T) {
	b := New()
	id := b.Add(geom.Rect{X: 1000, Y: 2000, Width: 200, Height: 100}, "target", red)

	clk := clock.NewManual(1000)
	v, err := viewport.New(viewport.StaticContainer{Width: 800, Height: 600}, viewport.WithClock(clk.Source()))
	require.NoError(t, err)
	size := b.Bounds()
	v.SetArtboardSize(size.Width, size.Height)

	require.NoError(t, b.ScrollTo(v, id, viewport.ScrollIntoViewOptions{Behavior: viewport.BehaviorInstant}))
	assert.Equal(t, geom.Coord{X: -700, Y: -1750}, v.Offset())

	assert.Error(t, b.ScrollTo(v, 99, viewport.ScrollIntoViewOptions{}))
}
