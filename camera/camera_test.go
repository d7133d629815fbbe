package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

func snapshot() viewport.Snapshot {
	return viewport.Snapshot{
		ContainerSize:   geom.Size{Width: 800, Height: 600},
		ArtboardSize:    geom.Size{Width: 1001, Height: 2000},
		HasArtboardSize: true,
		Offset:          geom.Coord{X: -100.2, Y: 40.7},
		Scale:           2,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestContentToScreen(t *testing.T) {
	cam := FromSnapshot(snapshot(), geom.Coord{X: 10, Y: 20})

	sx, sy := cam.ContentToScreen(100, 50)
	if !near(sx, 10-100.2+200) || !near(sy, 20+40.7+100) {
		t.Errorf("expected (109.8, 160.7), got (%f, %f)", sx, sy)
	}
}

func TestScreenToContentRoundtrip(t *testing.T) {
	cam := FromSnapshot(snapshot(), geom.Coord{X: 10, Y: 20})

	testCases := []struct{ sx, sy float64 }{
		{400, 300}, // center
		{0, 0},     // top-left
		{790, 590}, // near bottom-right
	}

	for _, tc := range testCases {
		x, y := cam.ScreenToContent(tc.sx, tc.sy)
		sx, sy := cam.ContentToScreen(x, y)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, x, y, sx, sy)
		}
	}
}

func TestVisibleContentBounds(t *testing.T) {
	s := snapshot()
	s.Offset = geom.Coord{X: -200, Y: -100}
	cam := FromSnapshot(s, geom.Coord{})

	got := cam.VisibleContentBounds()
	want := geom.Rect{X: 100, Y: 50, Width: 400, Height: 300}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestIsVisible(t *testing.T) {
	s := snapshot()
	s.Offset = geom.Coord{X: -200, Y: -100}
	cam := FromSnapshot(s, geom.Coord{})

	// Visible content is x 100..500, y 50..350.
	testCases := []struct {
		name   string
		r      geom.Rect
		margin float64
		want   bool
	}{
		{"inside", geom.Rect{X: 200, Y: 200, Width: 10, Height: 10}, 0, true},
		{"overlapping edge", geom.Rect{X: 90, Y: 40, Width: 20, Height: 20}, 0, true},
		{"left of view", geom.Rect{X: 0, Y: 200, Width: 50, Height: 10}, 0, false},
		{"within margin", geom.Rect{X: 0, Y: 200, Width: 90, Height: 10}, 20, true},
		{"below view", geom.Rect{X: 200, Y: 400, Width: 10, Height: 10}, 0, false},
	}

	for _, tc := range testCases {
		if got := cam.IsVisible(tc.r, tc.margin); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestQuantize(t *testing.T) {
	cam := FromSnapshot(snapshot(), geom.Coord{})
	cam.Quantize(DefaultPrecision, false)

	if cam.OffsetX != -100 || cam.OffsetY != 41 {
		t.Errorf("expected offset (-100, 41), got (%f, %f)", cam.OffsetX, cam.OffsetY)
	}
	if cam.ScaleX != 2 || cam.ScaleY != 2 {
		t.Errorf("scale should be untouched, got (%f, %f)", cam.ScaleX, cam.ScaleY)
	}

	s := snapshot()
	s.Scale = 1.0003
	cam = FromSnapshot(s, geom.Coord{})
	cam.Quantize(1, true)
	if w := cam.ArtboardW * cam.ScaleX; !near(w, math.Round(w)) {
		t.Errorf("expected drawn width on a whole pixel, got %f", w)
	}
	if h := cam.ArtboardH * cam.ScaleY; !near(h, 2001) {
		t.Errorf("expected drawn height 2001, got %f", h)
	}
}

func TestTrackerFollowsLoop(t *testing.T) {
	clk := clock.NewManual(1000)
	v, err := viewport.New(viewport.StaticContainer{Width: 800, Height: 600}, viewport.WithClock(clk.Source()))
	if err != nil {
		t.Fatal(err)
	}
	tr := &Tracker{Origin: geom.Coord{X: 5, Y: 5}, Precision: 1}
	if _, err := v.AddPlugin(tr); err != nil {
		t.Fatal(err)
	}

	v.SetOffset(10.2, -3.7, true)
	v.Loop(clk.Advance(16))

	cam := tr.Camera()
	if cam.OffsetX != 11 || cam.OffsetY != -3 {
		t.Errorf("expected quantized offset (11, -3), got (%f, %f)", cam.OffsetX, cam.OffsetY)
	}
	if cam.Origin != (geom.Coord{X: 5, Y: 5}) {
		t.Errorf("expected origin (5, 5), got %+v", cam.Origin)
	}
}
