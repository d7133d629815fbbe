package telemetry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/viewport"
)

func newViewport(t *testing.T) *viewport.Viewport {
	t.Helper()
	clk := clock.NewManual(1000)
	v, err := viewport.New(viewport.StaticContainer{Width: 800, Height: 600},
		viewport.WithClock(clk.Source()),
		viewport.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("viewport.New: %v", err)
	}
	v.SetArtboardSize(2000, 3000)
	return v
}

func TestRecorderMarkers(t *testing.T) {
	v := newViewport(t)
	rec := NewRecorder(0)
	if _, err := v.AddPlugin(rec); err != nil {
		t.Fatalf("AddPlugin: %v", err)
	}
	var seen []Marker
	rec.OnMarker(func(m Marker) { seen = append(seen, m) })

	v.Loop(1000)
	v.SetOffset(0, -100, true)
	v.Loop(1016)
	v.Loop(1032)
	v.SetInteraction(viewport.InteractionDragging)
	v.SetOffset(900, -100, false)
	v.Loop(1048)

	want := []struct {
		typ  MarkerType
		tick int
	}{
		{MarkerSettled, 2},
		{MarkerInteraction, 3},
		{MarkerOverscroll, 3},
	}
	markers := rec.Markers()
	if len(markers) != len(want) {
		t.Fatalf("got %d markers %+v, want %d", len(markers), markers, len(want))
	}
	for i, w := range want {
		if markers[i].Type != w.typ || markers[i].Tick != w.tick {
			t.Errorf("marker %d = %s@%d, want %s@%d", i, markers[i].Type, markers[i].Tick, w.typ, w.tick)
		}
	}
	if markers[1].Description != "none -> dragging" {
		t.Errorf("interaction description = %q", markers[1].Description)
	}
	if len(seen) != len(markers) {
		t.Errorf("callback saw %d markers, want %d", len(seen), len(markers))
	}
	if got := rec.MarkersOf(MarkerOverscroll); len(got) != 1 || got[0].TimeMS != 1048 {
		t.Errorf("overscroll markers = %+v", got)
	}

	samples := rec.Samples()
	if len(samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(samples))
	}
	if samples[1].OffsetY != -100 || samples[3].Interaction != "dragging" {
		t.Errorf("unexpected samples %+v", samples)
	}
}

func TestRecorderMaxSamples(t *testing.T) {
	v := newViewport(t)
	rec := NewRecorder(2)
	v.AddPlugin(rec)

	for i := 0; i < 3; i++ {
		v.Loop(1000 + float64(i)*16)
	}

	if len(rec.Samples()) != 2 || rec.Dropped() != 1 {
		t.Errorf("samples/dropped = %d/%d, want 2/1", len(rec.Samples()), rec.Dropped())
	}

	rec.Reset()
	v.Loop(1100)
	if len(rec.Samples()) != 1 || rec.Samples()[0].Tick != 0 {
		t.Errorf("after reset got %+v", rec.Samples())
	}
}
