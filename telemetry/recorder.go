// Package telemetry records viewport trajectories, detects notable moments
// and writes run output.
package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/artboard/viewport"
)

// Sample is one recorded frame.
type Sample struct {
	Tick        int     `csv:"tick"`
	TimeMS      float64 `csv:"time_ms"`
	OffsetX     float64 `csv:"offset_x"`
	OffsetY     float64 `csv:"offset_y"`
	Scale       float64 `csv:"scale"`
	Interaction string  `csv:"interaction"`
}

// MarkerType identifies the kind of marker.
type MarkerType string

const (
	MarkerInteraction MarkerType = "interaction"
	MarkerOverscroll  MarkerType = "overscroll"
	MarkerSettled     MarkerType = "settled"
)

// Marker is an automatically detected moment in a recording.
type Marker struct {
	Type        MarkerType `csv:"type"`
	Tick        int        `csv:"tick"`
	TimeMS      float64    `csv:"time_ms"`
	Description string     `csv:"description"`
}

// LogMarker logs the marker.
func (m Marker) LogMarker(log *slog.Logger) {
	log.Info("marker",
		"type", string(m.Type),
		"tick", m.Tick,
		"time_ms", m.TimeMS,
		"description", m.Description,
	)
}

// Recorder is a viewport plugin that samples every frame snapshot and
// emits markers when the interaction changes, the offset leaves the
// boundaries, or the transform stops changing.
type Recorder struct {
	maxSamples int
	samples    []Sample
	markers    []Marker
	dropped    int
	tick       int
	onMarker   func(Marker)

	prev    viewport.Snapshot
	hasPrev bool
	moving  bool
	outside bool
}

// NewRecorder creates a recorder keeping at most maxSamples samples
// (unlimited when <= 0). Markers are always kept.
func NewRecorder(maxSamples int) *Recorder {
	return &Recorder{maxSamples: maxSamples}
}

// OnMarker registers fn to be called for every new marker.
func (r *Recorder) OnMarker(fn func(Marker)) {
	r.onMarker = fn
}

// Init implements viewport.PluginDefinition; the recorder is its own plugin.
func (r *Recorder) Init(*viewport.Viewport) (viewport.Plugin, error) {
	return r, nil
}

// Loop implements viewport.Looper.
func (r *Recorder) Loop(s viewport.Snapshot) {
	if r.maxSamples <= 0 || len(r.samples) < r.maxSamples {
		r.samples = append(r.samples, Sample{
			Tick:        r.tick,
			TimeMS:      s.CurrentTime,
			OffsetX:     s.Offset.X,
			OffsetY:     s.Offset.Y,
			Scale:       s.Scale,
			Interaction: s.Interaction.String(),
		})
	} else {
		r.dropped++
	}

	if r.hasPrev {
		if s.Interaction != r.prev.Interaction {
			r.mark(MarkerInteraction, s, fmt.Sprintf("%s -> %s", r.prev.Interaction, s.Interaction))
		}
		changed := s.Offset != r.prev.Offset || s.Scale != r.prev.Scale
		switch {
		case changed:
			r.moving = true
		case r.moving:
			r.moving = false
			r.mark(MarkerSettled, s, fmt.Sprintf("at %.1f,%.1f scale %.3f", s.Offset.X, s.Offset.Y, s.Scale))
		}
	}

	outside := !s.Boundaries.Contains(s.Offset, 0)
	if outside && !r.outside {
		r.mark(MarkerOverscroll, s, fmt.Sprintf("at %.1f,%.1f", s.Offset.X, s.Offset.Y))
	}
	r.outside = outside

	r.prev = s
	r.hasPrev = true
	r.tick++
}

func (r *Recorder) mark(t MarkerType, s viewport.Snapshot, desc string) {
	m := Marker{Type: t, Tick: r.tick, TimeMS: s.CurrentTime, Description: desc}
	r.markers = append(r.markers, m)
	if r.onMarker != nil {
		r.onMarker(m)
	}
}

// Samples returns the recorded samples.
func (r *Recorder) Samples() []Sample {
	return r.samples
}

// Markers returns the detected markers in order.
func (r *Recorder) Markers() []Marker {
	return r.markers
}

// MarkersOf returns the markers of type t.
func (r *Recorder) MarkersOf(t MarkerType) []Marker {
	var out []Marker
	for _, m := range r.markers {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// Dropped is the number of frames not sampled because the buffer was full.
func (r *Recorder) Dropped() int {
	return r.dropped
}

// Reset clears all samples and markers.
func (r *Recorder) Reset() {
	r.samples = r.samples[:0]
	r.markers = r.markers[:0]
	r.dropped = 0
	r.tick = 0
	r.hasPrev = false
	r.moving = false
	r.outside = false
}
