package viewer

import (
	"github.com/pthm-cable/artboard/telemetry"
)

// flushTelemetry logs and writes perf stats once per window.
func (g *Viewer) flushTelemetry() {
	window := g.cfg.Telemetry.PerfWindow
	if window <= 0 || g.tick%window != 0 {
		return
	}
	stats := g.perf.Stats()
	if g.logStats {
		stats.LogStats(g.log)
	}
	if err := g.output.WritePerf(stats, g.tick); err != nil {
		g.log.Error("failed to write perf", "error", err)
	}
}

func (g *Viewer) startRecording() {
	g.recorder.Reset()
	if _, err := g.v.AddPlugin(g.recorder); err != nil {
		g.log.Error("starting recording", "error", err)
		return
	}
	g.recording = true
	g.log.Info("recording started")
}

// stopRecording detaches the recorder and writes what it captured.
func (g *Viewer) stopRecording() {
	g.v.RemovePlugin(g.recorder)
	g.recording = false

	samples := g.recorder.Samples()
	summary := telemetry.Summarize("viewer", samples)
	g.log.Info("recording stopped", "summary", summary, "dropped", g.recorder.Dropped())

	if err := g.output.WriteSamples(samples); err != nil {
		g.log.Error("failed to write samples", "error", err)
	}
	if err := g.output.WriteMarkers(g.recorder.Markers()); err != nil {
		g.log.Error("failed to write markers", "error", err)
	}
	if err := g.output.WriteSummary(summary); err != nil {
		g.log.Error("failed to write summary", "error", err)
	}
}

// onMarker logs a marker and saves the view on overscroll entry.
func (g *Viewer) onMarker(m telemetry.Marker) {
	m.LogMarker(g.log)
	if m.Type == telemetry.MarkerOverscroll {
		g.saveViewState(&m)
	}
}

// saveViewState writes the current view when an output directory is set.
func (g *Viewer) saveViewState(m *telemetry.Marker) {
	vs := telemetry.ViewStateFromSnapshot(g.snap)
	vs.Marker = m
	path, err := g.output.SaveViewState(vs)
	if err != nil {
		g.log.Error("failed to save view", "error", err)
		return
	}
	if path != "" {
		g.log.Info("view saved", "path", path)
	}
}
