package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregated statistics for one recorded trajectory.
type Summary struct {
	Label      string  `csv:"label"`
	Frames     int     `csv:"frames"`
	DurationMS float64 `csv:"duration_ms"`

	// Transform at the last frame
	EndX     float64 `csv:"end_x"`
	EndY     float64 `csv:"end_y"`
	EndScale float64 `csv:"end_scale"`

	// Path length of the offset in px
	Travel float64 `csv:"travel"`

	// Speed distribution over moving frames, px/s
	PeakSpeed float64 `csv:"peak_speed"`
	MeanSpeed float64 `csv:"mean_speed"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP90  float64 `csv:"speed_p90"`

	// SettleMS is the time from the first frame to the last frame that
	// changed the transform.
	SettleMS float64 `csv:"settle_ms"`
	// Settled is false when the transform still changed on the last frame.
	Settled bool `csv:"settled"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summarize computes statistics over samples in recording order.
func Summarize(label string, samples []Sample) Summary {
	s := Summary{Label: label, Frames: len(samples), Settled: true}
	if len(samples) == 0 {
		return s
	}

	first, last := samples[0], samples[len(samples)-1]
	s.DurationMS = last.TimeMS - first.TimeMS
	s.EndX, s.EndY, s.EndScale = last.OffsetX, last.OffsetY, last.Scale

	distances := make([]float64, 0, len(samples)-1)
	var speeds []float64
	lastChange := 0
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		d := math.Hypot(b.OffsetX-a.OffsetX, b.OffsetY-a.OffsetY)
		distances = append(distances, d)
		if d > 0 || b.Scale != a.Scale {
			lastChange = i
		}
		if dt := b.TimeMS - a.TimeMS; d > 0 && dt > 0 {
			speeds = append(speeds, d/(dt/1000))
		}
	}

	s.Travel = floats.Sum(distances)
	s.SettleMS = samples[lastChange].TimeMS - first.TimeMS
	s.Settled = lastChange < len(samples)-1 || lastChange == 0

	if len(speeds) > 0 {
		s.PeakSpeed = floats.Max(speeds)
		s.MeanSpeed = stat.Mean(speeds, nil)
		if len(speeds) > 1 {
			s.SpeedStd = stat.StdDev(speeds, nil)
		}
		sorted := make([]float64, len(speeds))
		copy(sorted, speeds)
		sort.Float64s(sorted)
		s.SpeedP90 = Percentile(sorted, 0.90)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("label", s.Label),
		slog.Int("frames", s.Frames),
		slog.Float64("duration_ms", s.DurationMS),
		slog.Float64("end_x", s.EndX),
		slog.Float64("end_y", s.EndY),
		slog.Float64("end_scale", s.EndScale),
		slog.Float64("travel", s.Travel),
		slog.Float64("peak_speed", s.PeakSpeed),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("settle_ms", s.SettleMS),
		slog.Bool("settled", s.Settled),
	)
}
