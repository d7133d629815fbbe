package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	// 3-4-5 steps at 10 ms, then two frames at rest.
	samples := []Sample{
		{TimeMS: 0, Scale: 1},
		{TimeMS: 10, OffsetX: 3, OffsetY: 4, Scale: 1},
		{TimeMS: 20, OffsetX: 6, OffsetY: 8, Scale: 1},
		{TimeMS: 30, OffsetX: 12, OffsetY: 16, Scale: 1},
		{TimeMS: 40, OffsetX: 12, OffsetY: 16, Scale: 1},
		{TimeMS: 50, OffsetX: 12, OffsetY: 16, Scale: 1},
	}
	s := Summarize("fling", samples)

	if s.Frames != 6 || s.DurationMS != 50 {
		t.Errorf("frames/duration = %d/%v, want 6/50", s.Frames, s.DurationMS)
	}
	if math.Abs(s.Travel-20) > 1e-9 {
		t.Errorf("travel = %v, want 20", s.Travel)
	}
	// Moving speeds are 500, 500 and 1000 px/s.
	if math.Abs(s.PeakSpeed-1000) > 1e-9 {
		t.Errorf("peak speed = %v, want 1000", s.PeakSpeed)
	}
	if math.Abs(s.MeanSpeed-2000.0/3) > 1e-9 {
		t.Errorf("mean speed = %v, want 666.67", s.MeanSpeed)
	}
	if math.Abs(s.SpeedStd-math.Sqrt(250000.0/3)) > 1e-6 {
		t.Errorf("speed std = %v, want %v", s.SpeedStd, math.Sqrt(250000.0/3))
	}
	if math.Abs(s.SpeedP90-900) > 1e-9 {
		t.Errorf("speed p90 = %v, want 900", s.SpeedP90)
	}
	if s.SettleMS != 30 || !s.Settled {
		t.Errorf("settle = %v (settled %v), want 30 (true)", s.SettleMS, s.Settled)
	}
	if s.EndX != 12 || s.EndY != 16 || s.EndScale != 1 {
		t.Errorf("end = %v,%v@%v, want 12,16@1", s.EndX, s.EndY, s.EndScale)
	}
}

func TestSummarizeUnsettled(t *testing.T) {
	samples := []Sample{
		{TimeMS: 0, Scale: 1},
		{TimeMS: 16, Scale: 1.1},
	}
	s := Summarize("zoom", samples)

	if s.Settled {
		t.Error("expected a trajectory still scaling on its last frame to be unsettled")
	}
	if s.Travel != 0 || s.PeakSpeed != 0 {
		t.Errorf("scale-only change should not count as travel, got %v / %v", s.Travel, s.PeakSpeed)
	}
	if s.SettleMS != 16 {
		t.Errorf("settle = %v, want 16", s.SettleMS)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("empty", nil)

	if s.Frames != 0 || s.Travel != 0 || !s.Settled {
		t.Errorf("empty summary = %+v", s)
	}
}
