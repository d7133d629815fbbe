package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/artboard/config"
)

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	norm := pv.Normalize(raw)
	for _, n := range norm {
		assert.GreaterOrEqual(t, n, 0.0)
		assert.LessOrEqual(t, n, 1.0)
	}
	assert.InDeltaSlice(t, raw, pv.Denormalize(norm), 1e-9)
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{2, -1, 60})
	assert.Equal(t, []float64{0.99, 0.1, 60}, got)
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	require.NoError(t, pv.ApplyToConfig(cfg, []float64{0.9, 0.4, 50}))

	assert.InDeltaSlice(t, []float64{0.9, 0.4, 50}, pv.ExtractFromConfig(cfg), 1e-9)
	assert.Equal(t, 50.0, cfg.Derived.Viewport.OverscrollBounds.Left)
}

func TestParseFPS(t *testing.T) {
	got, err := parseFPS("120, 60,30")
	require.NoError(t, err)
	assert.Equal(t, []int{120, 60, 30}, got)

	_, err = parseFPS("60,zero")
	assert.Error(t, err)
	_, err = parseFPS("")
	assert.Error(t, err)
}

func TestMeasureDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, cfg, DefaultTargets(), []int{60, 30})
	b, err := fe.Measure(pv.DefaultVector())
	require.NoError(t, err)

	for _, v := range []float64{b.Travel, b.SettleMS, b.Overshoot, b.SnapMS, b.FPSDev, b.Fitness} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.Greater(t, b.Travel, 0.0)
	assert.Greater(t, b.Overshoot, 0.0)
	assert.GreaterOrEqual(t, b.Fitness, 0.0)
}

func TestEvaluateRecordsLast(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, cfg, DefaultTargets(), []int{60})
	f := fe.Evaluate(pv.DefaultVector())
	assert.Equal(t, f, fe.Last().Fitness)
	assert.Less(t, f, failedFitness)
}
