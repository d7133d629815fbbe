package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, ok := Lookup(name)
			require.True(t, ok)
			assert.InDelta(t, 0, fn(0), 1e-9, "f(0)")
			assert.InDelta(t, 1, fn(1), 1e-9, "f(1)")
		})
	}
}

func TestMonotonic(t *testing.T) {
	for _, name := range Names() {
		if Overshooting(name) {
			continue
		}
		t.Run(name, func(t *testing.T) {
			fn, _ := Lookup(name)
			samples := Sample(fn, 200)
			for i := 1; i < len(samples); i++ {
				if samples[i] < samples[i-1]-1e-12 {
					t.Fatalf("decreases at step %d: %v -> %v", i, samples[i-1], samples[i])
				}
			}
		})
	}
}

func TestOvershootingCurvesLeaveRange(t *testing.T) {
	samples := Sample(EaseOutBack, 100)
	peak := 0.0
	for _, v := range samples {
		peak = max(peak, v)
	}
	assert.Greater(t, peak, 1.0)
	assert.True(t, Overshooting("easeOutElastic"))
	assert.False(t, Overshooting("linear"))
}

func TestByName(t *testing.T) {
	fn, err := ByName("easeOutCubic")
	require.NoError(t, err)
	assert.InDelta(t, 0.875, fn(0.5), 1e-9)

	_, err = ByName("bounce")
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Sample(Linear, 2))
	assert.Len(t, Sample(Linear, 0), 2)
}
