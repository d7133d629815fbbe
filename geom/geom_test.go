package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 1))
	assert.Equal(t, 1.0, Clamp(5, 0, 1))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 10.0, Lerp(0, 10, 1))
	assert.Equal(t, -3.0, Lerp(-3, 7, 0))
}

func TestDampen(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		factor float64
		want   float64
	}{
		{"inside range untouched", 50, 0.5, 50},
		{"above max", 110, 0.5, 105},
		{"below min", -20, 0.85, -17},
		{"zero factor snaps to edge", 150, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Dampen(tt.v, 0, 100, tt.factor), 1e-9)
		})
	}
}

func TestDampenRelative(t *testing.T) {
	// 100 + (10*0.5)/(1+10/100)
	assert.InDelta(t, 104.545454, DampenRelative(110, 0, 100, 0.5), 1e-5)
	assert.InDelta(t, -4.545454, DampenRelative(-10, 0, 100, 0.5), 1e-5)
	assert.Equal(t, 42.0, DampenRelative(42, 0, 100, 0.5))

	// The kept overshoot saturates: doubling the overshoot gains less than double.
	small := DampenRelative(150, 0, 100, 0.5) - 100
	large := DampenRelative(200, 0, 100, 0.5) - 100
	assert.Less(t, large, small*2)

	// Unbounded ranges never dampen.
	assert.Equal(t, 1e9, DampenRelative(1e9, math.Inf(-1), math.Inf(1), 0.5))
}

func TestLimitOffset(t *testing.T) {
	b := Boundaries{XMin: -100, XMax: 100, YMin: -50, YMax: 50}
	assert.Equal(t, Coord{X: -100, Y: 50}, LimitOffset(-200, 300, b))
	assert.Equal(t, Coord{X: 10, Y: -10}, LimitOffset(10, -10, b))

	open := Unbounded()
	assert.True(t, open.IsUnbounded())
	assert.Equal(t, Coord{X: -1e12, Y: 1e12}, LimitOffset(-1e12, 1e12, open))
}

func TestBoundariesContains(t *testing.T) {
	b := Boundaries{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	assert.True(t, b.Contains(Coord{X: 11, Y: 5}, 1.5))
	assert.False(t, b.Contains(Coord{X: 12, Y: 5}, 1.5))
	assert.False(t, b.Contains(Coord{X: 5, Y: -0.1}, 0))
}

func TestWithPrecision(t *testing.T) {
	assert.Equal(t, 1.5, WithPrecision(1.2, 0.5))
	assert.Equal(t, 2.0, WithPrecision(2, 0.5))
	assert.Equal(t, -1.0, WithPrecision(-1.2, 0.5))
	assert.Equal(t, 3.3, WithPrecision(3.3, 0))
}

func TestAdjustScaleForPrecision(t *testing.T) {
	s := AdjustScaleForPrecision(333, 1.01, 1)
	assert.InDelta(t, 336, 333*s, 1e-9)
	assert.Equal(t, 1.3, AdjustScaleForPrecision(0, 1.3, 1))
}

func TestAsValidNumber(t *testing.T) {
	assert.Equal(t, 3.0, AsValidNumber(math.NaN(), 3))
	assert.Equal(t, 7.0, AsValidNumber(7, 3))
}

func TestMidpointAndDistance(t *testing.T) {
	assert.Equal(t, Coord{}, Midpoint())
	assert.Equal(t, Coord{X: 4, Y: 2}, Midpoint(Coord{X: 4, Y: 2}))
	assert.Equal(t, Coord{X: 5, Y: 5}, Midpoint(Coord{X: 0, Y: 0}, Coord{X: 10, Y: 10}, Coord{X: 99, Y: 99}))
	assert.Equal(t, 5.0, Distance(Coord{}, Coord{X: 3, Y: 4}))
}

func TestGetDirection(t *testing.T) {
	tests := []struct {
		name string
		b    Coord
		want Direction
	}{
		{"right", Coord{X: 10}, DirectionHorizontal},
		{"left with slight drift", Coord{X: -10, Y: 1}, DirectionHorizontal},
		{"down", Coord{Y: 10}, DirectionVertical},
		{"up", Coord{X: 1, Y: -10}, DirectionVertical},
		{"diagonal", Coord{X: 10, Y: 10}, DirectionBoth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDirection(Coord{}, tt.b, 20))
		})
	}

	// A threshold of 45° makes every angle match both classes.
	assert.Equal(t, DirectionBoth, ClassifyAngle(45, 45))
	assert.Equal(t, DirectionBoth, ClassifyAngle(0, 90))
}

func TestDirectionText(t *testing.T) {
	for _, d := range []Direction{DirectionNone, DirectionHorizontal, DirectionVertical, DirectionBoth} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var back Direction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}

	var d Direction
	assert.Error(t, d.UnmarshalText([]byte("diagonal")))
	assert.True(t, DirectionBoth.AllowsX())
	assert.False(t, DirectionVertical.AllowsX())
	assert.True(t, DirectionVertical.AllowsY())
}

func TestParseEdges(t *testing.T) {
	assert.Equal(t, UniformEdges(30), ParseEdges(nil, 30))

	top := 5.0
	nan := math.NaN()
	got := ParseEdges(&PartialEdges{Top: &top, Left: &nan}, 12)
	assert.Equal(t, Edges{Top: 5, Right: 12, Bottom: 12, Left: 12}, got)
}

func TestCalculateCenterPosition(t *testing.T) {
	viewport := Rect{X: 0, Y: 0, Width: 1000, Height: 800}

	centerX, available := CalculateCenterPosition(nil, viewport, 400)
	assert.Equal(t, 300.0, centerX)
	assert.Equal(t, 1000.0, available)

	toolbar := Rect{X: 0, Y: 0, Width: 200, Height: 800}
	centerX, available = CalculateCenterPosition([]Rect{toolbar}, viewport, 400)
	assert.Equal(t, 400.0, centerX)
	assert.Equal(t, 800.0, available)

	sidebar := Rect{X: 900, Y: 0, Width: 100, Height: 800}
	centerX, available = CalculateCenterPosition([]Rect{toolbar, sidebar}, viewport, 400)
	assert.Equal(t, 350.0, centerX)
	assert.Equal(t, 700.0, available)

	// Rectangles near the center are ignored.
	centered := Rect{X: 480, Y: 0, Width: 40, Height: 40}
	centerX, _ = CalculateCenterPosition([]Rect{centered}, viewport, 400)
	assert.Equal(t, 300.0, centerX)
}

func TestParseOrigin(t *testing.T) {
	assert.Equal(t, Coord{X: 0, Y: 0}, ParseOrigin("top-left"))
	assert.Equal(t, Coord{X: 0.5, Y: 0.5}, ParseOrigin("center-center"))
	assert.Equal(t, Coord{X: 1, Y: 1}, ParseOrigin("bottom-right"))
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	assert.True(t, r.Contains(Coord{X: 30, Y: 30}))
	assert.False(t, r.Contains(Coord{X: 31, Y: 30}))
	assert.True(t, r.Intersects(Rect{X: 25, Y: 25, Width: 10, Height: 10}))
	assert.False(t, r.Intersects(Rect{X: 30, Y: 10, Width: 10, Height: 10}))
}
