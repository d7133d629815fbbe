package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/input"
	"github.com/pthm-cable/artboard/overview"
	"github.com/pthm-cable/artboard/scrollbar"
	"github.com/pthm-cable/artboard/sticky"
	"github.com/pthm-cable/artboard/viewport"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Screen.Width)
	assert.Equal(t, geom.DirectionBoth, cfg.Viewport.Direction)
	assert.Equal(t, []int{30, 60, 120}, cfg.Simulation.FPS)

	opts := cfg.Derived.Viewport
	assert.Equal(t, 0.1, opts.MinScale)
	assert.Equal(t, 5.0, opts.MaxScale)
	assert.Equal(t, geom.UniformEdges(30), opts.OverscrollBounds)
	assert.Nil(t, opts.InitTransform)
	require.NotNil(t, opts.BlockingRects)
	assert.Equal(t, []geom.Rect{{X: 1040, Width: 240, Height: 800}}, opts.BlockingRects())

	assert.InDelta(t, 1000.0/60, cfg.Derived.FrameMS, 1e-9)
	assert.Equal(t, float32(800), cfg.Derived.ScreenH32)
	assert.Equal(t, input.ModifierCtrlMeta, cfg.Input.Keyboard.Modifier)
	assert.Equal(t, "easeOutBack", cfg.Input.Touch.OverscaleAnimation.Easing)
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeFile(t, `
viewport:
  max_scale: 8
  direction: vertical
  init_transform:
    y: -100
input:
  wheel:
    momentum_scroll: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, cfg.Derived.Viewport.MaxScale)
	assert.Equal(t, 0.1, cfg.Derived.Viewport.MinScale, "untouched keys keep defaults")
	assert.Equal(t, geom.DirectionVertical, cfg.Derived.Viewport.Direction)
	assert.True(t, cfg.Input.Wheel.MomentumScroll)
	assert.True(t, cfg.Input.Wheel.MomentumZoom)

	tr := cfg.Derived.Viewport.InitTransform
	require.NotNil(t, tr)
	assert.True(t, math.IsNaN(tr.X))
	assert.Equal(t, -100.0, tr.Y)
	assert.True(t, math.IsNaN(tr.Scale))
}

func TestOverscrollForms(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want geom.Edges
	}{
		{"number", "viewport: {overscroll_bounds: 12}", geom.UniformEdges(12)},
		{"partial mapping", "viewport: {overscroll_bounds: {top: 5, left: 0}}", geom.Edges{Top: 5, Right: 30, Bottom: 30, Left: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Derived.Viewport.OverscrollBounds)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "input: {keyboard: {animation: {easing: wobble}}}"))
	require.ErrorIs(t, err, ErrUnknownEasing)
	assert.Contains(t, err.Error(), "input.keyboard.animation")

	_, err = Load(writeFile(t, "viewport: {min_scale: 0}"))
	assert.ErrorContains(t, err, "min scale must be positive")

	_, err = Load(writeFile(t, "viewport: {direction: sideways}"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestPlugins(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	defs := cfg.Plugins()
	require.Len(t, defs, 11)
	assert.IsType(t, input.MouseOptions{}, defs[0])
	ov, ok := defs[6].(overview.Options)
	require.True(t, ok)
	assert.Equal(t, 200.0, ov.Size.Width)
	assert.True(t, ov.AutoHeight)
	assert.Equal(t, cfg.Derived.ScrollbarY, defs[7])
	assert.Equal(t, cfg.Derived.ScrollbarX, defs[8])
	assert.Equal(t, cfg.Sticky.Title, defs[9])
	assert.Equal(t, cfg.Sticky.Badge, defs[10])

	cfg.Overview.Enabled = false
	cfg.Scrollbars.Enabled = false
	cfg.Sticky.Badge.Disabled = true
	assert.Len(t, cfg.Plugins(), 7)
}

func TestOverlayDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, viewport.ScaleModeNone, cfg.Board.FocusScale)
	assert.Equal(t, scrollbar.OrientationY, cfg.Derived.ScrollbarY.Orientation)
	assert.Equal(t, scrollbar.OrientationX, cfg.Derived.ScrollbarX.Orientation)
	assert.Equal(t, 32.0, cfg.Derived.ScrollbarX.MinThumbSize)
	assert.Equal(t, "easeOutCubic", cfg.Derived.ScrollbarY.Animation.Easing)

	title := cfg.Sticky.Title
	assert.Equal(t, sticky.Named("top-left"), title.Position)
	assert.Equal(t, "bottom-left", title.Origin)
	assert.Equal(t, geom.Edges{Top: 6, Right: 8, Bottom: 6, Left: 8}, title.Margin)
	assert.True(t, title.KeepVisible)
}

func TestFocusScale(t *testing.T) {
	cfg, err := Load(writeFile(t, "board: {focus_scale: blocking}\nsticky: {title: {position: {x: 10, y: 20}}}"))
	require.NoError(t, err)
	assert.Equal(t, viewport.ScaleModeBlocking, cfg.Board.FocusScale)
	assert.Equal(t, sticky.At(10, 20), cfg.Sticky.Title.Position)
	assert.Equal(t, "bottom-left", cfg.Sticky.Title.Origin, "untouched keys keep defaults")

	_, err = Load(writeFile(t, "board: {focus_scale: huge}"))
	assert.ErrorContains(t, err, "unknown scale mode")

	_, err = Load(writeFile(t, "scrollbars: {animation: {easing: wobble}}"))
	assert.ErrorIs(t, err, ErrUnknownEasing)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load(writeFile(t, "viewport: {overscroll_bounds: {bottom: 60}}"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Derived.Viewport.OverscrollBounds, again.Derived.Viewport.OverscrollBounds)
	assert.Equal(t, cfg.Input, again.Input)
	assert.Equal(t, cfg.Simulation, again.Simulation)
	assert.Equal(t, cfg.Sticky, again.Sticky)
	assert.Equal(t, cfg.Board, again.Board)
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	t.Cleanup(func() { global = saved })

	global = nil
	assert.Panics(t, func() { Cfg() })
	require.NoError(t, Init(""))
	assert.Equal(t, 60, Cfg().Screen.TargetFPS)
}

func TestRefreshRederives(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Viewport.MomentumDeceleration = 0.9
	top := 60.0
	cfg.Viewport.OverscrollBounds.Top = &top
	require.NoError(t, cfg.Refresh())
	assert.Equal(t, 0.9, cfg.Derived.Viewport.MomentumDeceleration)
	assert.Equal(t, 60.0, cfg.Derived.Viewport.OverscrollBounds.Top)
	assert.Equal(t, 30.0, cfg.Derived.Viewport.OverscrollBounds.Bottom)

	cfg.Viewport.MomentumDeceleration = 1.5
	assert.ErrorIs(t, cfg.Refresh(), viewport.ErrInvalidOptions)
}
