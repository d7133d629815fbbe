// Package config provides configuration loading and access for the artboard
// viewer and simulator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/artboard/easing"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/input"
	"github.com/pthm-cable/artboard/overview"
	"github.com/pthm-cable/artboard/scrollbar"
	"github.com/pthm-cable/artboard/sticky"
	"github.com/pthm-cable/artboard/viewport"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownEasing is returned for an animation naming a curve that is not
// in the easing table.
var ErrUnknownEasing = errors.New("unknown easing")

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Input      InputConfig      `yaml:"input"`
	Overview   OverviewConfig   `yaml:"overview"`
	Scrollbars ScrollbarConfig  `yaml:"scrollbars"`
	Sticky     StickyConfig     `yaml:"sticky"`
	Board      BoardConfig      `yaml:"board"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Simulation SimulationConfig `yaml:"simulation"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ViewportConfig mirrors viewport.Options.
type ViewportConfig struct {
	MinScale             float64        `yaml:"min_scale"`
	MaxScale             float64        `yaml:"max_scale"`
	ScrollStepAmount     float64        `yaml:"scroll_step_amount"`
	Margin               float64        `yaml:"margin"`
	MomentumDeceleration float64        `yaml:"momentum_deceleration"`
	SpringDamping        float64        `yaml:"spring_damping"`
	Direction            geom.Direction `yaml:"direction"`
	OverscrollBounds     Overscroll     `yaml:"overscroll_bounds"`
	// InitTransform is optional; omitted fields keep offset 0 and scale 1.
	InitTransform          *TransformConfig `yaml:"init_transform,omitempty"`
	RootClientRectMaxStale float64          `yaml:"root_client_rect_max_stale"`
	BlockingRects          []geom.Rect      `yaml:"blocking_rects"`
}

// TransformConfig is an initial offset and scale.
type TransformConfig struct {
	X     *float64 `yaml:"x,omitempty"`
	Y     *float64 `yaml:"y,omitempty"`
	Scale *float64 `yaml:"scale,omitempty"`
}

// InputConfig holds the options of every input adapter.
type InputConfig struct {
	Mouse         input.MouseOptions         `yaml:"mouse"`
	Touch         input.TouchOptions         `yaml:"touch"`
	Wheel         input.WheelOptions         `yaml:"wheel"`
	Keyboard      input.KeyboardOptions      `yaml:"keyboard"`
	ClickZoom     input.ClickZoomOptions     `yaml:"click_zoom"`
	DoubleTapZoom input.DoubleTapZoomOptions `yaml:"double_tap_zoom"`
}

// OverviewConfig holds minimap settings.
type OverviewConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`
	AutoHeight bool    `yaml:"auto_height"`
}

// ScrollbarConfig holds the scrollbars drawn along the right and bottom
// container edges.
type ScrollbarConfig struct {
	Enabled      bool                      `yaml:"enabled"`
	Thickness    float64                   `yaml:"thickness"`
	MinThumbSize float64                   `yaml:"min_thumb_size"`
	Animation    viewport.AnimationOptions `yaml:"animation"`
}

// StickyConfig holds the labels pinned to the artboard.
type StickyConfig struct {
	// Title names the artboard.
	Title sticky.Options `yaml:"title"`
	// Badge marks the selected card; its anchor follows the selection.
	Badge sticky.Options `yaml:"badge"`
}

// BoardConfig describes the demo card grid.
type BoardConfig struct {
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	CardWidth  float64 `yaml:"card_width"`
	CardHeight float64 `yaml:"card_height"`
	Gap        float64 `yaml:"gap"`
	// FocusScale is the scale mode used when Tab scrolls a card into view.
	FocusScale viewport.ScaleMode `yaml:"focus_scale"`
}

// RenderConfig holds camera quantization and culling settings.
type RenderConfig struct {
	Precision      float64 `yaml:"precision"`
	ScalePrecision bool    `yaml:"scale_precision"`
	CullMargin     float64 `yaml:"cull_margin"`
	GridSpacing    float64 `yaml:"grid_spacing"` // artboard units; 0 disables the dot grid
}

// TelemetryConfig holds recording and output settings.
type TelemetryConfig struct {
	Record     bool   `yaml:"record"`
	MaxSamples int    `yaml:"max_samples"`
	OutputDir  string `yaml:"output_dir"`
	PerfWindow int    `yaml:"perf_window"` // frames per perf stats window
}

// SimulationConfig holds headless scenario settings.
type SimulationConfig struct {
	FPS           []int   `yaml:"fps"`
	DurationMS    float64 `yaml:"duration_ms"`
	Tolerance     float64 `yaml:"tolerance"` // relative, for frame-rate comparisons
	FlingVelocity float64 `yaml:"fling_velocity"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Viewport viewport.Options // ready for viewport.New
	Overview overview.Options
	// ScrollbarY and ScrollbarX have no length yet; the viewer reports it.
	ScrollbarY scrollbar.Options
	ScrollbarX scrollbar.Options
	FrameMS    float64 // 1000 / Screen.TargetFPS
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
}

const defaultOverscroll = 30

// Overscroll is how far content may be dragged past each edge. In YAML it
// is either a single number or a mapping with any of top, right, bottom and
// left; missing edges use the default of 30.
type Overscroll struct {
	geom.PartialEdges
}

type overscrollEdges struct {
	Top    *float64 `yaml:"top,omitempty"`
	Right  *float64 `yaml:"right,omitempty"`
	Bottom *float64 `yaml:"bottom,omitempty"`
	Left   *float64 `yaml:"left,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Overscroll) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("overscroll bounds: %w", err)
		}
		o.PartialEdges = geom.PartialEdges{Top: &v, Right: &v, Bottom: &v, Left: &v}
		return nil
	}
	var e overscrollEdges
	if err := node.Decode(&e); err != nil {
		return fmt.Errorf("overscroll bounds: %w", err)
	}
	o.PartialEdges = geom.PartialEdges{Top: e.Top, Right: e.Right, Bottom: e.Bottom, Left: e.Left}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Overscroll) MarshalYAML() (any, error) {
	p := o.PartialEdges
	return overscrollEdges{Top: p.Top, Right: p.Right, Bottom: p.Bottom, Left: p.Left}, nil
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Refresh(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse merges YAML data over cfg; only keys present in data change.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Refresh recomputes derived values and validates. Load calls it; code that
// edits fields afterwards calls it again.
func (c *Config) Refresh() error {
	c.computeDerived()
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	v := c.Viewport
	opts := viewport.Options{
		MinScale:               v.MinScale,
		MaxScale:               v.MaxScale,
		ScrollStepAmount:       v.ScrollStepAmount,
		Margin:                 v.Margin,
		MomentumDeceleration:   v.MomentumDeceleration,
		SpringDamping:          v.SpringDamping,
		Direction:              v.Direction,
		OverscrollBounds:       geom.ParseEdges(&v.OverscrollBounds.PartialEdges, defaultOverscroll),
		RootClientRectMaxStale: v.RootClientRectMaxStale,
	}
	if t := v.InitTransform; t != nil {
		opts.InitTransform = &viewport.Transform{X: orNaN(t.X), Y: orNaN(t.Y), Scale: orNaN(t.Scale)}
	}
	if len(v.BlockingRects) > 0 {
		rects := append([]geom.Rect(nil), v.BlockingRects...)
		opts.BlockingRects = func() []geom.Rect { return rects }
	}
	c.Derived.Viewport = opts

	c.Derived.Overview = overview.Options{
		Size:       geom.Size{Width: c.Overview.Width, Height: c.Overview.Height},
		Padding:    c.Overview.Padding,
		AutoHeight: c.Overview.AutoHeight,
	}

	bar := scrollbar.Options{
		Orientation:  scrollbar.OrientationY,
		MinThumbSize: c.Scrollbars.MinThumbSize,
		Animation:    c.Scrollbars.Animation,
	}
	c.Derived.ScrollbarY = bar
	bar.Orientation = scrollbar.OrientationX
	c.Derived.ScrollbarX = bar

	c.Derived.FrameMS = 1000.0 / 60
	if c.Screen.TargetFPS > 0 {
		c.Derived.FrameMS = 1000.0 / float64(c.Screen.TargetFPS)
	}
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

func orNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func (c *Config) validate() error {
	var errs []error
	if err := c.Derived.Viewport.Validate(); err != nil {
		errs = append(errs, err)
	}
	animations := map[string]viewport.AnimationOptions{
		"input.touch.overscale_animation": c.Input.Touch.OverscaleAnimation,
		"input.keyboard.animation":        c.Input.Keyboard.Animation,
		"input.click_zoom.animation":      c.Input.ClickZoom.Animation,
		"input.double_tap_zoom.animation": c.Input.DoubleTapZoom.Animation,
		"scrollbars.animation":            c.Scrollbars.Animation,
	}
	for key, a := range animations {
		if a.Easing == "" {
			continue
		}
		if _, ok := easing.Lookup(a.Easing); !ok {
			errs = append(errs, fmt.Errorf("%s: %w %q", key, ErrUnknownEasing, a.Easing))
		}
	}
	for _, fps := range c.Simulation.FPS {
		if fps <= 0 {
			errs = append(errs, fmt.Errorf("simulation.fps: %d is not positive", fps))
		}
	}
	return errors.Join(errs...)
}

// Plugins returns the input adapters followed by the enabled overview,
// scrollbars and sticky labels as viewport plugin definitions in a fixed
// order.
func (c *Config) Plugins() []viewport.PluginDefinition {
	defs := []viewport.PluginDefinition{
		c.Input.Mouse,
		c.Input.Touch,
		c.Input.Wheel,
		c.Input.Keyboard,
		c.Input.ClickZoom,
		c.Input.DoubleTapZoom,
	}
	if c.Overview.Enabled {
		defs = append(defs, c.Derived.Overview)
	}
	if c.Scrollbars.Enabled {
		defs = append(defs, c.Derived.ScrollbarY, c.Derived.ScrollbarX)
	}
	for _, label := range []sticky.Options{c.Sticky.Title, c.Sticky.Badge} {
		if !label.Disabled {
			defs = append(defs, label)
		}
	}
	return defs
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
