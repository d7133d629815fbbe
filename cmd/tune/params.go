package main

import (
	"github.com/pthm-cable/artboard/config"
	"github.com/pthm-cable/artboard/geom"
)

// ParamSpec is one tunable viewport option with its search range.
type ParamSpec struct {
	Name    string
	Path    string // config key, for output
	Min     float64
	Max     float64
	Default float64

	set func(c *config.Config, v float64)
	get func(c *config.Config) float64
}

// ParamVector is the ordered parameter set the optimizer searches.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns momentum deceleration, spring damping and a
// uniform overscroll distance.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{
			Name: "momentum_deceleration", Path: "viewport.momentum_deceleration",
			Min: 0.85, Max: 0.99, Default: 0.96,
			set: func(c *config.Config, v float64) { c.Viewport.MomentumDeceleration = v },
			get: func(c *config.Config) float64 { return c.Derived.Viewport.MomentumDeceleration },
		},
		{
			Name: "spring_damping", Path: "viewport.spring_damping",
			Min: 0.1, Max: 1.0, Default: 0.5,
			set: func(c *config.Config, v float64) { c.Viewport.SpringDamping = v },
			get: func(c *config.Config) float64 { return c.Derived.Viewport.SpringDamping },
		},
		{
			Name: "overscroll", Path: "viewport.overscroll_bounds",
			Min: 0, Max: 120, Default: 30,
			set: func(c *config.Config, v float64) {
				c.Viewport.OverscrollBounds.PartialEdges = geom.PartialEdges{Top: &v, Right: &v, Bottom: &v, Left: &v}
			},
			get: func(c *config.Config) float64 { return c.Derived.Viewport.OverscrollBounds.Top },
		},
	}}
}

func (pv *ParamVector) Dim() int { return len(pv.Specs) }

func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(func(_ int, s ParamSpec) float64 { return s.Default })
}

// Normalize maps raw values onto [0,1] per parameter range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(func(i int, s ParamSpec) float64 { return (raw[i] - s.Min) / (s.Max - s.Min) })
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(func(i int, s ParamSpec) float64 { return geom.Lerp(s.Min, s.Max, unit[i]) })
}

// Clamp limits every value to its range; CMA-ES samples outside [0,1].
func (pv *ParamVector) Clamp(v []float64) []float64 {
	return pv.each(func(i int, s ParamSpec) float64 { return geom.Clamp(v[i], s.Min, s.Max) })
}

func (pv *ParamVector) each(f func(i int, s ParamSpec) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = f(i, s)
	}
	return out
}

// ApplyToConfig writes the clamped values into cfg and rederives it.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	return cfg.Refresh()
}

// ExtractFromConfig reads the current values from cfg's derived options.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.each(func(_ int, s ParamSpec) float64 { return s.get(cfg) })
}
