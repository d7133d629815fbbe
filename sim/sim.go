// Package sim runs scripted viewport scenarios headlessly on a manual clock
// and compares their outcome across frame rates.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/config"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/telemetry"
	"github.com/pthm-cable/artboard/viewport"
)

const startTime = 1000 // ms; the viewport treats a zero loop time as unset

// ErrUnknownScenario reports a scenario name that is not built in.
var ErrUnknownScenario = errors.New("unknown scenario")

// Config describes one headless run.
type Config struct {
	FPS           int
	DurationMS    float64
	FlingVelocity float64 // px/s

	Container geom.Size
	Artboard  geom.Size
	Viewport  viewport.Options

	Logger *slog.Logger
}

// DefaultConfig returns a 60 fps, 6 s run of an 800x600 container over a
// 2000x3000 artboard.
func DefaultConfig() Config {
	return Config{
		FPS:           60,
		DurationMS:    6000,
		FlingVelocity: 4000,
		Container:     geom.Size{Width: 800, Height: 600},
		Artboard:      geom.Size{Width: 2000, Height: 3000},
		Viewport:      viewport.DefaultOptions(),
	}
}

// FromConfig builds a run configuration from the loaded config at fps.
func FromConfig(c *config.Config, fps int) Config {
	cfg := DefaultConfig()
	cfg.FPS = fps
	cfg.DurationMS = c.Simulation.DurationMS
	cfg.FlingVelocity = c.Simulation.FlingVelocity
	cfg.Viewport = c.Derived.Viewport
	// Blocking rects are window-space and meaningless for the fixed
	// simulated container.
	cfg.Viewport.BlockingRects = nil
	return cfg
}

// Env is what a scenario sets up and scripts against.
type Env struct {
	V      *viewport.Viewport
	Clock  *clock.Manual
	Config Config

	events []event
}

type event struct {
	at float64
	fn func()
}

// At schedules fn to run ms after the scenario start. Events run at their
// exact time between frames, so input timing does not depend on the frame
// rate.
func (e *Env) At(ms float64, fn func()) {
	e.events = append(e.events, event{at: ms, fn: fn})
}

// Result is the outcome of one run.
type Result struct {
	Scenario string
	FPS      int
	Summary  telemetry.Summary
	Samples  []telemetry.Sample
	Markers  []telemetry.Marker
	Final    viewport.Snapshot
}

// Write stores the trajectory, markers, summary and final view of r in dir
// together with the config the run was built from.
func (r Result) Write(dir string, cfg *config.Config) error {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil || om == nil {
		return err
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteSamples(r.Samples); err != nil {
		return err
	}
	if err := om.WriteMarkers(r.Markers); err != nil {
		return err
	}
	if err := om.WriteSummary(r.Summary); err != nil {
		return err
	}
	if _, err := om.SaveViewState(telemetry.ViewStateFromSnapshot(r.Final)); err != nil {
		return err
	}
	return om.Close()
}

// Run plays sc at cfg.FPS for cfg.DurationMS.
func Run(sc Scenario, cfg Config) (Result, error) {
	if cfg.FPS <= 0 {
		return Result{}, fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	clk := clock.NewManual(startTime)
	v, err := viewport.New(
		viewport.StaticContainer{Width: cfg.Container.Width, Height: cfg.Container.Height},
		viewport.WithOptions(cfg.Viewport),
		viewport.WithClock(clk.Source()),
		viewport.WithLogger(log),
	)
	if err != nil {
		return Result{}, fmt.Errorf("creating viewport: %w", err)
	}
	v.SetArtboardSize(cfg.Artboard.Width, cfg.Artboard.Height)

	rec := telemetry.NewRecorder(0)
	if _, err := v.AddPlugin(rec); err != nil {
		return Result{}, err
	}
	v.Loop(startTime)

	env := &Env{V: v, Clock: clk, Config: cfg}
	if err := sc.Setup(env); err != nil {
		return Result{}, fmt.Errorf("%s: setup: %w", sc.Name, err)
	}
	sort.SliceStable(env.events, func(i, j int) bool { return env.events[i].at < env.events[j].at })

	frame := 1000 / float64(cfg.FPS)
	frames := int(math.Ceil(cfg.DurationMS / frame))
	next := 0
	var snap viewport.Snapshot
	for i := 1; i <= frames; i++ {
		t := startTime + float64(i)*frame
		for next < len(env.events) && startTime+env.events[next].at <= t {
			clk.Set(startTime + env.events[next].at)
			env.events[next].fn()
			next++
		}
		clk.Set(t)
		snap = v.Loop(t)
	}
	v.Destroy()

	res := Result{
		Scenario: sc.Name,
		FPS:      cfg.FPS,
		Summary:  telemetry.Summarize(fmt.Sprintf("%s@%d", sc.Name, cfg.FPS), rec.Samples()),
		Samples:  rec.Samples(),
		Markers:  rec.Markers(),
		Final:    snap,
	}
	log.Debug("scenario finished", "summary", res.Summary)
	return res, nil
}

// Deviation is how far one metric at one frame rate is from the baseline.
type Deviation struct {
	FPS      int
	Metric   string
	Baseline float64
	Value    float64
	Rel      float64
}

// Comparison holds runs of one scenario at several frame rates. The
// highest frame rate is the baseline.
type Comparison struct {
	Scenario    string
	BaselineFPS int
	Results     []Result
	Deviations  []Deviation
	MaxRel      float64
}

// OK reports whether every deviation is within tolerance.
func (c Comparison) OK(tolerance float64) bool {
	return c.MaxRel <= tolerance
}

// Compare runs sc at every rate in fps and measures the end transform and
// travel against the highest rate.
func Compare(sc Scenario, cfg Config, fps []int) (Comparison, error) {
	if len(fps) == 0 {
		return Comparison{}, errors.New("no frame rates to compare")
	}
	rates := append([]int(nil), fps...)
	sort.Sort(sort.Reverse(sort.IntSlice(rates)))

	cmp := Comparison{Scenario: sc.Name, BaselineFPS: rates[0]}
	for _, rate := range rates {
		c := cfg
		c.FPS = rate
		res, err := Run(sc, c)
		if err != nil {
			return Comparison{}, err
		}
		cmp.Results = append(cmp.Results, res)
	}

	base := cmp.Results[0].Summary
	for _, res := range cmp.Results[1:] {
		s := res.Summary
		for _, m := range []struct {
			name string
			b, v float64
		}{
			{"end_x", base.EndX, s.EndX},
			{"end_y", base.EndY, s.EndY},
			{"end_scale", base.EndScale, s.EndScale},
			{"travel", base.Travel, s.Travel},
		} {
			d := Deviation{FPS: res.FPS, Metric: m.name, Baseline: m.b, Value: m.v, Rel: relDiff(m.b, m.v)}
			cmp.Deviations = append(cmp.Deviations, d)
			cmp.MaxRel = math.Max(cmp.MaxRel, d.Rel)
		}
	}
	return cmp, nil
}

// relDiff is |a-b| relative to the larger magnitude, floored at 1 so values
// near zero compare in absolute terms.
func relDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
