package main

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/artboard/config"
	"github.com/pthm-cable/artboard/sim"
)

// failedFitness is returned for parameter vectors that cannot be simulated.
const failedFitness = 1e9

// fpsWeight scales the frame-rate deviation against the squared relative
// target errors.
const fpsWeight = 10

// Targets is the feel the tuner aims for.
type Targets struct {
	// Travel is the distance (px) of a fling at the configured velocity.
	Travel float64
	// SettleMS bounds how long that fling may keep moving.
	SettleMS float64
	// Overshoot is how far (px) a fling into an edge should run past it.
	Overshoot float64
	// SnapMS bounds how long a release past an edge takes to spring back.
	SnapMS float64
}

// DefaultTargets returns targets close to the stock tuning.
func DefaultTargets() Targets {
	return Targets{Travel: 1600, SettleMS: 1500, Overshoot: 40, SnapMS: 600}
}

// Breakdown is what one evaluation measured.
type Breakdown struct {
	Travel    float64 `csv:"travel"`
	SettleMS  float64 `csv:"settle_ms"`
	Overshoot float64 `csv:"overshoot"`
	SnapMS    float64 `csv:"snap_ms"`
	FPSDev    float64 `csv:"fps_dev"`
	Fitness   float64 `csv:"fitness"`
}

// FitnessEvaluator runs headless scenarios and scores how far their
// outcome is from the targets.
type FitnessEvaluator struct {
	params  *ParamVector
	base    *config.Config
	targets Targets
	fps     []int
	log     *slog.Logger

	mu   sync.Mutex
	last Breakdown
}

// NewFitnessEvaluator creates a new evaluator. fps lists the frame rates
// the fling is compared across; the first one runs the other scenarios.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, targets Targets, fps []int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:  params,
		base:    baseCfg,
		targets: targets,
		fps:     fps,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Last returns the breakdown of the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() Breakdown {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	b, err := fe.Measure(x)
	if err != nil {
		b = Breakdown{Fitness: failedFitness}
	}
	fe.mu.Lock()
	fe.last = b
	fe.mu.Unlock()
	return b.Fitness
}

// copyConfig returns a copy of the base config that ApplyToConfig may edit.
// Slices and maps stay shared; ApplyToConfig only replaces scalars and
// edge pointers.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.base
	return &c
}

// Measure runs the scenarios for raw parameter values x.
func (fe *FitnessEvaluator) Measure(x []float64) (Breakdown, error) {
	if len(fe.fps) == 0 {
		return Breakdown{}, errors.New("no frame rates")
	}
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return Breakdown{}, err
	}
	scfg := sim.FromConfig(cfg, fe.fps[0])
	scfg.Logger = fe.log

	var (
		wg                          sync.WaitGroup
		fling                       sim.Comparison
		tight, snap                 sim.Result
		errFling, errTight, errSnap error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		fling, errFling = sim.Compare(mustScenario("fling"), scfg, fe.fps)
	}()
	go func() {
		defer wg.Done()
		tight, errTight = sim.Run(mustScenario("tight-fling"), scfg)
	}()
	go func() {
		defer wg.Done()
		snap, errSnap = sim.Run(mustScenario("boundary-snap"), scfg)
	}()
	wg.Wait()
	if err := errors.Join(errFling, errTight, errSnap); err != nil {
		return Breakdown{}, err
	}

	base := fling.Results[0].Summary
	b := Breakdown{
		Travel:    base.Travel,
		SettleMS:  settleTime(base.SettleMS, base.Settled, scfg.DurationMS),
		Overshoot: overshoot(tight),
		SnapMS:    settleTime(snap.Summary.SettleMS, snap.Summary.Settled, scfg.DurationMS),
		FPSDev:    fling.MaxRel,
	}
	b.Fitness = fe.score(b)
	return b, nil
}

func (fe *FitnessEvaluator) score(b Breakdown) float64 {
	t := fe.targets
	return sq((b.Travel-t.Travel)/t.Travel) +
		sq(math.Max(0, b.SettleMS-t.SettleMS)/t.SettleMS) +
		sq((b.Overshoot-t.Overshoot)/math.Max(t.Overshoot, 1)) +
		sq(math.Max(0, b.SnapMS-t.SnapMS)/t.SnapMS) +
		fpsWeight*b.FPSDev
}

// settleTime counts a run that never settled as lasting the whole run.
func settleTime(ms float64, settled bool, duration float64) float64 {
	if !settled {
		return duration
	}
	return ms
}

// overshoot is how far below its final resting offset a downward fling
// travelled.
func overshoot(res sim.Result) float64 {
	lowest := res.Final.Offset.Y
	for _, s := range res.Samples {
		lowest = math.Min(lowest, s.OffsetY)
	}
	return res.Final.Offset.Y - lowest
}

func mustScenario(name string) sim.Scenario {
	sc, ok := sim.Lookup(name)
	if !ok {
		panic("missing scenario " + name)
	}
	return sc
}

func sq(v float64) float64 { return v * v }
