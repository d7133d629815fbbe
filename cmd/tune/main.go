// Package main tunes the viewport's momentum and spring parameters with
// CMA-ES so flings and edge snaps land on a target feel.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/artboard/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval                 int     `csv:"eval"`
	MomentumDeceleration float64 `csv:"momentum_deceleration"`
	SpringDamping        float64 `csv:"spring_damping"`
	Overscroll           float64 `csv:"overscroll"`
	Breakdown
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// parseFPS parses a comma separated list of frame rates.
func parseFPS(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid frame rate %q", part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no frame rates in %q", s)
	}
	return out, nil
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	fpsList := flag.String("fps", "120,60,30", "Frame rates the fling must agree across; the first runs the edge scenarios")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	travel := flag.Float64("travel", DefaultTargets().Travel, "Target fling travel in px")
	settle := flag.Float64("settle-ms", DefaultTargets().SettleMS, "Longest acceptable fling settle time in ms")
	overshoot := flag.Float64("overshoot", DefaultTargets().Overshoot, "Target overshoot past an edge in px")
	snap := flag.Float64("snap-ms", DefaultTargets().SnapMS, "Longest acceptable edge snap time in ms")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	fps, err := parseFPS(*fpsList)
	if err != nil {
		log.Fatal(err)
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	targets := Targets{Travel: *travel, SettleMS: *settle, Overshoot: *overshoot, SnapMS: *snap}
	evaluator := NewFitnessEvaluator(params, baseCfg, targets, fps)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	// Sequential: the log wrapper below is not safe for concurrent calls.
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := failedFitness
	var bestParams []float64
	var bestBreakdown Breakdown
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++
		b := evaluator.Last()

		// Clamped values are the ones actually simulated
		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = append([]float64(nil), clamped...)
			bestBreakdown = b
		}

		rows := []evalRow{{
			Eval:                 evalCount,
			MomentumDeceleration: clamped[0],
			SpringDamping:        clamped[1],
			Overscroll:           clamped[2],
			Breakdown:            b,
		}}
		if headerWritten {
			err = gocsv.MarshalWithoutHeaders(rows, logFile)
		} else {
			err = gocsv.Marshal(rows, logFile)
			headerWritten = true
		}
		if err != nil {
			log.Printf("failed to log evaluation %d: %v", evalCount, err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: travel=%.0fpx settle=%.0fms overshoot=%.1fpx snap=%.0fms fps_dev=%.3f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, b.Travel, b.SettleMS, b.Overshoot, b.SnapMS, b.FPSDev, fitness, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Frame rates: %v, targets: %+v\n", fps, targets)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.4f %+v\n", bestFitness, bestBreakdown)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	if err := params.ApplyToConfig(bestCfg, bestParams); err != nil {
		log.Fatalf("best parameters rejected: %v", err)
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
