package main

import (
	"fmt"
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/artboard/sim"
	"github.com/pthm-cable/artboard/telemetry"
)

const plotWidth = 72

func newRunCmd(a *app) *cobra.Command {
	var (
		fps  int
		plot bool
	)
	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios and print their trajectory summary.",
		Long:  "Run the named scenarios, or all of them, at one frame rate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := selectScenarios(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, sc := range scenarios {
				cfg := sim.FromConfig(a.cfg, fps)
				cfg.Logger = a.log
				res, err := sim.Run(sc, cfg)
				if err != nil {
					return err
				}
				a.log.Info("run", "summary", res.Summary)

				s := res.Summary
				fmt.Fprintf(out, "%-16s %4d fps  end (%.1f, %.1f) x%.3f  travel %.1f px  peak %.0f px/s  settle %.0f ms\n",
					sc.Name, fps, s.EndX, s.EndY, s.EndScale, s.Travel, s.PeakSpeed, s.SettleMS)
				if plot {
					fmt.Fprintln(out, plotSamples(res.Samples))
				}
				if err := writeRun(a, res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 60, "frames per second")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot offset y and scale over time")
	return cmd
}

func selectScenarios(names []string) ([]sim.Scenario, error) {
	if len(names) == 0 {
		return sim.Scenarios(), nil
	}
	out := make([]sim.Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := sim.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q (have %v)", sim.ErrUnknownScenario, name, sim.Names())
		}
		out = append(out, sc)
	}
	return out, nil
}

func plotSamples(samples []telemetry.Sample) string {
	ys := make([]float64, len(samples))
	scales := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.OffsetY
		scales[i] = s.Scale
	}
	return asciigraph.Plot(ys, asciigraph.Height(8), asciigraph.Width(plotWidth), asciigraph.Caption("offset y")) +
		"\n" +
		asciigraph.Plot(scales, asciigraph.Height(4), asciigraph.Width(plotWidth), asciigraph.Precision(3), asciigraph.Caption("scale"))
}

// writeRun writes one run into <output>/<scenario>_<fps>/ when an output
// directory is configured.
func writeRun(a *app, res sim.Result) error {
	if a.outputDir == "" {
		return nil
	}
	return res.Write(filepath.Join(a.outputDir, fmt.Sprintf("%s_%d", res.Scenario, res.FPS)), a.cfg)
}
