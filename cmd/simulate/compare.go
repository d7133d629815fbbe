package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/artboard/sim"
)

var errTolerance = errors.New("frame-rate deviation above tolerance")

func newCompareCmd(a *app) *cobra.Command {
	var (
		fps       []int
		tolerance float64
	)
	cmd := &cobra.Command{
		Use:   "compare [scenario...]",
		Short: "Check that scenarios end the same way at every frame rate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := selectScenarios(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fps") {
				fps = a.cfg.Simulation.FPS
			}
			if !cmd.Flags().Changed("tolerance") {
				tolerance = a.cfg.Simulation.Tolerance
			}
			out := cmd.OutOrStdout()

			var failed []string
			for _, sc := range scenarios {
				cfg := sim.FromConfig(a.cfg, 0)
				cfg.Logger = a.log
				cmp, err := sim.Compare(sc, cfg, fps)
				if err != nil {
					return err
				}

				status := "ok"
				if !cmp.OK(tolerance) {
					status = "FAIL"
					failed = append(failed, sc.Name)
				}
				fmt.Fprintf(out, "%-16s baseline %d fps  max deviation %.4f%%  %s\n",
					sc.Name, cmp.BaselineFPS, cmp.MaxRel*100, status)
				for _, d := range cmp.Deviations {
					if d.Rel > tolerance {
						fmt.Fprintf(out, "  %4d fps %-9s %.3f vs %.3f (%.4f%%)\n", d.FPS, d.Metric, d.Value, d.Baseline, d.Rel*100)
					}
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("%w: %v", errTolerance, failed)
			}
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&fps, "fps", nil, "frame rates to compare (default from config)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "relative tolerance (default from config)")
	return cmd
}
