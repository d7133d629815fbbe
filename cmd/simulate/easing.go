package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/artboard/easing"
)

func newEasingCmd() *cobra.Command {
	var (
		samples int
		list    bool
	)
	cmd := &cobra.Command{
		Use:   "easing [name...]",
		Short: "Plot easing curves.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list || len(args) == 0 {
				for _, name := range easing.Names() {
					marker := ""
					if easing.Overshooting(name) {
						marker = " (overshoots)"
					}
					fmt.Fprintf(out, "%s%s\n", name, marker)
				}
				return nil
			}

			for _, name := range args {
				fn, err := easing.ByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, asciigraph.Plot(easing.Sample(fn, samples),
					asciigraph.Height(10),
					asciigraph.Width(plotWidth),
					asciigraph.Precision(2),
					asciigraph.Caption(name),
				))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&samples, "samples", 60, "points per curve")
	cmd.Flags().BoolVar(&list, "list", false, "list curve names")
	return cmd
}
