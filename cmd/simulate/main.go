// Headless viewport scenario runner.
//
// Usage: go run ./cmd/simulate [run|compare|easing] ...
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/artboard/config"
)

// app is the state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	configPath string
	outputDir  string
	verbose    bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		configPath: os.Getenv("ARTBOARD_CONFIG"),
		outputDir:  os.Getenv("ARTBOARD_OUTPUT_DIR"),
	}

	root := &cobra.Command{
		Use:           "simulate",
		Short:         "Run scripted viewport scenarios on a manual clock.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", a.configPath, "config file (defaults embedded; env ARTBOARD_CONFIG)")
	root.PersistentFlags().StringVarP(&a.outputDir, "output", "o", a.outputDir, "directory for CSV output (env ARTBOARD_OUTPUT_DIR)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(newRunCmd(a), newCompareCmd(a), newEasingCmd())
	return root
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
