package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/artboard/config"
	"github.com/pthm-cable/artboard/sim"
	"github.com/pthm-cable/artboard/telemetry"
	"github.com/pthm-cable/artboard/viewer"
)

func main() {
	// Load .env before reading env defaults for the flags
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// CLI flags
	configPath := flag.String("config", os.Getenv("ARTBOARD_CONFIG"), "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run a scripted scenario without graphics")
	scenario := flag.String("scenario", "fling", "Scenario for -headless")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", os.Getenv("ARTBOARD_OUTPUT_DIR"), "Output directory for CSV logs, view states and config snapshot")
	viewPath := flag.String("view", "", "View state JSON to restore on start")
	touch := flag.Bool("touch", false, "Drive the viewport from touch points instead of the mouse")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	dir := *outputDir
	if dir == "" && cfg.Telemetry.Record {
		dir = cfg.Telemetry.OutputDir
	}

	if *headless {
		if err := runHeadless(cfg, *scenario, dir, logger); err != nil {
			slog.Error("headless run failed", "scenario", *scenario, "error", err)
			os.Exit(1)
		}
		return
	}

	var vs *telemetry.ViewState
	if *viewPath != "" {
		var err error
		if vs, err = telemetry.LoadViewState(*viewPath); err != nil {
			slog.Error("failed to load view state", "error", err)
			os.Exit(1)
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := viewer.New(cfg, viewer.Options{
		Logger:    logger,
		OutputDir: dir,
		LogStats:  *logStats,
		Touch:     *touch,
		ViewState: vs,
	})
	if err != nil {
		slog.Error("failed to start viewer", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}

// runHeadless plays one scenario at the configured frame rate on a manual
// clock, pure CPU with no raylib window.
func runHeadless(cfg *config.Config, name, dir string, logger *slog.Logger) error {
	sc, ok := sim.Lookup(name)
	if !ok {
		return fmt.Errorf("%w %q", sim.ErrUnknownScenario, name)
	}
	scfg := sim.FromConfig(cfg, cfg.Screen.TargetFPS)
	scfg.Logger = logger

	slog.Info("starting headless scenario",
		"scenario", sc.Name,
		"fps", scfg.FPS,
		"duration_ms", scfg.DurationMS,
	)
	res, err := sim.Run(sc, scfg)
	if err != nil {
		return err
	}
	slog.Info("scenario finished", "summary", res.Summary, "markers", len(res.Markers))

	if dir == "" {
		return nil
	}
	return res.Write(filepath.Join(dir, sc.Name), cfg)
}
