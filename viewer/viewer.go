// Package viewer runs the interactive artboard: a board of cards displayed
// through a viewport driven by raylib input.
package viewer

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/board"
	"github.com/pthm-cable/artboard/camera"
	"github.com/pthm-cable/artboard/config"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/input"
	"github.com/pthm-cable/artboard/overview"
	"github.com/pthm-cable/artboard/renderer"
	"github.com/pthm-cable/artboard/scrollbar"
	"github.com/pthm-cable/artboard/sticky"
	"github.com/pthm-cable/artboard/telemetry"
	"github.com/pthm-cable/artboard/ui"
	"github.com/pthm-cable/artboard/viewport"
)

const (
	defaultPanelWidth = 240
	overviewInset     = 10 // px kept free on both sides of the overview
)

// Options configures a Viewer beyond the loaded config.
type Options struct {
	Logger    *slog.Logger
	OutputDir string
	// LogStats logs perf stats once per window.
	LogStats bool
	// Touch routes raylib touch points to the touch adapter instead of
	// the mouse adapter.
	Touch bool
	// ViewState, when set, is restored once the board is laid out.
	ViewState *telemetry.ViewState
}

// Viewer holds the complete viewer state.
type Viewer struct {
	cfg *config.Config
	log *slog.Logger

	v       *viewport.Viewport
	tracker *camera.Tracker
	board   *board.Board
	grid    *renderer.GridRenderer

	// Input adapters
	mouse     *input.Mouse
	touch     *input.Touch
	wheel     *input.Wheel
	keyboard  *input.Keyboard
	clickZoom *input.ClickZoom
	doubleTap *input.DoubleTapZoom
	overview  *overview.Overview
	scrollY   *scrollbar.Scrollbar
	scrollX   *scrollbar.Scrollbar

	// Labels pinned to the artboard
	title *sticky.Sticky
	badge *sticky.Sticky

	touchEnabled   bool
	touches        []input.TouchPoint
	lastMouse      rl.Vector2
	pressAt        *rl.Vector2
	overviewRect   geom.Rect
	momentumScroll bool

	// Telemetry
	perf      *telemetry.PerfCollector
	logStats  bool
	recorder  *telemetry.Recorder
	recording bool
	output    *telemetry.OutputManager

	// UI
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	panel     *ui.OptionsPanel
	panelW    float64
	panelUI   ui.PanelState
	showPerf  bool

	// State
	tick     int
	snap     viewport.Snapshot
	visible  []board.Item
	selected int
	cards    []int

	screenWidth, screenHeight float32
}

// New builds the board and viewport from cfg and attaches every input
// adapter. The raylib window must already be open.
func New(cfg *config.Config, opts Options) (*Viewer, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	g := &Viewer{
		cfg:            cfg,
		log:            log,
		board:          board.New(),
		touchEnabled:   opts.Touch,
		momentumScroll: cfg.Input.Wheel.MomentumScroll,
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, time.Duration(cfg.Derived.FrameMS*float64(time.Millisecond))),
		logStats:       opts.LogStats,
		recorder:       telemetry.NewRecorder(cfg.Telemetry.MaxSamples),
		hud:            ui.NewHUD(),
		panelW:         defaultPanelWidth,
		selected:       -1,
		screenWidth:    float32(rl.GetScreenWidth()),
		screenHeight:   float32(rl.GetScreenHeight()),
	}
	if rects := cfg.Viewport.BlockingRects; len(rects) > 0 {
		g.panelW = rects[0].Width
	}
	g.grid = renderer.NewGridRenderer(int32(g.screenWidth), int32(g.screenHeight), cfg.Render.GridSpacing, gridDots)
	g.panel = ui.NewOptionsPanel(0, 0, int32(g.panelW), int32(g.screenHeight))
	g.perfPanel = ui.NewPerfPanel(15, 100)
	g.layoutPanel()

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	vopts := cfg.Derived.Viewport
	vopts.BlockingRects = g.blockingRects
	g.v, err = viewport.New(
		viewport.ContainerFunc(g.containerRect),
		viewport.WithOptions(vopts),
		viewport.WithClock(func() float64 { return rl.GetTime() * 1000 }),
		viewport.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	b := cfg.Board
	g.cards = g.board.Grid(b.Cols, b.Rows, b.CardWidth, b.CardHeight, b.Gap, palette)
	bounds := g.board.Bounds()
	g.v.SetArtboardSize(bounds.Width+b.Gap, bounds.Height+b.Gap)

	g.tracker = &camera.Tracker{Precision: cfg.Render.Precision, ScalePrecision: cfg.Render.ScalePrecision}
	if _, err := g.v.AddPlugin(g.tracker); err != nil {
		return nil, err
	}
	if err := g.attachInput(); err != nil {
		return nil, err
	}
	g.notifySizes()
	g.recorder.OnMarker(g.onMarker)
	if cfg.Telemetry.Record {
		g.startRecording()
	}

	if opts.ViewState != nil {
		opts.ViewState.Restore(g.v)
	} else {
		g.v.ScaleToFit(viewport.ScrollIntoViewOptions{Behavior: viewport.BehaviorInstant})
	}

	g.panelUI = ui.PanelState{
		Deceleration: vopts.MomentumDeceleration,
		MaxScale:     vopts.MaxScale,
		MinScale:     vopts.MinScale,
	}

	log.Info("viewer ready",
		"cards", g.board.Len(),
		"artboard_w", bounds.Width,
		"artboard_h", bounds.Height,
		"output", g.output.Dir(),
	)
	return g, nil
}

func (g *Viewer) attachInput() error {
	var err error
	in := g.cfg.Input
	if g.mouse, err = input.Attach[*input.Mouse](g.v, in.Mouse); err != nil {
		return err
	}
	if g.touch, err = input.Attach[*input.Touch](g.v, in.Touch); err != nil {
		return err
	}
	if g.wheel, err = input.Attach[*input.Wheel](g.v, in.Wheel); err != nil {
		return err
	}
	if g.keyboard, err = input.Attach[*input.Keyboard](g.v, in.Keyboard); err != nil {
		return err
	}
	if g.clickZoom, err = input.Attach[*input.ClickZoom](g.v, in.ClickZoom); err != nil {
		return err
	}
	if g.doubleTap, err = input.Attach[*input.DoubleTapZoom](g.v, in.DoubleTapZoom); err != nil {
		return err
	}
	if g.cfg.Overview.Enabled {
		if g.overview, err = input.Attach[*overview.Overview](g.v, g.cfg.Derived.Overview); err != nil {
			return err
		}
	}
	if g.cfg.Scrollbars.Enabled {
		if g.scrollY, err = input.Attach[*scrollbar.Scrollbar](g.v, g.cfg.Derived.ScrollbarY); err != nil {
			return err
		}
		if g.scrollX, err = input.Attach[*scrollbar.Scrollbar](g.v, g.cfg.Derived.ScrollbarX); err != nil {
			return err
		}
	}
	if !g.cfg.Sticky.Title.Disabled {
		if g.title, err = input.Attach[*sticky.Sticky](g.v, g.cfg.Sticky.Title); err != nil {
			return err
		}
	}
	if !g.cfg.Sticky.Badge.Disabled {
		if g.badge, err = input.Attach[*sticky.Sticky](g.v, g.cfg.Sticky.Badge); err != nil {
			return err
		}
	}
	return nil
}

// containerRect is the whole window; the option panel is reported as a
// blocking rectangle instead of shrinking the container.
func (g *Viewer) containerRect() geom.Rect {
	return geom.Rect{Width: float64(g.screenWidth), Height: float64(g.screenHeight)}
}

func (g *Viewer) blockingRects() []geom.Rect {
	return []geom.Rect{g.panelRect()}
}

func (g *Viewer) panelRect() geom.Rect {
	return geom.Rect{
		X:      float64(g.screenWidth) - g.panelW,
		Width:  g.panelW,
		Height: float64(g.screenHeight),
	}
}

// scrollbarRect returns the track of bar: the vertical one runs down the
// right edge of the uncovered container, the horizontal one along the
// bottom.
func (g *Viewer) scrollbarRect(bar *scrollbar.Scrollbar) geom.Rect {
	t := g.cfg.Scrollbars.Thickness
	right := g.panelRect().X
	bottom := float64(g.screenHeight)
	if bar.Orientation() == scrollbar.OrientationX {
		return geom.Rect{Y: bottom - t, Width: math.Max(right-t, 0), Height: t}
	}
	return geom.Rect{X: right - t, Width: t, Height: math.Max(bottom-t, 0)}
}

// overviewSize is the overview box, narrowed to fit the option panel.
func (g *Viewer) overviewSize() geom.Size {
	o := g.cfg.Overview
	return geom.Size{
		Width:  math.Max(math.Min(o.Width, g.panelW-2*overviewInset), 0),
		Height: o.Height,
	}
}

// notifySizes reports the overlay sizes that follow the window and panel
// layout to their plugins.
func (g *Viewer) notifySizes() {
	if g.overview != nil {
		g.v.NotifySizeChange(g.overview, g.overviewSize())
	}
	for _, bar := range []*scrollbar.Scrollbar{g.scrollY, g.scrollX} {
		if bar != nil {
			r := g.scrollbarRect(bar)
			g.v.NotifySizeChange(bar, geom.Size{Width: r.Width, Height: r.Height})
		}
	}
}

func (g *Viewer) layoutPanel() {
	r := g.panelRect()
	g.panel.SetBounds(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
}

// Update runs one frame: input, then the viewport loop.
func (g *Viewer) Update() {
	g.perf.StartFrame()

	g.perf.EnterPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.EnterPhase(telemetry.PhaseLoop)
	g.snap = g.v.Loop(rl.GetTime() * 1000)

	g.perf.EnterPhase(telemetry.PhaseCull)
	g.visible = g.board.Visible(g.tracker.Camera(), g.cfg.Render.CullMargin)

	g.tick++
}

// Draw renders the frame and closes its perf timing.
func (g *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	g.perf.EnterPhase(telemetry.PhaseDraw)
	g.drawBoard()

	g.perf.EnterPhase(telemetry.PhaseOverlay)
	g.drawOverlay()

	g.perf.EnterPhase(telemetry.PhaseRecord)
	g.flushTelemetry()
	g.perf.EndFrame()

	// EndDrawing blocks on vsync, so it stays outside the frame's work.
	rl.EndDrawing()
	g.perf.Present()
}

// Unload flushes a running recording and closes the output files.
func (g *Viewer) Unload() {
	if g.recording {
		g.stopRecording()
	}
	g.v.Destroy()
	g.grid.Unload()
	if err := g.output.Close(); err != nil {
		g.log.Error("closing output", "error", err)
	}
}

// Tick returns the number of frames run.
func (g *Viewer) Tick() int {
	return g.tick
}

// Viewport exposes the underlying viewport.
func (g *Viewer) Viewport() *viewport.Viewport {
	return g.v
}
