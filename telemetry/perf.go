package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one timed section of a viewer frame.
type Phase uint8

const (
	PhaseInput   Phase = iota // event translation into input adapters
	PhaseLoop                 // viewport integrators and plugins
	PhaseCull                 // board visibility query
	PhaseDraw                 // cards and grid
	PhaseOverlay              // overview and option panel
	PhaseRecord               // telemetry output

	numPhases
)

var phaseNames = [numPhases]string{"input", "loop", "cull", "draw", "overlay", "record"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists the frame phases in execution order.
var Phases = []Phase{PhaseInput, PhaseLoop, PhaseCull, PhaseDraw, PhaseOverlay, PhaseRecord}

// PhaseTimes holds one duration per phase.
type PhaseTimes [numPhases]time.Duration

type frameTiming struct {
	work   time.Duration
	phases PhaseTimes
}

// PerfCollector times viewer frames phase by phase over a rolling window
// and compares the work done per frame against a frame budget.
type PerfCollector struct {
	now    func() time.Time
	budget time.Duration

	ring []frameTiming
	next int
	full bool

	cur        frameTiming
	frameStart time.Time
	phaseStart time.Time
	inPhase    bool
	phase      Phase

	lastPresent time.Time
	interval    time.Duration
}

// NewPerfCollector keeps the last window frames. budget is the time one
// frame may take at the target rate; 0 uses 60 fps.
func NewPerfCollector(window int, budget time.Duration) *PerfCollector {
	if window < 1 {
		window = 60
	}
	if budget <= 0 {
		budget = time.Second / 60
	}
	return &PerfCollector{
		now:    time.Now,
		budget: budget,
		ring:   make([]frameTiming, window),
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.cur = frameTiming{}
	p.inPhase = false
}

// EnterPhase closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) EnterPhase(ph Phase) {
	t := p.now()
	p.closePhase(t)
	p.phase, p.phaseStart, p.inPhase = ph, t, true
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.cur.phases[p.phase] += t.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndFrame closes the running phase and stores the frame.
func (p *PerfCollector) EndFrame() {
	t := p.now()
	p.closePhase(t)
	p.cur.work = t.Sub(p.frameStart)

	p.ring[p.next] = p.cur
	p.next++
	if p.next == len(p.ring) {
		p.next, p.full = 0, true
	}
}

// Present marks a buffer swap; the gap between two calls is the presented
// frame interval, which includes the wait for vsync.
func (p *PerfCollector) Present() {
	t := p.now()
	if !p.lastPresent.IsZero() {
		p.interval = t.Sub(p.lastPresent)
	}
	p.lastPresent = t
}

func (p *PerfCollector) frames() []frameTiming {
	if p.full {
		return p.ring
	}
	return p.ring[:p.next]
}

// PerfStats summarizes the frames in the window.
type PerfStats struct {
	Frames int

	// Work time per frame, excluding the wait for the next frame
	MeanWork time.Duration
	P95Work  time.Duration
	MaxWork  time.Duration

	// OverBudget counts frames whose work exceeded the budget.
	Budget     time.Duration
	OverBudget int

	PhaseAvg PhaseTimes
	// PhasePct is each phase's share of the mean work, 0-100.
	PhasePct [numPhases]float64

	// Interval between the last two presented frames
	Interval time.Duration
	FPS      float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Budget: p.budget, Interval: p.interval}
	if p.interval > 0 {
		s.FPS = float64(time.Second) / float64(p.interval)
	}

	frames := p.frames()
	s.Frames = len(frames)
	if s.Frames == 0 {
		return s
	}

	work := make([]float64, len(frames))
	var phaseSum PhaseTimes
	for i, f := range frames {
		work[i] = float64(f.work)
		if f.work > p.budget {
			s.OverBudget++
		}
		for ph, d := range f.phases {
			phaseSum[ph] += d
		}
	}
	mean := stat.Mean(work, nil)
	slices.Sort(work)
	s.MeanWork = time.Duration(mean)
	s.P95Work = time.Duration(stat.Quantile(0.95, stat.Empirical, work, nil))
	s.MaxWork = time.Duration(work[len(work)-1])

	n := time.Duration(s.Frames)
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if mean > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / mean * 100
		}
	}
	return s
}

// LogStats logs the window at info level, skipping idle phases.
func (s PerfStats) LogStats(log *slog.Logger) {
	attrs := []any{
		"frames", s.Frames,
		"mean_work_us", s.MeanWork.Microseconds(),
		"p95_work_us", s.P95Work.Microseconds(),
		"over_budget", s.OverBudget,
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	log.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Duration("mean_work", s.MeanWork),
		slog.Duration("p95_work", s.P95Work),
		slog.Duration("max_work", s.MaxWork),
		slog.Int("over_budget", s.OverBudget),
		slog.Float64("fps", s.FPS),
	}
	for _, ph := range Phases {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one perf.csv line.
type PerfRow struct {
	WindowEnd  int     `csv:"window_end"`
	MeanWorkUS int64   `csv:"mean_work_us"`
	P95WorkUS  int64   `csv:"p95_work_us"`
	MaxWorkUS  int64   `csv:"max_work_us"`
	OverBudget int     `csv:"over_budget"`
	FPS        float64 `csv:"fps"`
	InputPct   float64 `csv:"input_pct"`
	LoopPct    float64 `csv:"loop_pct"`
	CullPct    float64 `csv:"cull_pct"`
	DrawPct    float64 `csv:"draw_pct"`
	OverlayPct float64 `csv:"overlay_pct"`
	RecordPct  float64 `csv:"record_pct"`
}

// Row flattens s for CSV output. windowEnd is the frame closing the window.
func (s PerfStats) Row(windowEnd int) PerfRow {
	return PerfRow{
		WindowEnd:  windowEnd,
		MeanWorkUS: s.MeanWork.Microseconds(),
		P95WorkUS:  s.P95Work.Microseconds(),
		MaxWorkUS:  s.MaxWork.Microseconds(),
		OverBudget: s.OverBudget,
		FPS:        s.FPS,
		InputPct:   s.PhasePct[PhaseInput],
		LoopPct:    s.PhasePct[PhaseLoop],
		CullPct:    s.PhasePct[PhaseCull],
		DrawPct:    s.PhasePct[PhaseDraw],
		OverlayPct: s.PhasePct[PhaseOverlay],
		RecordPct:  s.PhasePct[PhaseRecord],
	}
}
