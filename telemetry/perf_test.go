package telemetry

import (
	"testing"
	"time"
)

// fakeNow returns a clock that advances only through the returned step func.
func fakeNow() (func() time.Time, func(time.Duration)) {
	t := time.Unix(0, 0)
	return func() time.Time { return t }, func(d time.Duration) { t = t.Add(d) }
}

func newTestCollector(window int, budget time.Duration) (*PerfCollector, func(time.Duration)) {
	pc := NewPerfCollector(window, budget)
	now, step := fakeNow()
	pc.now = now
	return pc, step
}

func TestPerfCollectorPhases(t *testing.T) {
	pc, step := newTestCollector(10, 16*time.Millisecond)

	for i := 0; i < 4; i++ {
		pc.StartFrame()
		pc.EnterPhase(PhaseLoop)
		step(1 * time.Millisecond)
		pc.EnterPhase(PhaseDraw)
		step(3 * time.Millisecond)
		pc.EndFrame()
	}

	s := pc.Stats()
	if s.Frames != 4 {
		t.Fatalf("frames = %d, want 4", s.Frames)
	}
	if s.MeanWork != 4*time.Millisecond {
		t.Errorf("mean work = %v, want 4ms", s.MeanWork)
	}
	if s.PhaseAvg[PhaseLoop] != time.Millisecond || s.PhaseAvg[PhaseDraw] != 3*time.Millisecond {
		t.Errorf("phase avg loop/draw = %v/%v, want 1ms/3ms", s.PhaseAvg[PhaseLoop], s.PhaseAvg[PhaseDraw])
	}
	if s.PhasePct[PhaseLoop] != 25 || s.PhasePct[PhaseDraw] != 75 || s.PhasePct[PhaseCull] != 0 {
		t.Errorf("phase pct = %v, want loop 25 draw 75", s.PhasePct)
	}
	if s.OverBudget != 0 {
		t.Errorf("over budget = %d, want 0", s.OverBudget)
	}
}

func TestPerfCollectorWindowAndBudget(t *testing.T) {
	pc, step := newTestCollector(4, 10*time.Millisecond)

	// Six frames of 2..12 ms; the window keeps the last four: 6, 8, 10, 12.
	for i := 1; i <= 6; i++ {
		pc.StartFrame()
		pc.EnterPhase(PhaseInput)
		step(time.Duration(2*i) * time.Millisecond)
		pc.EndFrame()
	}

	s := pc.Stats()
	if s.Frames != 4 {
		t.Fatalf("frames = %d, want 4", s.Frames)
	}
	if s.MeanWork != 9*time.Millisecond {
		t.Errorf("mean work = %v, want 9ms", s.MeanWork)
	}
	if s.MaxWork != 12*time.Millisecond || s.P95Work != 12*time.Millisecond {
		t.Errorf("max/p95 = %v/%v, want 12ms/12ms", s.MaxWork, s.P95Work)
	}
	if s.OverBudget != 1 {
		t.Errorf("over budget = %d, want 1", s.OverBudget)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(0, 0).Stats()
	if s.Frames != 0 || s.MeanWork != 0 || s.FPS != 0 {
		t.Errorf("empty stats = %+v", s)
	}
	if s.Budget != time.Second/60 {
		t.Errorf("default budget = %v", s.Budget)
	}
}

func TestPerfCollectorPresent(t *testing.T) {
	pc, step := newTestCollector(10, 0)

	pc.Present()
	step(20 * time.Millisecond)
	pc.Present()

	s := pc.Stats()
	if s.Interval != 20*time.Millisecond {
		t.Errorf("interval = %v, want 20ms", s.Interval)
	}
	if s.FPS != 50 {
		t.Errorf("fps = %v, want 50", s.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseOverlay.String() != "overlay" || Phase(200).String() != "unknown" {
		t.Errorf("got %q / %q", PhaseOverlay, Phase(200))
	}
}

func TestPerfStatsRow(t *testing.T) {
	var s PerfStats
	s.MeanWork = 2 * time.Millisecond
	s.OverBudget = 3
	s.PhasePct[PhaseLoop] = 25
	s.PhasePct[PhaseDraw] = 60
	s.FPS = 59.5

	row := s.Row(120)
	if row.WindowEnd != 120 || row.MeanWorkUS != 2000 || row.OverBudget != 3 {
		t.Errorf("row = %+v", row)
	}
	if row.LoopPct != 25 || row.DrawPct != 60 || row.CullPct != 0 {
		t.Errorf("phase pct = %v/%v/%v, want 25/60/0", row.LoopPct, row.DrawPct, row.CullPct)
	}
}
