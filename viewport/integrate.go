package viewport

import (
	"math"

	"github.com/pthm-cable/artboard/geom"
)

const (
	// Decay factors are expressed per tick of this reference rate and
	// rescaled to the real frame time.
	referenceRate = 60

	stallSeconds            = 0.5
	boundaryTolerance       = 1.5
	outOfBoundsDeceleration = 0.85
	minMomentumVelocity     = 2

	scaleSmoothing       = 0.09
	scaleSettleThreshold = 0.01
	overscaleDecay       = 0.95
)

// frameSeconds returns the elapsed time since the previous tick, never
// negative.
func frameSeconds(s *state, now float64) float64 {
	return math.Max(0, (now-s.lastLoopTime)/1000)
}

// applyMomentum advances the offset along the decaying momentum vector and
// reports whether the motion has settled inside the boundaries.
func applyMomentum(s *state, now float64, b geom.Boundaries) bool {
	m := s.momentum
	if m == nil {
		return true
	}

	dt := frameSeconds(s, now)
	if dt > stallSeconds {
		s.momentum = nil
		return true
	}

	inX := s.offset.X-b.XMin >= -boundaryTolerance && s.offset.X-b.XMax <= boundaryTolerance
	inY := s.offset.Y-b.YMin >= -boundaryTolerance && s.offset.Y-b.YMax <= boundaryTolerance

	decX, decY := m.Deceleration, m.Deceleration
	if !inX {
		decX = outOfBoundsDeceleration
	}
	if !inY {
		decY = outOfBoundsDeceleration
	}

	var doneX, doneY bool
	s.offset.X, m.X, doneX = integrateAxis(s.offset.X, m.X, decX, inX, b.XMin, b.XMax, dt)
	s.offset.Y, m.Y, doneY = integrateAxis(s.offset.Y, m.Y, decY, inY, b.YMin, b.YMax, dt)

	return doneX && doneY && inX && inY
}

// integrateAxis returns the new position and velocity of one axis and
// whether its velocity fell below the settle threshold. An axis that has
// stopped outside the tolerance band keeps being pulled toward the boundary.
func integrateAxis(pos, v, decel float64, inBand bool, min, max, dt float64) (float64, float64, bool) {
	r := math.Pow(decel, dt*referenceRate)
	travel := decayedTravel(v, decel, dt)
	v *= r

	done := math.Abs(v) < minMomentumVelocity
	switch {
	case !done:
		pos = geom.Dampen(pos+travel, min, max, r)
	case !inBand:
		pos = geom.Dampen(pos, min, max, r)
	}
	return pos, v, done
}

// decayedTravel integrates v·decel^(t·referenceRate) over dt seconds.
func decayedTravel(v, decel, dt float64) float64 {
	switch {
	case dt == 0 || decel <= 0:
		return 0
	case decel >= 1:
		return v * dt
	}
	k := -referenceRate * math.Log(decel)
	return v * (1 - math.Pow(decel, dt*referenceRate)) / k
}

// applyScaleMomentum eases offset and scale toward the scale target and
// reports whether they arrived.
func applyScaleMomentum(s *state, now, maxScale float64) bool {
	t := s.scaleTarget
	if t == nil {
		return true
	}

	dt := frameSeconds(s, now)
	if dt > stallSeconds {
		s.scaleTarget = nil
		return true
	}

	ticks := dt * referenceRate
	if t.Scale > maxScale {
		t.Scale = math.Max(maxScale, t.Scale*math.Pow(overscaleDecay, ticks))
	}

	alpha := 1 - math.Pow(1-scaleSmoothing, ticks)
	s.offset.X = geom.Lerp(s.offset.X, t.X, alpha)
	s.offset.Y = geom.Lerp(s.offset.Y, t.Y, alpha)
	s.scale = geom.Lerp(s.scale, t.Scale, alpha)

	done := math.Abs(t.X-s.offset.X) < scaleSettleThreshold &&
		math.Abs(t.Y-s.offset.Y) < scaleSettleThreshold &&
		math.Abs(t.Scale-s.scale) < scaleSettleThreshold
	if done {
		s.offset = geom.Coord{X: t.X, Y: t.Y}
		s.scale = t.Scale
	}
	return done
}

// applyAnimation interpolates toward the animation target and reports
// whether it has finished. The first call latches the start time.
func applyAnimation(s *state, now float64, a *Animation) bool {
	if a.StartTime == 0 {
		a.StartTime = now
	}

	progress := 1.0
	if a.Duration > 0 {
		progress = geom.Clamp01((now - a.StartTime) / a.Duration)
	}
	eased := a.Easing(progress)

	s.offset.X = geom.Lerp(a.StartX, a.X, eased)
	s.offset.Y = geom.Lerp(a.StartY, a.Y, eased)
	s.scale = geom.Lerp(a.StartScale, a.Scale, eased)

	if progress >= 1 {
		s.offset = geom.Coord{X: a.X, Y: a.Y}
		s.scale = a.Scale
		return true
	}
	return false
}
