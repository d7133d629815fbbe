package gesture

import (
	"math"
	"runtime"

	"github.com/pthm-cable/artboard/geom"
)

const (
	maxZoomStep             = 10
	wheelBufferSize         = 10
	detectionThreshold      = 3
	directionLockDuration   = 500 // ms
	contraryEventsThreshold = 6
	eventExpiry             = 500 // ms
	axisPrimaryRatio        = 2.5
	minDeltaThreshold       = 0.5
	bothAxisMinRatio        = 0.2
)

// WheelEvent is a platform-neutral wheel or trackpad scroll event.
type WheelEvent struct {
	DeltaX, DeltaY float64
	// Timestamp in ms.
	Timestamp float64

	Ctrl, Alt, Meta, Shift bool
}

// ZoomModifier reports whether the event should zoom instead of scroll.
func (e WheelEvent) ZoomModifier() bool {
	return e.Ctrl || e.Alt || e.Meta
}

// NormalizedDelta is a wheel delta with the non-locked axis zeroed. Z is the
// zoom delta and is only non-zero when a zoom modifier is held.
type NormalizedDelta struct {
	X, Y, Z   float64
	Direction geom.Direction
}

type wheelSample struct {
	dx, dy, t float64
}

// WheelNormalizer locks trackpad scrolling onto one axis once a gesture has
// shown a clear direction, and keeps the lock through brief contrary noise.
type WheelNormalizer struct {
	// Mac disables the shift-to-horizontal swap, which the platform
	// already performs.
	Mac bool

	buffer        []wheelSample
	direction     geom.Direction
	lockTimestamp float64
	contrary      int
}

// NewWheelNormalizer creates a normalizer for the host platform.
func NewWheelNormalizer() *WheelNormalizer {
	return &WheelNormalizer{Mac: runtime.GOOS == "darwin"}
}

// Direction returns the current lock.
func (w *WheelNormalizer) Direction() geom.Direction {
	return w.direction
}

// Normalize processes one event.
func (w *WheelNormalizer) Normalize(e WheelEvent) NormalizedDelta {
	if e.ZoomModifier() {
		step := e.DeltaY
		if math.Abs(step) > maxZoomStep {
			step = maxZoomStep * sign(step)
		}
		return NormalizedDelta{Z: step / 100, Direction: w.direction}
	}

	dx, dy := e.DeltaX, e.DeltaY
	if e.Shift && !w.Mac {
		dx, dy = dy, 0
		w.setDirection(geom.DirectionHorizontal, e.Timestamp)
	}

	kept := w.buffer[:0]
	for _, s := range w.buffer {
		if e.Timestamp-s.t < eventExpiry {
			kept = append(kept, s)
		}
	}
	w.buffer = append(kept, wheelSample{
		dx: aboveNoise(e.DeltaX),
		dy: aboveNoise(e.DeltaY),
		t:  e.Timestamp,
	})
	if len(w.buffer) > wheelBufferSize {
		w.buffer = w.buffer[1:]
	}

	if w.direction != geom.DirectionNone && e.Timestamp-w.lockTimestamp > directionLockDuration {
		w.resetDirection()
	}

	if w.direction == geom.DirectionNone {
		w.detect(e.Timestamp)
	} else {
		w.validate(e)
	}

	out := NormalizedDelta{X: dx, Y: dy, Direction: w.direction}
	switch w.direction {
	case geom.DirectionVertical:
		out.X = 0
	case geom.DirectionHorizontal:
		out.Y = 0
	}
	return out
}

// Reset drops the buffer and the lock.
func (w *WheelNormalizer) Reset() {
	w.buffer = nil
	w.resetDirection()
}

func (w *WheelNormalizer) detect(now float64) {
	if len(w.buffer) < detectionThreshold {
		return
	}

	var absX, absY float64
	for _, s := range w.buffer[len(w.buffer)-detectionThreshold:] {
		absX += math.Abs(s.dx)
		absY += math.Abs(s.dy)
	}
	if absX < minDeltaThreshold && absY < minDeltaThreshold {
		return
	}

	hi, lo := math.Max(absX, absY), math.Min(absX, absY)
	var ratio float64
	if hi > 0 {
		ratio = lo / hi
	}

	switch {
	case ratio >= bothAxisMinRatio:
		w.setDirection(geom.DirectionBoth, now)
	case absX > absY:
		w.setDirection(geom.DirectionHorizontal, now)
	default:
		w.setDirection(geom.DirectionVertical, now)
	}
}

func (w *WheelNormalizer) validate(e WheelEvent) {
	if !w.isContrary(e) {
		w.contrary = 0
		w.lockTimestamp = e.Timestamp
		return
	}

	w.contrary++
	if w.contrary >= contraryEventsThreshold {
		w.resetDirection()
		w.detect(e.Timestamp)
	}
}

func (w *WheelNormalizer) isContrary(e WheelEvent) bool {
	absX, absY := math.Abs(e.DeltaX), math.Abs(e.DeltaY)
	switch w.direction {
	case geom.DirectionHorizontal:
		return absY > absX*axisPrimaryRatio && absY > minDeltaThreshold
	case geom.DirectionVertical:
		return absX > absY*axisPrimaryRatio && absX > minDeltaThreshold
	}
	return false
}

func (w *WheelNormalizer) setDirection(d geom.Direction, t float64) {
	w.direction = d
	w.lockTimestamp = t
	w.contrary = 0
}

func (w *WheelNormalizer) resetDirection() {
	w.direction = geom.DirectionNone
	w.lockTimestamp = 0
	w.contrary = 0
}

func aboveNoise(v float64) float64 {
	if math.Abs(v) > minDeltaThreshold {
		return v
	}
	return 0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
