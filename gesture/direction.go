package gesture

import (
	"math"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
)

const (
	directionMinSpan    = 50 // ms
	directionMinSamples = 5
	directionMaxSamples = 32
)

// DirectionQueue classifies the dominant axis of a drag from its buffered
// samples.
type DirectionQueue struct {
	// Threshold is the angular tolerance in degrees around each axis.
	Threshold float64

	now     clock.Source
	samples []sample
}

// NewDirectionQueue creates a queue with the given angular threshold.
func NewDirectionQueue(threshold float64, now clock.Source) *DirectionQueue {
	if now == nil {
		now = clock.Monotonic()
	}
	return &DirectionQueue{Threshold: threshold, now: now}
}

// Add records pos at the current time.
func (q *DirectionQueue) Add(pos geom.Coord) {
	q.AddAt(pos, q.now())
}

// AddAt records pos at time t (ms). Only the newest samples are kept.
func (q *DirectionQueue) AddAt(pos geom.Coord, t float64) {
	if len(q.samples) == directionMaxSamples {
		q.samples = append(q.samples[:0], q.samples[1:]...)
	}
	q.samples = append(q.samples, sample{pos: pos, t: t})
}

// Reset clears the buffer.
func (q *DirectionQueue) Reset() {
	q.samples = q.samples[:0]
}

// Direction returns the classified axis and true once enough movement has
// been seen: at least two samples spanning more than 50 ms, more than five
// samples, or force.
func (q *DirectionQueue) Direction(force bool) (geom.Direction, bool) {
	n := len(q.samples)
	if n < 2 {
		return geom.DirectionNone, false
	}

	span := q.samples[n-1].t - q.samples[0].t
	if span <= directionMinSpan && n <= directionMinSamples && !force {
		return geom.DirectionNone, false
	}

	var dx, dy float64
	for i := 1; i < n; i++ {
		dx += q.samples[i].pos.X - q.samples[i-1].pos.X
		dy += q.samples[i].pos.Y - q.samples[i-1].pos.Y
	}
	steps := float64(n - 1)
	avgX := math.Abs(dx / steps)
	avgY := math.Abs(dy / steps)

	angle := math.Atan2(avgY, avgX) * 180 / math.Pi
	return geom.ClassifyAngle(angle, q.Threshold), true
}
