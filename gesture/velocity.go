// Package gesture turns raw pointer and wheel samples into the quantities the
// viewport engine consumes: release velocity, drag direction and
// axis-locked wheel deltas.
package gesture

import (
	"math"

	"github.com/pthm-cable/artboard/clock"
	"github.com/pthm-cable/artboard/geom"
)

// sample is a position recorded at a millisecond timestamp.
type sample struct {
	pos geom.Coord
	t   float64
}

// VelocityOptions tunes a VelocityQueue. Zero fields passed to Init keep the
// previous value.
type VelocityOptions struct {
	// MaxTimeWindow is how far back (ms) samples contribute.
	MaxTimeWindow float64 `yaml:"max_time_window"`
	// MinVelocity zeroes an axis whose final speed is below it.
	MinVelocity float64 `yaml:"min_velocity"`
	// MaxVelocity clamps each axis after the multiplicator is applied.
	MaxVelocity float64 `yaml:"max_velocity"`
	// Multiplicator scales the weighted average.
	Multiplicator float64 `yaml:"multiplicator"`
}

// VelocityQueue estimates release velocity from recent positions using a
// linear recency weighting.
type VelocityQueue struct {
	opts    VelocityOptions
	now     clock.Source
	samples []sample
}

// NewVelocityQueue creates a queue reading time from now.
func NewVelocityQueue(opts VelocityOptions, now clock.Source) *VelocityQueue {
	if now == nil {
		now = clock.Monotonic()
	}
	return &VelocityQueue{opts: opts, now: now}
}

// Options returns the current tuning.
func (q *VelocityQueue) Options() VelocityOptions {
	return q.opts
}

// Init resets the buffer and overrides every non-zero field of opts.
func (q *VelocityQueue) Init(opts VelocityOptions) {
	if opts.MaxTimeWindow != 0 {
		q.opts.MaxTimeWindow = opts.MaxTimeWindow
	}
	if opts.MinVelocity != 0 {
		q.opts.MinVelocity = opts.MinVelocity
	}
	if opts.MaxVelocity != 0 {
		q.opts.MaxVelocity = opts.MaxVelocity
	}
	if opts.Multiplicator != 0 {
		q.opts.Multiplicator = opts.Multiplicator
	}
	q.Reset()
}

// Reset clears all samples.
func (q *VelocityQueue) Reset() {
	q.samples = q.samples[:0]
}

// Len returns the number of buffered samples.
func (q *VelocityQueue) Len() int {
	return len(q.samples)
}

// Add records pos at the current time.
func (q *VelocityQueue) Add(pos geom.Coord) {
	q.AddAt(pos, q.now())
}

// AddAt records pos at time t (ms).
func (q *VelocityQueue) AddAt(pos geom.Coord, t float64) {
	q.samples = append(q.samples, sample{pos: pos, t: t})

	// Samples outside the window can never contribute again.
	cut := 0
	for cut < len(q.samples)-2 && t-q.samples[cut].t > q.opts.MaxTimeWindow {
		cut++
	}
	if cut > 0 {
		q.samples = append(q.samples[:0], q.samples[cut:]...)
	}
}

// Velocity returns the weighted average velocity in px/s. It is zero with
// fewer than two samples or when no sample pair spans any time.
func (q *VelocityQueue) Velocity() geom.Coord {
	n := len(q.samples)
	if n < 2 {
		return geom.Coord{}
	}

	last := q.samples[n-1]
	var vx, vy, totalWeight float64

	for i := n - 2; i >= 0; i-- {
		dt := last.t - q.samples[i].t
		if dt > q.opts.MaxTimeWindow {
			break
		}
		if dt == 0 {
			continue
		}
		seconds := dt / 1000
		weight := 1 - dt/q.opts.MaxTimeWindow
		vx += (last.pos.X - q.samples[i].pos.X) / seconds * weight
		vy += (last.pos.Y - q.samples[i].pos.Y) / seconds * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return geom.Coord{}
	}

	limit := func(v float64) float64 {
		v = geom.Clamp(v*q.opts.Multiplicator, -q.opts.MaxVelocity, q.opts.MaxVelocity)
		if math.Abs(v) < q.opts.MinVelocity {
			return 0
		}
		return v
	}
	return geom.Coord{
		X: limit(vx / totalWeight),
		Y: limit(vy / totalWeight),
	}
}
