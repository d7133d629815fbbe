// Package clock provides millisecond time sources for the viewport engine.
//
// All engine timestamps are float64 milliseconds measured from an arbitrary
// origin, the same unit an animation-frame driver hands to Loop.
package clock

import "time"

// Source returns the current time in milliseconds.
type Source func() float64

// Monotonic returns a Source measuring milliseconds since it was created.
func Monotonic() Source {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start)) / float64(time.Millisecond)
	}
}

// Manual is a hand-advanced clock for tests and headless simulation.
type Manual struct {
	T float64
}

// NewManual creates a manual clock starting at t milliseconds.
func NewManual(t float64) *Manual {
	return &Manual{T: t}
}

// Now returns the current manual time.
func (m *Manual) Now() float64 {
	return m.T
}

// Advance moves the clock forward by ms milliseconds and returns the new time.
func (m *Manual) Advance(ms float64) float64 {
	m.T += ms
	return m.T
}

// Set jumps the clock to t.
func (m *Manual) Set(t float64) {
	m.T = t
}

// Source adapts the manual clock to a Source.
func (m *Manual) Source() Source {
	return m.Now
}
