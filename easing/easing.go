// Package easing provides named easing curves mapping animation progress in
// [0,1] onto eased progress. Every curve returns 0 at 0 and 1 at 1; back and
// elastic curves leave [0,1] in between.
package easing

import (
	"fmt"
	"math"
	"sort"
)

// Func maps linear progress onto eased progress.
type Func func(t float64) float64

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1

	elasticC4 = (2 * math.Pi) / 3
	elasticC5 = (2 * math.Pi) / 4.5
)

func Linear(t float64) float64 { return t }

func EaseInQuad(t float64) float64  { return t * t }
func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func EaseInCubic(t float64) float64  { return t * t * t }
func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func EaseInQuart(t float64) float64  { return t * t * t * t }
func EaseOutQuart(t float64) float64 { return 1 - math.Pow(1-t, 4) }
func EaseInOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func EaseInQuint(t float64) float64  { return t * t * t * t * t }
func EaseOutQuint(t float64) float64 { return 1 - math.Pow(1-t, 5) }
func EaseInOutQuint(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 5)/2
}

func EaseInSine(t float64) float64    { return 1 - math.Cos(t*math.Pi/2) }
func EaseOutSine(t float64) float64   { return math.Sin(t * math.Pi / 2) }
func EaseInOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

func EaseInCirc(t float64) float64  { return 1 - math.Sqrt(1-t*t) }
func EaseOutCirc(t float64) float64 { return math.Sqrt(1 - math.Pow(t-1, 2)) }
func EaseInOutCirc(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-math.Pow(2*t, 2))) / 2
	}
	return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
}

func EaseInExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

func EaseOutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func EaseInOutExpo(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	}
	return (2 - math.Pow(2, -20*t+10)) / 2
}

func EaseInBack(t float64) float64 {
	return backC3*t*t*t - backC1*t*t
}

func EaseOutBack(t float64) float64 {
	return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
}

func EaseInOutBack(t float64) float64 {
	if t < 0.5 {
		return (math.Pow(2*t, 2) * ((backC2+1)*2*t - backC2)) / 2
	}
	return (math.Pow(2*t-2, 2)*((backC2+1)*(t*2-2)+backC2) + 2) / 2
}

func EaseOutElastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
}

func EaseInOutElastic(t float64) float64 {
	switch {
	case t == 0 || t == 1:
		return t
	case t < 0.5:
		return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticC5)) / 2
	}
	return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticC5))/2 + 1
}

var table = map[string]Func{
	"linear":           Linear,
	"easeInQuad":       EaseInQuad,
	"easeOutQuad":      EaseOutQuad,
	"easeInOutQuad":    EaseInOutQuad,
	"easeInCubic":      EaseInCubic,
	"easeOutCubic":     EaseOutCubic,
	"easeInOutCubic":   EaseInOutCubic,
	"easeInQuart":      EaseInQuart,
	"easeOutQuart":     EaseOutQuart,
	"easeInOutQuart":   EaseInOutQuart,
	"easeInQuint":      EaseInQuint,
	"easeOutQuint":     EaseOutQuint,
	"easeInOutQuint":   EaseInOutQuint,
	"easeInSine":       EaseInSine,
	"easeOutSine":      EaseOutSine,
	"easeInOutSine":    EaseInOutSine,
	"easeInCirc":       EaseInCirc,
	"easeOutCirc":      EaseOutCirc,
	"easeInOutCirc":    EaseInOutCirc,
	"easeInExpo":       EaseInExpo,
	"easeOutExpo":      EaseOutExpo,
	"easeInOutExpo":    EaseInOutExpo,
	"easeInBack":       EaseInBack,
	"easeOutBack":      EaseOutBack,
	"easeInOutBack":    EaseInOutBack,
	"easeOutElastic":   EaseOutElastic,
	"easeInOutElastic": EaseInOutElastic,
}

// Overshooting reports whether the named curve may leave [0,1].
func Overshooting(name string) bool {
	switch name {
	case "easeInBack", "easeOutBack", "easeInOutBack", "easeOutElastic", "easeInOutElastic":
		return true
	}
	return false
}

// Lookup returns the curve registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := table[name]
	return fn, ok
}

// ByName is Lookup with an error for unknown names.
func ByName(name string) (Func, error) {
	fn, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Names lists every registered curve, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample evaluates fn at n+1 evenly spaced points from 0 to 1.
func Sample(fn Func, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		out[i] = fn(float64(i) / float64(n))
	}
	return out
}
