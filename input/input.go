// Package input translates platform-neutral pointer, touch, wheel and key
// events into viewport operations. Each adapter is a viewport plugin: add its
// options with (*viewport.Viewport).AddPlugin or Attach and feed the returned
// handler from the host's event loop.
//
// Coordinates are page coordinates, the same space as the container
// rectangle.
package input

import (
	"fmt"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

const defaultDirectionThreshold = 20 // degrees

// Buttons is the pressed-button bitmask of a pointer event.
type Buttons uint8

const (
	ButtonPrimary   Buttons = 1
	ButtonSecondary Buttons = 2
)

// PointerEvent is a mouse event.
type PointerEvent struct {
	X, Y    float64
	Buttons Buttons
}

// Coord returns the event position.
func (e PointerEvent) Coord() geom.Coord {
	return geom.Coord{X: e.X, Y: e.Y}
}

// TouchPoint is one active finger.
type TouchPoint struct {
	ID   int
	X, Y float64
}

func touchCoords(touches []TouchPoint) []geom.Coord {
	out := make([]geom.Coord, len(touches))
	for i, t := range touches {
		out[i] = geom.Coord{X: t.X, Y: t.Y}
	}
	return out
}

// KeyEvent is a key press identified by its physical key code, e.g.
// "ArrowDown", "Space" or "Digit0".
type KeyEvent struct {
	Code                   string
	Ctrl, Alt, Meta, Shift bool
}

// Attach adds def to v and returns the handler as T.
func Attach[T any](v *viewport.Viewport, def viewport.PluginDefinition) (T, error) {
	var zero T
	reg, err := v.Register(def)
	if err != nil {
		return zero, err
	}
	h, ok := reg.Plugin.(T)
	if !ok {
		v.RemovePlugin(reg)
		return zero, fmt.Errorf("plugin is %T, not %T", reg.Plugin, zero)
	}
	return h, nil
}

// local converts a page coordinate into container coordinates.
func local(v *viewport.Viewport, p geom.Coord) geom.Coord {
	r := v.ContainerRect()
	return geom.Coord{X: p.X - r.X, Y: p.Y - r.Y}
}
