package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/input"
)

// wheelLine converts one raylib wheel notch into pixels.
const wheelLine = 40

// keyCodes maps raylib keys to the physical key codes the input adapters
// understand.
var keyCodes = map[int32]string{
	rl.KeyDown:     "ArrowDown",
	rl.KeyUp:       "ArrowUp",
	rl.KeyLeft:     "ArrowLeft",
	rl.KeyRight:    "ArrowRight",
	rl.KeyHome:     "Home",
	rl.KeyEnd:      "End",
	rl.KeyPageUp:   "PageUp",
	rl.KeyPageDown: "PageDown",
	rl.KeySpace:    "Space",
	rl.KeyZero:     "Digit0",
	rl.KeyOne:      "Digit1",
	rl.KeyEqual:    "Equal",
	rl.KeyMinus:    "Minus",
}

type modifiers struct {
	ctrl, alt, meta, shift bool
}

func readModifiers() modifiers {
	return modifiers{
		ctrl:  rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl),
		alt:   rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt),
		meta:  rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper),
		shift: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
	}
}

func (m modifiers) keyEvent(code string) input.KeyEvent {
	return input.KeyEvent{Code: code, Ctrl: m.ctrl, Alt: m.alt, Meta: m.meta, Shift: m.shift}
}

// buttons builds the pointer button mask from the held mouse buttons.
func buttons(left, right bool) input.Buttons {
	var b input.Buttons
	if left {
		b |= input.ButtonPrimary
	}
	if right {
		b |= input.ButtonSecondary
	}
	return b
}

// wheelDelta converts a raylib wheel move, positive when scrolling up or
// left, into pixel deltas that are positive when scrolling down or right.
func wheelDelta(move rl.Vector2) (dx, dy float64) {
	return -float64(move.X) * wheelLine, -float64(move.Y) * wheelLine
}

// diffTouches splits the change from prev to cur into fingers placed,
// fingers that stayed and fingers lifted, matching by ID.
func diffTouches(prev, cur []input.TouchPoint) (started, held, lifted []input.TouchPoint) {
	seen := make(map[int]bool, len(cur))
	for _, t := range cur {
		seen[t.ID] = true
	}
	was := make(map[int]bool, len(prev))
	for _, t := range prev {
		was[t.ID] = true
		if !seen[t.ID] {
			lifted = append(lifted, t)
		}
	}
	for _, t := range cur {
		if was[t.ID] {
			held = append(held, t)
		} else {
			started = append(started, t)
		}
	}
	return started, held, lifted
}

// touchesMoved reports whether any finger present in both lists moved.
func touchesMoved(prev, cur []input.TouchPoint) bool {
	at := make(map[int]input.TouchPoint, len(prev))
	for _, t := range prev {
		at[t.ID] = t
	}
	for _, t := range cur {
		if p, ok := at[t.ID]; ok && (p.X != t.X || p.Y != t.Y) {
			return true
		}
	}
	return false
}

func readTouches() []input.TouchPoint {
	n := int(rl.GetTouchPointCount())
	if n == 0 {
		return nil
	}
	out := make([]input.TouchPoint, n)
	for i := range out {
		p := rl.GetTouchPosition(int32(i))
		out[i] = input.TouchPoint{ID: int(rl.GetTouchPointId(int32(i))), X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}
