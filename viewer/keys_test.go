package viewer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/artboard/input"
)

func TestDiffTouches(t *testing.T) {
	a := input.TouchPoint{ID: 1, X: 10, Y: 10}
	b := input.TouchPoint{ID: 2, X: 50, Y: 50}
	c := input.TouchPoint{ID: 3, X: 90, Y: 90}

	started, held, lifted := diffTouches(nil, []input.TouchPoint{a})
	assert.Equal(t, []input.TouchPoint{a}, started)
	assert.Empty(t, held)
	assert.Empty(t, lifted)

	started, held, lifted = diffTouches([]input.TouchPoint{a, b}, []input.TouchPoint{b, c})
	assert.Equal(t, []input.TouchPoint{c}, started)
	assert.Equal(t, []input.TouchPoint{b}, held)
	assert.Equal(t, []input.TouchPoint{a}, lifted)

	started, held, lifted = diffTouches([]input.TouchPoint{a}, nil)
	assert.Empty(t, started)
	assert.Empty(t, held)
	assert.Equal(t, []input.TouchPoint{a}, lifted)
}

func TestTouchesMoved(t *testing.T) {
	a := input.TouchPoint{ID: 1, X: 10, Y: 10}
	moved := input.TouchPoint{ID: 1, X: 12, Y: 10}
	other := input.TouchPoint{ID: 2, X: 12, Y: 10}

	assert.False(t, touchesMoved([]input.TouchPoint{a}, []input.TouchPoint{a}))
	assert.True(t, touchesMoved([]input.TouchPoint{a}, []input.TouchPoint{moved}))
	assert.False(t, touchesMoved([]input.TouchPoint{a}, []input.TouchPoint{other}), "new fingers are starts, not moves")
}

func TestButtons(t *testing.T) {
	assert.Equal(t, input.Buttons(0), buttons(false, false))
	assert.Equal(t, input.ButtonPrimary, buttons(true, false))
	assert.Equal(t, input.ButtonSecondary, buttons(false, true))
	assert.Equal(t, input.ButtonPrimary|input.ButtonSecondary, buttons(true, true))
}

func TestWheelDelta(t *testing.T) {
	dx, dy := wheelDelta(rl.Vector2{X: 0, Y: 1})
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, -40.0, dy, "wheel up scrolls toward the top")

	dx, dy = wheelDelta(rl.Vector2{X: -0.5, Y: -2})
	assert.Equal(t, 20.0, dx)
	assert.Equal(t, 80.0, dy)
}

func TestKeyCodesCoverDefaultKeymap(t *testing.T) {
	codes := make(map[string]bool, len(keyCodes))
	for _, code := range keyCodes {
		codes[code] = true
	}
	for code := range input.DefaultKeymap() {
		assert.True(t, codes[code], "no raylib key for %s", code)
	}
}

func TestModifiersKeyEvent(t *testing.T) {
	m := modifiers{ctrl: true, shift: true}
	assert.Equal(t, input.KeyEvent{Code: "Digit0", Ctrl: true, Shift: true}, m.keyEvent("Digit0"))
}
