package input

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pthm-cable/artboard/viewport"
)

var (
	ErrUnknownModifier = errors.New("unknown keyboard modifier")
	ErrUnknownAction   = errors.New("unknown keyboard action")
)

// Modifier names the key that must be held for bindings that require one.
type Modifier string

const (
	ModifierCtrl     Modifier = "ctrl"
	ModifierAlt      Modifier = "alt"
	ModifierMeta     Modifier = "meta"
	ModifierCtrlMeta Modifier = "ctrlmeta"
)

func (m Modifier) pressed(e KeyEvent) bool {
	switch m {
	case ModifierCtrl:
		return e.Ctrl
	case ModifierAlt:
		return e.Alt
	case ModifierMeta:
		return e.Meta
	}
	return e.Ctrl || e.Meta
}

// Binding maps a key to a viewport action.
type Binding struct {
	Action        string `yaml:"action"`
	NeedsModifier bool   `yaml:"needs_modifier"`
}

// Keymap maps key codes to bindings.
type Keymap map[string]Binding

// DefaultKeymap returns the stock bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		"ArrowDown":  {Action: "scrollDown"},
		"ArrowUp":    {Action: "scrollUp"},
		"ArrowLeft":  {Action: "scrollLeft"},
		"ArrowRight": {Action: "scrollRight"},
		"Home":       {Action: "scrollToTop"},
		"End":        {Action: "scrollToEnd"},
		"PageUp":     {Action: "scrollPageUp"},
		"PageDown":   {Action: "scrollPageDown"},
		"Digit0":     {Action: "resetZoom", NeedsModifier: true},
		"Digit1":     {Action: "scaleToFit", NeedsModifier: true},
	}
}

var actions = map[string]func(v *viewport.Viewport, a viewport.AnimationOptions){
	"scrollDown":      func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollDown(0, a) },
	"scrollUp":        func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollUp(0, a) },
	"scrollLeft":      func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollLeft(0, a) },
	"scrollRight":     func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollRight(0, a) },
	"scrollToTop":     func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollToTop(a) },
	"scrollToEnd":     func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollToEnd(a) },
	"scrollPageUp":    func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollPageUp(a) },
	"scrollPageDown":  func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollPageDown(a) },
	"scrollPageLeft":  func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollPageLeft(a) },
	"scrollPageRight": func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ScrollPageRight(a) },
	"resetZoom":       func(v *viewport.Viewport, a viewport.AnimationOptions) { v.ResetZoom(a) },
	"scaleToFit": func(v *viewport.Viewport, a viewport.AnimationOptions) {
		v.ScaleToFit(viewport.ScrollIntoViewOptions{AnimationOptions: a})
	},
	"zoomIn":  func(v *viewport.Viewport, _ viewport.AnimationOptions) { v.ZoomIn() },
	"zoomOut": func(v *viewport.Viewport, _ viewport.AnimationOptions) { v.ZoomOut() },
}

// Actions returns the bindable action names, sorted.
func Actions() []string {
	out := make([]string, 0, len(actions))
	for name := range actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// KeyboardOptions configures keyboard navigation.
type KeyboardOptions struct {
	// Modifier is ctrlmeta when empty.
	Modifier Modifier `yaml:"modifier"`
	// Keymap replaces DefaultKeymap when non-nil.
	Keymap Keymap `yaml:"keymap,omitempty"`
	// Animation is used by scrolling actions; zero fields keep each
	// action's default.
	Animation viewport.AnimationOptions `yaml:"animation"`
}

// Init implements viewport.PluginDefinition.
func (o KeyboardOptions) Init(v *viewport.Viewport) (viewport.Plugin, error) {
	switch o.Modifier {
	case "":
		o.Modifier = ModifierCtrlMeta
	case ModifierCtrl, ModifierAlt, ModifierMeta, ModifierCtrlMeta:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModifier, o.Modifier)
	}
	if o.Keymap == nil {
		o.Keymap = DefaultKeymap()
	}
	for code, b := range o.Keymap {
		if _, ok := actions[b.Action]; !ok {
			return nil, fmt.Errorf("%w: %q bound to %s", ErrUnknownAction, b.Action, code)
		}
	}
	return &Keyboard{v: v, opts: o}, nil
}

// Keyboard runs the bound viewport action for key presses.
type Keyboard struct {
	v    *viewport.Viewport
	opts KeyboardOptions
}

// KeyDown runs the action bound to e.Code and reports whether one ran.
func (k *Keyboard) KeyDown(e KeyEvent) bool {
	b, ok := k.opts.Keymap[e.Code]
	if !ok {
		return false
	}
	if b.NeedsModifier && !k.opts.Modifier.pressed(e) {
		return false
	}
	actions[b.Action](k.v, k.opts.Animation)
	return true
}
