package sim

import (
	"sort"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/gesture"
	"github.com/pthm-cable/artboard/input"
	"github.com/pthm-cable/artboard/viewport"
)

// Scenario is a named scripted interaction.
type Scenario struct {
	Name        string
	Description string
	Setup       func(env *Env) error
}

var scenarios = []Scenario{
	{
		Name:        "fling",
		Description: "vertical fling from the top of the artboard",
		Setup: func(env *Env) error {
			env.V.SetTouchDirection(geom.DirectionBoth)
			env.V.StartMomentum(geom.Coord{Y: -env.Config.FlingVelocity})
			return nil
		},
	},
	{
		Name:        "tight-fling",
		Description: "fling into the bottom edge and spring back",
		Setup: func(env *Env) error {
			b := env.V.Boundaries(0)
			env.V.SetOffset(0, b.YMin+170, true)
			env.V.SetTouchDirection(geom.DirectionBoth)
			env.V.StartMomentum(geom.Coord{Y: -env.Config.FlingVelocity})
			return nil
		},
	},
	{
		Name:        "boundary-snap",
		Description: "release while overscrolled past the top edge",
		Setup: func(env *Env) error {
			b := env.V.Boundaries(0)
			env.V.SetOffset(0, b.YMax+400, false)
			env.V.AnimateToBoundary()
			return nil
		},
	},
	{
		Name:        "momentum-zoom",
		Description: "four ctrl-wheel steps eased through the scale target",
		Setup: func(env *Env) error {
			w, err := input.Attach[*input.Wheel](env.V, input.WheelOptions{MomentumZoom: true})
			if err != nil {
				return err
			}
			c := env.Config.Container
			for i := 0; i < 4; i++ {
				env.At(float64(i)*40, func() {
					w.Handle(input.WheelEvent{
						WheelEvent: gesture.WheelEvent{DeltaY: -100, Ctrl: true},
						X:          c.Width / 2,
						Y:          c.Height / 2,
					})
				})
			}
			return nil
		},
	},
	{
		Name:        "eased-animation",
		Description: "animated jump to a zoomed region",
		Setup: func(env *Env) error {
			env.V.AnimateTo("sim", -500, -800, 1.5, viewport.AnimationOptions{Easing: "easeInOutCubic", Duration: 600})
			return nil
		},
	},
	{
		Name:        "wheel-burst",
		Description: "six momentum wheel ticks",
		Setup: func(env *Env) error {
			w, err := input.Attach[*input.Wheel](env.V, input.WheelOptions{MomentumScroll: true})
			if err != nil {
				return err
			}
			for i := 0; i < 6; i++ {
				env.At(float64(i)*16, func() {
					w.Handle(input.WheelEvent{WheelEvent: gesture.WheelEvent{DeltaY: 40}})
				})
			}
			return nil
		},
	},
}

// Scenarios returns every built-in scenario.
func Scenarios() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// Names returns the scenario names, sorted.
func Names() []string {
	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.Name
	}
	sort.Strings(names)
	return names
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}
