package viewport

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/artboard/easing"
	"github.com/pthm-cable/artboard/geom"
)

// Interaction is the current interaction mode.
type Interaction uint8

const (
	InteractionNone Interaction = iota
	InteractionDragging
	InteractionScaling
	InteractionMomentum
	InteractionMomentumScaling
)

var interactionNames = [...]string{
	InteractionNone:            "none",
	InteractionDragging:        "dragging",
	InteractionScaling:         "scaling",
	InteractionMomentum:        "momentum",
	InteractionMomentumScaling: "momentumScaling",
}

func (i Interaction) String() string {
	if int(i) < len(interactionNames) {
		return interactionNames[i]
	}
	return fmt.Sprintf("Interaction(%d)", i)
}

// MarshalText implements encoding.TextMarshaler.
func (i Interaction) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interaction) UnmarshalText(text []byte) error {
	for n, name := range interactionNames {
		if name == string(text) {
			*i = Interaction(n)
			return nil
		}
	}
	return fmt.Errorf("unknown interaction %q", text)
}

func (i Interaction) isMomentum() bool {
	return i == InteractionMomentum || i == InteractionMomentumScaling
}

// Momentum is a velocity in px/s with its per-reference-tick decay factor.
type Momentum struct {
	X, Y         float64
	Deceleration float64
}

const (
	defaultEasing   = "easeOutCubic"
	defaultDuration = 400
)

// AnimationOptions shapes an animated transition. Zero values pick the
// defaults (easeOutCubic, 400 ms).
type AnimationOptions struct {
	// Easing names a curve from the easing table.
	Easing string `yaml:"easing"`
	// EasingFunc takes precedence over Easing.
	EasingFunc easing.Func `yaml:"-"`
	// Duration in ms.
	Duration float64 `yaml:"duration"`
}

func (o AnimationOptions) withDefaults(name string, duration float64) AnimationOptions {
	if o.Easing == "" && o.EasingFunc == nil {
		o.Easing = name
	}
	if o.Duration <= 0 {
		o.Duration = duration
	}
	return o
}

// Animation is an eased transition between two transforms.
type Animation struct {
	Key string

	// Target.
	X, Y, Scale float64

	StartX, StartY, StartScale float64

	Easing easing.Func
	// EasingName is empty for caller-supplied curves.
	EasingName string

	// StartTime is latched by the first tick that applies the animation.
	StartTime float64
	Duration  float64
}

// Snapshot is the immutable per-tick view of the state that renderers
// consume.
type Snapshot struct {
	ContainerSize   geom.Size
	ArtboardSize    geom.Size
	HasArtboardSize bool
	Offset          geom.Coord
	Scale           float64
	Boundaries      geom.Boundaries
	Interaction     Interaction
	CurrentTime     float64
}

// LogValue implements slog.LogValuer for structured logging.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("time", s.CurrentTime),
		slog.Float64("x", s.Offset.X),
		slog.Float64("y", s.Offset.Y),
		slog.Float64("scale", s.Scale),
		slog.String("interaction", s.Interaction.String()),
		slog.Float64("container_w", s.ContainerSize.Width),
		slog.Float64("container_h", s.ContainerSize.Height),
		slog.Bool("bounded", s.HasArtboardSize),
	)
}
