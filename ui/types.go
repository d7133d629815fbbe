// Package ui draws the viewer's heads-up display and option panel.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/viewport"
)

// Theme is the panel palette and metrics.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	Label       rl.Color
	Value       rl.Color

	// Scale gauge
	GaugeTrack rl.Color
	GaugeFill  rl.Color
	GaugeOut   rl.Color // scale outside [min, max], i.e. overscaled

	// Indexed by viewport.Interaction
	Interaction [5]rl.Color

	Padding    int32
	Line       int32
	LabelWidth int32
	GaugeH     int32
	Font       int32
	HeaderFont int32
}

// DefaultTheme returns the dark theme used by the viewer.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 22, G: 24, B: 30, A: 235},
		PanelBorder: rl.Color{R: 64, G: 68, B: 80, A: 255},
		Header:      rl.Color{R: 240, G: 200, B: 90, A: 255},
		Label:       rl.LightGray,
		Value:       rl.RayWhite,
		GaugeTrack:  rl.Color{R: 44, G: 46, B: 54, A: 255},
		GaugeFill:   rl.Color{R: 90, G: 150, B: 220, A: 255},
		GaugeOut:    rl.Color{R: 230, G: 120, B: 80, A: 255},
		Interaction: [5]rl.Color{
			viewport.InteractionNone:            rl.LightGray,
			viewport.InteractionDragging:        rl.Color{R: 120, G: 200, B: 255, A: 255},
			viewport.InteractionScaling:         rl.Color{R: 190, G: 140, B: 255, A: 255},
			viewport.InteractionMomentum:        rl.Color{R: 120, G: 230, B: 150, A: 255},
			viewport.InteractionMomentumScaling: rl.Color{R: 240, G: 200, B: 90, A: 255},
		},
		Padding:    10,
		Line:       16,
		LabelWidth: 80,
		GaugeH:     10,
		Font:       12,
		HeaderFont: 14,
	}
}

// InteractionColor returns the color the HUD uses for i.
func (t Theme) InteractionColor(i viewport.Interaction) rl.Color {
	if int(i) < len(t.Interaction) {
		return t.Interaction[i]
	}
	return t.Label
}
