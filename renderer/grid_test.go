package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestGridVisible(t *testing.T) {
	g := NewGridRenderer(800, 600, 24, rl.Gray)

	tests := []struct {
		scale float64
		want  bool
	}{
		{1, true},
		{0.25, true}, // 6px apart
		{0.2, false}, // 4.8px apart
		{3, true},
	}
	for _, tt := range tests {
		if got := g.Visible(tt.scale); got != tt.want {
			t.Errorf("Visible(%v) = %v, want %v", tt.scale, got, tt.want)
		}
	}

	if NewGridRenderer(800, 600, 0, rl.Gray).Visible(1) {
		t.Error("zero spacing should disable the grid")
	}
}
