package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

// ViewStateVersion is incremented when the format changes.
const ViewStateVersion = 1

// ErrViewStateVersion is returned when loading a view state written by an
// incompatible version.
var ErrViewStateVersion = errors.New("unsupported view state version")

// ViewState is a saved viewport transform that can be restored later.
type ViewState struct {
	Version int     `json:"version"`
	TimeMS  float64 `json:"time_ms"`

	Container geom.Size  `json:"container"`
	Artboard  *geom.Size `json:"artboard,omitempty"`

	OffsetX     float64              `json:"offset_x"`
	OffsetY     float64              `json:"offset_y"`
	Scale       float64              `json:"scale"`
	Interaction viewport.Interaction `json:"interaction"`

	Marker *Marker `json:"marker,omitempty"`
}

// ViewStateFromSnapshot captures a frame snapshot.
func ViewStateFromSnapshot(s viewport.Snapshot) *ViewState {
	vs := &ViewState{
		Version:     ViewStateVersion,
		TimeMS:      s.CurrentTime,
		Container:   s.ContainerSize,
		OffsetX:     s.Offset.X,
		OffsetY:     s.Offset.Y,
		Scale:       s.Scale,
		Interaction: s.Interaction,
	}
	if s.HasArtboardSize {
		size := s.ArtboardSize
		vs.Artboard = &size
	}
	return vs
}

// Transform returns the saved transform, usable as an initial transform.
func (vs *ViewState) Transform() viewport.Transform {
	return viewport.Transform{X: vs.OffsetX, Y: vs.OffsetY, Scale: vs.Scale}
}

// Restore jumps v to the saved transform. The artboard size is restored
// too when one was saved.
func (vs *ViewState) Restore(v *viewport.Viewport) {
	if vs.Artboard != nil {
		v.SetArtboardSize(vs.Artboard.Width, vs.Artboard.Height)
	}
	v.CancelAnimation()
	v.SetScale(vs.Scale, true)
	v.SetOffset(vs.OffsetX, vs.OffsetY, true)
}

// SaveViewState writes a view state to disk.
// Returns the filepath where it was saved.
func SaveViewState(vs *ViewState, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create view state dir: %w", err)
	}

	name := fmt.Sprintf("view_%d", int64(vs.TimeMS))
	if vs.Marker != nil {
		sanitized := strings.ReplaceAll(string(vs.Marker.Type), " ", "_")
		name = fmt.Sprintf("view_%d_%s", int64(vs.TimeMS), sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(vs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal view state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write view state: %w", err)
	}
	return path, nil
}

// LoadViewState reads a view state from disk.
func LoadViewState(path string) (*ViewState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read view state: %w", err)
	}

	var vs ViewState
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("unmarshal view state: %w", err)
	}
	if vs.Version != ViewStateVersion {
		return nil, fmt.Errorf("%w: %d", ErrViewStateVersion, vs.Version)
	}
	return &vs, nil
}
