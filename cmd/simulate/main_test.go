package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/artboard/sim"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ARTBOARD_CONFIG", "")
	t.Setenv("ARTBOARD_OUTPUT_DIR", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEasingList(t *testing.T) {
	out, err := execute(t, "easing", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "easeInOutExpo\n")
	assert.Contains(t, out, "easeOutBack (overshoots)\n")
}

func TestEasingPlot(t *testing.T) {
	out, err := execute(t, "easing", "easeOutCubic", "--samples", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "easeOutCubic")

	_, err = execute(t, "easing", "wobble")
	assert.ErrorContains(t, err, `unknown easing "wobble"`)
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "fling", "--fps", "30", "--output", dir, "--plot")
	require.NoError(t, err)
	assert.Contains(t, out, "fling")
	assert.Contains(t, out, "30 fps")
	assert.Contains(t, out, "offset y")

	for _, name := range []string{"trajectory.csv", "markers.csv", "summary.csv", "config.yaml"} {
		_, err := os.Stat(filepath.Join(dir, "fling_30", name))
		assert.NoError(t, err, name)
	}
}

func TestRunUnknownScenario(t *testing.T) {
	_, err := execute(t, "run", "spin")
	assert.ErrorIs(t, err, sim.ErrUnknownScenario)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "eased-animation", "--fps", "30,60")
	require.NoError(t, err)
	assert.Contains(t, out, "baseline 60 fps")
	assert.Contains(t, out, " ok\n")
}

func TestCompareTolerance(t *testing.T) {
	// A negative tolerance rejects every run.
	_, err := execute(t, "compare", "fling", "--fps", "30,60", "--tolerance=-1")
	assert.ErrorIs(t, err, errTolerance)
}
