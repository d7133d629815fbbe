// Easing preview tool - interactive animation preview with sliders.
//
// Usage: go run ./cmd/easingpreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/camera"
	"github.com/pthm-cable/artboard/easing"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	artboardSize = 1024
	gridCells    = 8
	curveHeight  = 180
	curveSamples = 120
)

// PreviewParams holds the animation being previewed.
type PreviewParams struct {
	Easing   int // index into easing.Names()
	Duration float32
	Scale    float32 // scale of the zoomed-in target
}

func defaultParams(names []string) PreviewParams {
	p := PreviewParams{Duration: 400, Scale: 2}
	for i, n := range names {
		if n == "easeOutCubic" {
			p.Easing = i
		}
	}
	return p
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Easing Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	names := easing.Names()
	params := defaultParams(names)

	v, err := viewport.New(
		viewport.StaticContainer{X: 10, Y: 10, Width: previewSize, Height: previewSize},
		viewport.WithClock(func() float64 { return rl.GetTime() * 1000 }),
		viewport.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	v.SetArtboardSize(artboardSize, artboardSize)
	v.SetScale(float64(previewSize)/artboardSize, true)

	tracker := &camera.Tracker{Origin: geom.Coord{X: 10, Y: 10}, Precision: camera.DefaultPrecision}
	v.AddPlugin(tracker)

	zoomed := false
	play := func() {
		opts := viewport.AnimationOptions{Easing: names[params.Easing], Duration: float64(params.Duration)}
		if zoomed {
			v.AnimateTo("preview", 0, 0, float64(previewSize)/artboardSize, opts)
		} else {
			s := float64(params.Scale)
			// Center the middle of the artboard.
			c := float64(previewSize)/2 - artboardSize/2*s
			v.AnimateTo("preview", c, c, s, opts)
		}
		zoomed = !zoomed
	}

	for !rl.WindowShouldClose() {
		snap := v.Loop(rl.GetTime() * 1000)
		cam := tracker.Camera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		drawArtboard(cam)
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Offset: %.1f, %.1f  Scale: %.3f", snap.Offset.X, snap.Offset.Y, snap.Scale), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Interaction: %s", snap.Interaction), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		name := names[params.Easing]
		rl.DrawText("Animation Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Curve plot
		progress := -1.0
		if a, ok := v.Animation(); ok && a.StartTime > 0 && a.Duration > 0 {
			progress = geom.Clamp01((snap.CurrentTime - a.StartTime) / a.Duration)
		}
		drawCurve(rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 20), Height: curveHeight}, name, progress)
		panelY += curveHeight + 20

		// Easing selector
		rl.DrawText("Easing", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 30, Height: 24}, "<") {
			params.Easing = (params.Easing + len(names) - 1) % len(names)
		}
		rl.DrawText(name, int32(panelX+40), int32(panelY+4), 16, rl.DarkGray)
		if gui.Button(rl.Rectangle{X: panelX + float32(panelWidth-80), Y: panelY, Width: 30, Height: 24}, ">") {
			params.Easing = (params.Easing + 1) % len(names)
		}
		panelY += 40

		// Duration slider
		rl.DrawText("Duration (ms)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Duration = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"50", "3000",
			params.Duration, 50, 3000,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.Duration), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		// Target scale slider
		rl.DrawText("Zoomed scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Scale = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "5.0",
			params.Scale, 0.5, 5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(zoomed, "Zoom Out", "Zoom In")) || rl.IsKeyPressed(rl.KeySpace) {
			play()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(names)
			v.CancelAnimation()
			v.SetScale(float64(previewSize)/artboardSize, true)
			v.SetOffset(0, 0, true)
			zoomed = false
		}
		panelY += 55

		// Output YAML
		yaml := fmt.Sprintf("animation:\n  easing: %s\n  duration: %.0f", name, params.Duration)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Space to play, C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// drawArtboard draws a checkerboard covering the artboard.
func drawArtboard(cam *camera.Camera) {
	cell := float64(artboardSize) / gridCells
	for row := 0; row < gridCells; row++ {
		for col := 0; col < gridCells; col++ {
			r := geom.Rect{X: float64(col) * cell, Y: float64(row) * cell, Width: cell, Height: cell}
			if !cam.IsVisible(r, 0) {
				continue
			}
			s := cam.ContentRectToScreen(r)
			c := rl.NewColor(70, 130, 180, 255)
			if (row+col)%2 == 0 {
				c = rl.NewColor(240, 240, 245, 255)
			}
			rl.DrawRectangleRec(rl.Rectangle{X: float32(s.X), Y: float32(s.Y), Width: float32(s.Width), Height: float32(s.Height)}, c)
		}
	}
	x, y := cam.ContentToScreen(artboardSize/2, artboardSize/2)
	rl.DrawCircle(int32(x), int32(y), float32(8*cam.ScaleX), rl.Maroon)
}

// drawCurve plots the named curve in bounds with a marker at progress (none
// when negative). Overshooting curves get headroom above and below.
func drawCurve(bounds rl.Rectangle, name string, progress float64) {
	fn, err := easing.ByName(name)
	if err != nil {
		return
	}
	rl.DrawRectangleLinesEx(bounds, 1, rl.LightGray)

	lo, hi := 0.0, 1.0
	if easing.Overshooting(name) {
		lo, hi = -0.5, 1.5
	}
	point := func(t, e float64) rl.Vector2 {
		return rl.Vector2{
			X: bounds.X + float32(t)*bounds.Width,
			Y: bounds.Y + bounds.Height - float32((e-lo)/(hi-lo))*bounds.Height,
		}
	}

	rl.DrawLineV(point(0, 0), point(1, 0), rl.LightGray)
	rl.DrawLineV(point(0, 1), point(1, 1), rl.LightGray)

	samples := easing.Sample(fn, curveSamples)
	for i := 1; i < len(samples); i++ {
		a := point(float64(i-1)/curveSamples, samples[i-1])
		b := point(float64(i)/curveSamples, samples[i])
		rl.DrawLineV(a, b, rl.DarkBlue)
	}

	if progress >= 0 {
		rl.DrawCircleV(point(progress, fn(progress)), 5, rl.Maroon)
	}
}
