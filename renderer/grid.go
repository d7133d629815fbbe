// Package renderer holds the shader-backed layers drawn under the board.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/artboard/camera"
	"github.com/pthm-cable/artboard/geom"
)

// minDotSpacing is the on-screen spacing (px) below which the shader fades
// dots out completely.
const minDotSpacing = 6

const gridShader = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
out vec4 finalColor;

uniform vec2 resolution;
uniform vec2 origin;
uniform float scale;
uniform float spacing;
uniform vec3 dotColor;

void main() {
    vec2 screen = vec2(gl_FragCoord.x, resolution.y - gl_FragCoord.y);
    vec2 content = (screen - origin) / scale;
    vec2 cell = mod(content, spacing);
    vec2 d = min(cell, spacing - cell) * scale;
    float r = max(1.0, scale);
    float a = 1.0 - smoothstep(r - 0.5, r + 0.5, length(d));
    a *= smoothstep(6.0, 12.0, spacing * scale);
    finalColor = vec4(dotColor, a * fragColor.a);
}
`

// GridRenderer draws a dot grid in artboard space so it pans and zooms with
// the content.
type GridRenderer struct {
	shader        rl.Shader
	resolutionLoc int32
	originLoc     int32
	scaleLoc      int32
	spacingLoc    int32
	dotColorLoc   int32

	screenW, screenH float32
	spacing          float32
	dotColor         [3]float32
	initialized      bool
}

// NewGridRenderer creates a grid with dots every spacing artboard units.
func NewGridRenderer(screenW, screenH int32, spacing float64, dot rl.Color) *GridRenderer {
	return &GridRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		spacing: float32(spacing),
		dotColor: [3]float32{
			float32(dot.R) / 255.0,
			float32(dot.G) / 255.0,
			float32(dot.B) / 255.0,
		},
	}
}

// Init compiles the shader (must be called after raylib window is created).
func (g *GridRenderer) Init() {
	if g.initialized {
		return
	}

	g.shader = rl.LoadShaderFromMemory("", gridShader)
	g.resolutionLoc = rl.GetShaderLocation(g.shader, "resolution")
	g.originLoc = rl.GetShaderLocation(g.shader, "origin")
	g.scaleLoc = rl.GetShaderLocation(g.shader, "scale")
	g.spacingLoc = rl.GetShaderLocation(g.shader, "spacing")
	g.dotColorLoc = rl.GetShaderLocation(g.shader, "dotColor")

	// Set static uniforms
	rl.SetShaderValue(g.shader, g.resolutionLoc, []float32{g.screenW, g.screenH}, rl.ShaderUniformVec2)
	rl.SetShaderValue(g.shader, g.spacingLoc, []float32{g.spacing}, rl.ShaderUniformFloat)
	rl.SetShaderValue(g.shader, g.dotColorLoc, g.dotColor[:], rl.ShaderUniformVec3)

	g.initialized = true
}

// Resize updates the resolution uniform.
func (g *GridRenderer) Resize(w, h float32) {
	g.screenW, g.screenH = w, h
	if g.initialized {
		rl.SetShaderValue(g.shader, g.resolutionLoc, []float32{w, h}, rl.ShaderUniformVec2)
	}
}

// Visible reports whether dots are drawn at all at scale.
func (g *GridRenderer) Visible(scale float64) bool {
	return g.spacing > 0 && float64(g.spacing)*scale >= minDotSpacing
}

// Draw fills area (screen space) with the grid seen through cam.
func (g *GridRenderer) Draw(cam *camera.Camera, area geom.Rect) {
	if !g.Visible(cam.ScaleX) {
		return
	}
	if !g.initialized {
		g.Init()
	}

	ox, oy := cam.ContentToScreen(0, 0)

	rl.BeginShaderMode(g.shader)

	rl.SetShaderValue(g.shader, g.originLoc, []float32{float32(ox), float32(oy)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(g.shader, g.scaleLoc, []float32{float32(cam.ScaleX)}, rl.ShaderUniformFloat)

	rl.DrawRectangleRec(rl.Rectangle{
		X:      float32(area.X),
		Y:      float32(area.Y),
		Width:  float32(area.Width),
		Height: float32(area.Height),
	}, rl.White)

	rl.EndShaderMode()
}

// Unload frees resources.
func (g *GridRenderer) Unload() {
	if g.initialized {
		rl.UnloadShader(g.shader)
		g.initialized = false
	}
}
