// Command viewer opens an interactive window onto a world.World: it
// ticks the simulation, paints every cell through the palette
// package's pure colour function into a texture, and exposes a
// pause/resume/reset button row via raygui plus a pan/zoom viewport.
// Nothing outside this package imports raylib.
package main

import (
	"flag"
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/cellsim/camera"
	"github.com/pthm-cable/cellsim/config"
	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/palette"
	"github.com/pthm-cable/cellsim/world"
)

const (
	panelHeight   = 50
	initialWindow = 720
)

var brushOrder = []material.Variant{
	material.Sand, material.Wall, material.Water, material.Fire,
	material.Salt, material.Oxygen, material.Hydrogen, material.Iron,
	material.GameOfLife, material.Empty,
}

func main() {
	configPath := flag.String("config", "", "config YAML file (empty = embedded defaults)")
	width := flag.Int("width", 160, "grid width")
	height := flag.Int("height", 120, "grid height")
	seed := flag.Int64("seed", 0, "RNG seed (0 = process-derived)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		panic(fmt.Sprintf("loading config: %v", err))
	}

	var w *world.World
	if *seed != 0 {
		w = world.NewSeeded(*width, *height, *seed)
	} else {
		w = world.New(*width, *height)
	}

	screenW, screenH := int32(initialWindow), int32(initialWindow)+panelHeight

	rl.InitWindow(screenW, screenH, "cellsim viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	img := rl.GenImageColor(*width, *height, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	cam := camera.New(float32(screenW), float32(screenH-panelHeight), float32(*width), float32(*height))
	cam.SetZoom(cam.MinZoom)

	brushIndex := 0
	paused := false

	for !rl.WindowShouldClose() {
		if !paused {
			w.Tick()
		}
		paintTexture(w, texture, *width, *height)

		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + wheel*0.1)
		}
		panSpeed := 8.0 / cam.Zoom
		if rl.IsKeyDown(rl.KeyRight) {
			cam.Pan(panSpeed, 0)
		}
		if rl.IsKeyDown(rl.KeyLeft) {
			cam.Pan(-panSpeed, 0)
		}
		if rl.IsKeyDown(rl.KeyDown) {
			cam.Pan(0, panSpeed)
		}
		if rl.IsKeyDown(rl.KeyUp) {
			cam.Pan(0, -panSpeed)
		}
		if rl.IsKeyPressed(rl.KeyHome) {
			cam.Reset()
			cam.SetZoom(cam.MinZoom)
		}

		if rl.IsMouseButtonDown(rl.MouseButtonLeft) && rl.GetMouseY() < screenH-panelHeight {
			wx, wy := cam.ScreenToWorld(float32(rl.GetMouseX()), float32(rl.GetMouseY()))
			w.SetParticle(int(wx), int(wy), brushOrder[brushIndex])
		}
		if rl.IsMouseButtonDown(rl.MouseButtonRight) && rl.GetMouseY() < screenH-panelHeight {
			wx, wy := cam.ScreenToWorld(float32(rl.GetMouseX()), float32(rl.GetMouseY()))
			w.SetParticle(int(wx), int(wy), material.Empty)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		minX, minY, maxX, maxY := cam.VisibleWorldBounds()
		dstX, dstY := cam.WorldToScreen(minX, minY)
		dstMaxX, dstMaxY := cam.WorldToScreen(maxX, maxY)
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY},
			rl.Rectangle{X: dstX, Y: dstY, Width: dstMaxX - dstX, Height: dstMaxY - dstY},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)

		panelY := float32(screenH - panelHeight)
		rl.DrawRectangle(0, int32(panelY), screenW, panelHeight, rl.DarkGray)

		if gui.Button(rl.Rectangle{X: 10, Y: panelY + 10, Width: 90, Height: 30}, toggleLabel(paused)) {
			paused = !paused
			if paused {
				w.Pause()
			} else {
				w.Resume()
			}
		}
		if gui.Button(rl.Rectangle{X: 110, Y: panelY + 10, Width: 90, Height: 30}, "Reset") {
			w.Reset()
		}
		if gui.Button(rl.Rectangle{X: 210, Y: panelY + 10, Width: 90, Height: 30}, "Next brush") {
			brushIndex = (brushIndex + 1) % len(brushOrder)
		}
		if gui.Button(rl.Rectangle{X: 310, Y: panelY + 10, Width: 90, Height: 30}, "Recenter") {
			cam.Reset()
			cam.SetZoom(cam.MinZoom)
		}
		rl.DrawText(fmt.Sprintf("brush: %d  live: %d", brushIndex, w.GetParticleCount()), 410, int32(panelY)+18, 16, rl.White)

		rl.EndDrawing()
	}
}

func toggleLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

// paintTexture walks every cell and writes its palette colour into a
// pixel buffer, then uploads the whole frame in one texture update —
// cheaper than one draw call per cell at grid sizes the simulation
// core targets.
func paintTexture(w *world.World, texture rl.Texture2D, width, height int) {
	pixels := make([]color.RGBA, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := palette.Colour(w.GetParticle(x, y))
			pixels[y*width+x] = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	rl.UpdateTexture(texture, pixels)
}
