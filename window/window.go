// Package window hosts the benchmark in a resizable raylib window.
package window

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rectangles/camera"
	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/game"
	"github.com/pthm-cable/rectangles/systems"
	"github.com/pthm-cable/rectangles/ui"
)

const controlsText = "[LMB/Up] grow  [RMB/Down] shrink  [Wheel/+/-] zoom  [Home] reset view  [F] fullscreen  [P] phases  [B] buttons"

const outlineThickness = 1.5

// Host owns the raylib window and feeds a game one frame at a time.
type Host struct {
	cfg    *config.Config
	game   *game.Game
	camera *camera.Camera
	hud    *ui.HUD
	perf   *ui.PerfPanel

	sprites     []components.Sprite
	showButtons bool
	maxFrames   int
}

// New creates a host around g. maxFrames stops the loop after that many
// frames (0 = until the window closes).
func New(cfg *config.Config, g *game.Game, maxFrames int) *Host {
	return &Host{
		cfg:         cfg,
		game:        g,
		camera:      camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		hud:         ui.NewHUD(),
		perf:        ui.NewPerfPanel(10, 40),
		showButtons: true,
		maxFrames:   maxFrames,
	}
}

// Run opens the window and blocks until it is closed.
func (h *Host) Run() {
	if h.cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(h.cfg.Screen.Width), int32(h.cfg.Screen.Height), h.cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(h.cfg.Screen.TargetFPS))

	slog.Info("window opened",
		"width", rl.GetScreenWidth(),
		"height", rl.GetScreenHeight(),
		"target_fps", h.cfg.Screen.TargetFPS,
	)

	var clicks ui.HUDActions
	for !rl.WindowShouldClose() {
		in := h.pollInput(clicks)
		res := h.game.Step(in)
		if res.TargetChanged {
			slog.Debug("target changed", "frame", res.Frame, "target", res.Target)
		}
		clicks = h.draw()
		h.game.RecordFrame()

		if h.maxFrames > 0 && int(res.Frame) >= h.maxFrames {
			break
		}
	}
}

// pollInput gathers the frame's viewport, resize and button signals.
// Button clicks come from the previous frame's HUD pass.
func (h *Host) pollInput(clicks ui.HUDActions) game.FrameInput {
	if rl.IsKeyReleased(rl.KeyF) {
		rl.ToggleBorderlessWindowed()
	}
	if rl.IsKeyReleased(rl.KeyP) {
		h.perf.Toggle()
	}
	if rl.IsKeyReleased(rl.KeyB) {
		h.showButtons = !h.showButtons
	}
	h.handleCameraInput()

	vp := systems.Viewport{
		Width:  float32(rl.GetScreenWidth()),
		Height: float32(rl.GetScreenHeight()),
	}
	in := game.FrameInput{
		Viewport: &vp,
		Elapsed:  rl.GetFrameTime(),
		Grow:     clicks.Grow || rl.IsKeyReleased(rl.KeyUp),
		Shrink:   clicks.Shrink || rl.IsKeyReleased(rl.KeyDown),
	}

	// Clicks that land on a button are already counted through clicks.
	if !h.overButtons() {
		in.Grow = in.Grow || rl.IsMouseButtonReleased(rl.MouseButtonLeft)
		in.Shrink = in.Shrink || rl.IsMouseButtonReleased(rl.MouseButtonRight)
	}

	if rl.IsWindowResized() {
		h.camera.Resize(vp.Width, vp.Height)
		in.Resizes = append(in.Resizes, systems.ResizeEvent{
			Window: systems.PrimaryWindow,
			Width:  vp.Width,
			Height: vp.Height,
		})
	}
	return in
}

// handleCameraInput applies zoom and reset controls. Arrow keys belong to
// grow and shrink, so there is no key panning.
func (h *Host) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		h.camera.ZoomAt(m.X, m.Y, 1+wheel*0.1)
	}

	cx, cy := h.camera.ViewportW/2, h.camera.ViewportH/2
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		h.camera.ZoomAt(cx, cy, 1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		h.camera.ZoomAt(cx, cy, 0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		h.camera.Reset()
	}
}

// overButtons reports whether the cursor is inside the button strip.
func (h *Host) overButtons() bool {
	if !h.showButtons {
		return false
	}
	m := rl.GetMousePosition()
	sh := float32(rl.GetScreenHeight())
	return m.X <= 200 && m.Y >= sh-120
}

// draw renders bodies and the HUD and returns this frame's button clicks.
func (h *Host) draw() ui.HUDActions {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.White)

	h.sprites = h.game.Sprites(h.sprites[:0])
	for _, s := range h.sprites {
		if !h.camera.IsVisible(s.X, s.Y, s.Width) {
			continue
		}
		sx, sy, size := h.camera.SquareToScreen(s.X, s.Y, s.Width)
		rect := rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}
		rl.DrawRectangleRec(rect, rl.White)
		rl.DrawRectangleLinesEx(rect, outlineThickness, rl.Black)
	}

	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	actions := h.hud.Draw(ui.HUDData{
		Count:        h.game.Count(),
		FPS:          rl.GetFPS(),
		ScreenWidth:  sw,
		ScreenHeight: sh,
		ShowButtons:  h.showButtons,
	})
	h.hud.DrawControls(sw, sh, controlsText)

	perf := h.game.Perf()
	h.perf.Draw(ui.PerfPanelData{
		PhaseTimes: perf.PhaseAvg,
		Total:      perf.AvgTickDuration,
		P99:        perf.P99TickDuration,
		Registry:   h.game.Registry(),
	})
	return actions
}
