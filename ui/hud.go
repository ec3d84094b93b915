package ui

import (
	"fmt"
	"slices"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/rectangles/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Count        int
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
	ShowButtons  bool
}

// HUDActions reports the button clicks of one frame.
type HUDActions struct {
	Grow, Shrink bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the count panel, the FPS readout and, when enabled, the
// grow/shrink buttons. It returns which buttons were clicked.
func (h *HUD) Draw(data HUDData) HUDActions {
	r := h.renderer
	th := r.Theme

	// FPS readout, top-left
	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), 10, 10, 20, th.Accent)

	// Count panel, flush with the bottom-left corner
	_, panelH := r.TextPanel(0, data.ScreenHeight, CountText(data.Count), th.CountSize, th.Accent)

	var actions HUDActions
	if !data.ShowButtons {
		return actions
	}
	y := float32(data.ScreenHeight - panelH - 40)
	actions.Grow = gui.Button(rl.Rectangle{X: 10, Y: y, Width: 90, Height: 30}, "Grow (x2)")
	actions.Shrink = gui.Button(rl.Rectangle{X: 110, Y: y, Width: 90, Height: 30}, "Shrink (/2)")
	return actions
}

// DrawControls renders the control legend at the bottom-right of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	w := rl.MeasureText(controls, 14)
	rl.DrawText(controls, screenWidth-w-10, screenHeight-25, 14, rl.Gray)
}

// CountText formats the body count label.
func CountText(count int) string {
	return fmt.Sprintf("Count: %d", count)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	P99        time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the performance panel with phases in registry order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	if !p.visible {
		return
	}

	var ids []string
	if data.Registry != nil {
		ids = data.Registry.IDs()
	} else {
		for id := range data.PhaseTimes {
			ids = append(ids, id)
		}
		slices.Sort(ids)
	}

	r := p.renderer
	pad := r.Theme.Padding
	height := int32(len(ids)+2)*14 + 20 + 2*pad
	r.DrawBorderedPanel(p.x, p.y, 260, height)

	x := p.x + pad
	y := p.y + pad

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 14
	rl.DrawText(fmt.Sprintf("p99:   %s", data.P99.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 14

	for _, id := range ids {
		avg := data.PhaseTimes[id]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		name := id
		if data.Registry != nil {
			name = data.Registry.GetName(id)
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
