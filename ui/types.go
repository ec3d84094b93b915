// Package ui draws the on-screen overlays for the windowed benchmark: the
// body count panel, the FPS readout, the grow/shrink buttons and the phase
// timing panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Accent      rl.Color // count and FPS text
	LabelColor  rl.Color
	ValueColor  rl.Color
	Padding     int32
	LineHeight  int32
	FontSize    int32
	CountSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 0, G: 0, B: 0, A: 230},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Accent:      rl.Color{R: 0xa9, G: 0x6c, B: 0xff, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.LightGray,
		Padding:     5,
		LineHeight:  16,
		FontSize:    12,
		CountSize:   30,
	}
}
