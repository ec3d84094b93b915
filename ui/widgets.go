package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
}

// DrawBorderedPanel draws a panel background with border.
func (r *Renderer) DrawBorderedPanel(x, y, width, height int32) {
	r.DrawPanel(x, y, width, height)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the
// next line's Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, labelWidth int32) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+labelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// TextPanel draws text on a padded panel anchored by its bottom-left corner
// and returns the panel's size.
func (r *Renderer) TextPanel(x, bottom int32, text string, size int32, color rl.Color) (w, h int32) {
	pad := r.Theme.Padding
	w = rl.MeasureText(text, size) + 2*pad
	h = size + 2*pad
	r.DrawPanel(x, bottom-h, w, h)
	rl.DrawText(text, x+pad, bottom-h+pad, size, color)
	return w, h
}
