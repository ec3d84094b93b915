package terminal

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/rectangles/components"
)

const (
	cellEmpty    = ' '
	cellEdge     = '█'
	cellInterior = '░'
)

var (
	canvasStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("15"))
	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a96cff")).
			Background(lipgloss.Color("0")).
			Padding(0, 1)
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Grid is a cols x rows character canvas over an origin-centred viewport.
type Grid struct {
	cols, rows   int
	cellW, cellH float64
	cells        []rune
}

// NewGrid creates an empty grid.
func NewGrid(cols, rows int, cellW, cellH float64) *Grid {
	g := &Grid{cellW: cellW, cellH: cellH}
	g.Resize(cols, rows)
	return g
}

// Resize changes the grid dimensions and clears it.
func (g *Grid) Resize(cols, rows int) {
	g.cols, g.rows = max(cols, 0), max(rows, 0)
	if n := g.cols * g.rows; cap(g.cells) >= n {
		g.cells = g.cells[:n]
	} else {
		g.cells = make([]rune, n)
	}
	g.Clear()
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = cellEmpty
	}
}

// Cell returns the rune at (col, row).
func (g *Grid) Cell(col, row int) rune {
	return g.cells[row*g.cols+col]
}

// Plot rasterizes squares anchored at their bottom-left corner. World y
// grows upward; row 0 is the top of the viewport.
func (g *Grid) Plot(sprites []components.Sprite) {
	halfW := float64(g.cols) * g.cellW / 2
	halfH := float64(g.rows) * g.cellH / 2
	for _, s := range sprites {
		x0 := (float64(s.X) + halfW) / g.cellW
		x1 := (float64(s.X+s.Width) + halfW) / g.cellW
		y0 := (halfH - float64(s.Y+s.Width)) / g.cellH
		y1 := (halfH - float64(s.Y)) / g.cellH

		c0, c1 := int(math.Floor(x0)), int(math.Ceil(x1))-1
		r0, r1 := int(math.Floor(y0)), int(math.Ceil(y1))-1
		for r := max(r0, 0); r <= min(r1, g.rows-1); r++ {
			for c := max(c0, 0); c <= min(c1, g.cols-1); c++ {
				i := r*g.cols + c
				if r == r0 || r == r1 || c == c0 || c == c1 {
					g.cells[i] = cellEdge
				} else if g.cells[i] == cellEmpty {
					g.cells[i] = cellInterior
				}
			}
		}
	}
}

// String renders the grid on a white canvas.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells)*3 + g.rows)
	for r := range g.rows {
		if r > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(canvasStyle.Render(string(g.cells[r*g.cols : (r+1)*g.cols])))
	}
	return sb.String()
}
