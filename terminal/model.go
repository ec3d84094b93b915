// Package terminal hosts the benchmark in a terminal via Bubble Tea. Each
// terminal cell stands for a fixed block of virtual pixels, so resizing the
// terminal resizes the simulated viewport.
package terminal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/game"
	"github.com/pthm-cable/rectangles/systems"
)

// statusLines is the number of rows reserved below the canvas.
const statusLines = 2

// TickMsg is sent to trigger a frame.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for the terminal host.
type Model struct {
	game     *game.Game
	interval time.Duration
	cellW    float64
	cellH    float64

	grid    *Grid
	sprites []components.Sprite
	keys    KeyMap
	help    help.Model

	viewport *systems.Viewport
	resizes  []systems.ResizeEvent
	grow     bool
	shrink   bool
	lastTick time.Time
	last     game.FrameResult
	width    int
	quitting bool
}

// NewModel creates a model around g. The viewport stays unknown until the
// first WindowSizeMsg arrives.
func NewModel(cfg *config.Config, g *game.Game) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		game:     g,
		interval: cfg.Derived.TerminalFrame,
		cellW:    cfg.Terminal.CellWidth,
		cellH:    cfg.Terminal.CellHeight,
		grid:     NewGrid(0, 0, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records grow/shrink signals for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Grow):
		m.grow = true
	case key.Matches(msg, m.keys.Shrink):
		m.shrink = true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleResize turns a terminal resize into a primary viewport resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	rows := max(msg.Height-statusLines, 1)
	cols := max(msg.Width, 1)
	m.width = msg.Width
	m.help.Width = msg.Width
	m.grid.Resize(cols, rows)

	vp := systems.Viewport{
		Width:  float32(float64(cols) * m.cellW),
		Height: float32(float64(rows) * m.cellH),
	}
	m.viewport = &vp
	m.resizes = append(m.resizes, systems.ResizeEvent{
		Window: systems.PrimaryWindow,
		Width:  vp.Width,
		Height: vp.Height,
	})
	return m, nil
}

// handleTick steps the game with the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.interval
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.last = m.game.Step(game.FrameInput{
		Viewport: m.viewport,
		Elapsed:  float32(elapsed.Seconds()),
		Resizes:  m.resizes,
		Grow:     m.grow,
		Shrink:   m.shrink,
	})
	m.game.RecordFrame()
	if m.last.TargetChanged {
		slog.Debug("target changed", "frame", m.last.Frame, "target", m.last.Target)
	}

	m.resizes = m.resizes[:0]
	m.grow, m.shrink = false, false
	return m, tickCmd(m.interval)
}

// View renders the canvas and status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.grid.Clear()
	m.sprites = m.game.Sprites(m.sprites[:0])
	m.grid.Plot(m.sprites)

	perf := m.game.Perf()
	var b strings.Builder
	b.WriteString(m.grid.String())
	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("Count: %d", m.game.Count())))
	b.WriteString(infoStyle.Render(fmt.Sprintf("  frame %d  fps %.0f  step %s",
		m.last.Frame, perf.FPS, perf.AvgTickDuration.Round(time.Microsecond))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program.
func Run(cfg *config.Config, g *game.Game) error {
	p := tea.NewProgram(
		NewModel(cfg, g),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
