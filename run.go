package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/game"
	"github.com/pthm-cable/rectangles/terminal"
	"github.com/pthm-cable/rectangles/window"
)

var flagMaxFrames int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the benchmark window",
	Long: `Open a resizable window and scroll squares across it.

Controls:
  left click / up     grow (double the population)
  right click / down  shrink (halve the population)
  wheel, + / -        zoom the view
  Home                reset the view
  F                   toggle borderless fullscreen
  P                   toggle the phase timing panel
  B                   toggle the on-screen buttons`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the benchmark in the terminal",
	Long: `Run the benchmark inside the terminal. Each cell stands for
terminal.cell_width x terminal.cell_height virtual pixels, so resizing the
terminal resizes the canvas. Logs are discarded unless --log-file is set.`,
	Args: cobra.NoArgs,
	RunE: runTerminal,
}

func init() {
	runCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 0, "Stop after N frames (0 = unlimited)")
}

// newGame loads config and logging and builds a game for an interactive host.
func newGame(quietLogs bool) (*config.Config, *game.Game, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logCloser, err := setupLogging(quietLogs)
	if err != nil {
		return nil, nil, nil, err
	}

	g, err := game.NewGame(cfg, game.Options{
		LogStats:  flagLogStats,
		OutputDir: flagOutputDir,
		Workers:   flagWorkers,
	})
	if err != nil {
		if logCloser != nil {
			logCloser.Close()
		}
		return nil, nil, nil, fmt.Errorf("creating game: %w", err)
	}

	cleanup := func() {
		if err := g.Close(); err != nil {
			slog.Error("closing game", "error", err)
		}
		if logCloser != nil {
			logCloser.Close()
		}
	}
	return cfg, g, cleanup, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, g, cleanup, err := newGame(false)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("starting window",
		"seed", cfg.RNG.Seed,
		"workers", g.Workers(),
		"initial", cfg.Population.Initial,
		"max_frames", flagMaxFrames,
	)
	window.New(cfg, g, flagMaxFrames).Run()
	slog.Info("window closed", "frames", g.Frame(), "bodies", g.Count(), "peak", g.PeakCount())
	return nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, g, cleanup, err := newGame(true)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("starting terminal host", "seed", cfg.RNG.Seed, "frame", cfg.Derived.TerminalFrame)
	if err := terminal.Run(cfg, g); err != nil {
		return fmt.Errorf("terminal host: %w", err)
	}
	return nil
}
