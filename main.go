// rectangles is a rectangle-scrolling benchmark: squares drift left across
// a resizable canvas, wrapping when they leave it, while the population is
// doubled and halved on demand.
//
// Usage:
//
//	rectangles run          - Open the benchmark window
//	rectangles term         - Run the benchmark in the terminal
//	rectangles bench        - Run the headless bench schedule
//	rectangles history      - Show recorded bench results
//
// Global flags:
//
//	--config <path>     - YAML config merged over the defaults
//	--seed <value>      - Override the RNG seed
//	--log-level <lvl>   - debug, info, warn or error
//	--log-format <fmt>  - auto, text or json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/rectangles/config"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      uint64
	flagLogLevel  string
	flagLogFormat string
	flagLogFile   string
	flagWorkers   int
	flagOutputDir string
	flagLogStats  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rectangles",
	Short: "Rectangle canvas benchmark",
	Long: `Rectangles scrolls squares across a canvas and reports how fast the
frame loop keeps up as the population doubles and halves.

Examples:
  rectangles run
  rectangles run --seed 42 --workers 8
  rectangles term
  rectangles bench --frames 10000 --history ~/.rectangles/bench.db
  rectangles history --history ~/.rectangles/bench.db`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config.yaml (empty = use defaults)")
	pf.Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "auto", "Log format: auto, text, json")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	pf.IntVar(&flagWorkers, "workers", 0, "Worker goroutines (0 = use config)")
	pf.StringVar(&flagOutputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	pf.BoolVar(&flagLogStats, "log-stats", false, "Log window and perf stats")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig initializes the global config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	if err := config.Init(flagConfig); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()
	if flagSeed != 0 {
		cfg.RNG.Seed = flagSeed
	}
	return cfg, nil
}
