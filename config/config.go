// Package config provides configuration loading and access for the benchmark.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all benchmark configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Population PopulationConfig `yaml:"population"`
	RNG        RNGConfig        `yaml:"rng"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Bench      BenchConfig      `yaml:"bench"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // 0 = uncapped
	Resizable bool   `yaml:"resizable"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// RNGConfig holds the generator seed.
type RNGConfig struct {
	Seed uint64 `yaml:"seed"`
}

// ParallelConfig holds worker pool settings.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
	Threshold int `yaml:"threshold"` // Bodies below this are processed inline
}

// TelemetryConfig holds telemetry and stats parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of frames per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames in the rolling perf window
	LogEvents           bool    `yaml:"log_events"`            // Log population and resize events via slog
}

// TerminalConfig holds terminal host settings.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // Virtual pixels per terminal column
	CellHeight float64 `yaml:"cell_height"` // Virtual pixels per terminal row
	FPS        int     `yaml:"fps"`
}

// BenchConfig holds the headless benchmark schedule.
type BenchConfig struct {
	Frames      int          `yaml:"frames"`
	DT          float64      `yaml:"dt"`
	GrowEvery   int          `yaml:"grow_every"`   // Grow every N frames (0 = never)
	ShrinkEvery int          `yaml:"shrink_every"` // Shrink every N frames (0 = never)
	Resizes     []ResizeStep `yaml:"resizes"`
	HistoryPath string       `yaml:"history_path"` // sqlite file for bench results ("" = disabled)
}

// ResizeStep resizes the virtual viewport at a given frame of a bench run.
type ResizeStep struct {
	Frame  int     `yaml:"frame"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DerivedConfig holds values computed from other config fields.
type DerivedConfig struct {
	ScreenW32     float32       // Screen.Width as float32
	ScreenH32     float32       // Screen.Height as float32
	BenchDT32     float32       // Bench.DT as float32
	TerminalFrame time.Duration // Tick interval for the terminal host
}

var global *Config

// Init loads configuration from the given path (or embedded defaults if empty).
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration.
// Panics if Init() has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every field that would break a run.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Population.Initial < 0 {
		errs = append(errs, fmt.Errorf("population.initial %d is negative", c.Population.Initial))
	}
	if c.Parallel.Workers < 0 {
		errs = append(errs, fmt.Errorf("parallel.workers %d is negative", c.Parallel.Workers))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, errors.New("terminal cell size must be positive"))
	}
	if c.Bench.DT <= 0 {
		errs = append(errs, fmt.Errorf("bench.dt %v must be positive", c.Bench.DT))
	}
	for i, r := range c.Bench.Resizes {
		if r.Width <= 0 || r.Height <= 0 {
			errs = append(errs, fmt.Errorf("bench.resizes[%d] size %vx%v must be positive", i, r.Width, r.Height))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.BenchDT32 = float32(c.Bench.DT)

	fps := c.Terminal.FPS
	if fps <= 0 {
		fps = 30
	}
	c.Derived.TerminalFrame = time.Second / time.Duration(fps)
}

// WriteYAML writes the current config to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
