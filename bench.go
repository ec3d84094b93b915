package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/game"
	"github.com/pthm-cable/rectangles/telemetry"
)

var (
	flagFrames  int
	flagRuns    int
	flagJobs    int
	flagHistory string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the headless bench schedule",
	Long: `Step the simulation without a window using the bench schedule from
config: a fixed dt, periodic grows and shrinks, and scripted resizes.

With --runs N the schedule repeats with seeds seed, seed+1, ... seed+N-1,
running up to --jobs of them at once. Results are saved to the history
database when --history or bench.history_path is set.

Examples:
  rectangles bench
  rectangles bench --frames 10000 --workers 8
  rectangles bench --runs 4 --history ~/.rectangles/bench.db`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.IntVar(&flagFrames, "frames", 0, "Frames per run (0 = use config)")
	f.IntVar(&flagRuns, "runs", 1, "Number of runs with consecutive seeds")
	f.IntVar(&flagJobs, "jobs", 1, "Runs to execute concurrently")
	f.StringVar(&flagHistory, "history", "", "History database path (empty = use config)")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logCloser, err := setupLogging(false)
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	if flagFrames > 0 {
		cfg.Bench.Frames = flagFrames
	}
	if flagHistory != "" {
		cfg.Bench.HistoryPath = flagHistory
	}
	if flagRuns < 1 {
		return fmt.Errorf("--runs must be >= 1, got %d", flagRuns)
	}

	history, err := telemetry.OpenHistory(cfg.Bench.HistoryPath)
	if err != nil {
		return err
	}
	defer history.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, runErr := benchRuns(ctx, cfg, flagRuns, flagJobs)

	for _, r := range results {
		if r.Frames == 0 {
			continue
		}
		id, err := history.Save(r)
		if err != nil {
			slog.Error("saving bench result", "error", err)
			continue
		}
		if id > 0 {
			slog.Info("bench result saved", "id", id, "seed", r.Seed, "path", cfg.Bench.HistoryPath)
		}
	}
	return runErr
}

// benchRuns executes runs bench runs, jobs at a time. Results are indexed by
// run; runs that never started are left zero.
func benchRuns(ctx context.Context, cfg *config.Config, runs, jobs int) ([]telemetry.BenchResult, error) {
	results := make([]telemetry.BenchResult, runs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(jobs, 1))

	for i := range runs {
		runCfg := *cfg
		runCfg.RNG.Seed = cfg.RNG.Seed + uint64(i)

		outputDir := flagOutputDir
		if outputDir != "" && runs > 1 {
			outputDir = filepath.Join(outputDir, fmt.Sprintf("run-%03d", i))
		}
		opts := game.Options{
			LogStats:  flagLogStats,
			OutputDir: outputDir,
			Workers:   flagWorkers,
		}

		eg.Go(func() error {
			r, err := game.RunBench(ctx, &runCfg, opts)
			results[i] = r
			if err != nil {
				return fmt.Errorf("bench run %d (seed %d): %w", i, runCfg.RNG.Seed, err)
			}
			return nil
		})
	}
	return results, eg.Wait()
}
