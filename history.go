package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/rectangles/telemetry"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded bench results",
	Long: `List the most recent bench results from the history database.

Examples:
  rectangles history --history ~/.rectangles/bench.db
  rectangles history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum results to show")
	historyCmd.Flags().StringVar(&flagHistory, "history", "", "History database path (empty = use config)")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a96cff")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Bench.HistoryPath
	if flagHistory != "" {
		path = flagHistory
	}
	if path == "" {
		return fmt.Errorf("no history database: pass --history or set bench.history_path")
	}

	history, err := telemetry.OpenHistory(path)
	if err != nil {
		return err
	}
	defer history.Close()

	results, err := history.Recent(flagLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No bench results recorded yet.")
		fmt.Println()
		fmt.Println("Run 'rectangles bench --history " + path + "' to record one.")
		return nil
	}

	fmt.Println(historyTable(results))
	return nil
}

// historyTable renders results as a bordered table.
func historyTable(results []telemetry.BenchResult) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "Date", "Seed", "Frames", "Peak", "Final", "Avg us", "P99 us", "Ticks/s", "Workers", "CPU")

	for _, r := range results {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(r.Frames),
			strconv.Itoa(r.PeakBodies),
			strconv.Itoa(r.FinalBodies),
			strconv.FormatInt(r.AvgTickUS, 10),
			strconv.FormatInt(r.P99TickUS, 10),
			strconv.FormatFloat(r.TicksPerSec, 'f', 0, 64),
			strconv.Itoa(r.Workers),
			r.Host.CPUModel,
		)
	}
	return t.String()
}
