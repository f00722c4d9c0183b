package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telisar/stardrift/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top runs recorded in the database.

Examples:
  stardrift scores
  stardrift scores --limit 25
  stardrift scores --db ./runs.db`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "How many runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stardrift play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-10s  %-7s  %-6s  %s\n", "Rank", "Score", "Distance", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %-7s  %-6s  %s\n", "----", "-----", "--------", "-----", "----", "----")

	for i, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-10.0f  %-7.2f  %-6s  %s\n",
			i+1, run.Score, run.Distance, run.Level, fmt.Sprintf("%ds", run.Duration), dateStr)
	}

	fmt.Println()
	if high, hsErr := store.HighScore(); hsErr == nil {
		fmt.Printf("Best: %d\n", high)
	}
}
