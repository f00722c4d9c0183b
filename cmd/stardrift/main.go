// stardrift is an endless space drift played in the terminal: steer the
// craft, dodge what the void throws at you, let viewers make it worse.
//
// Usage:
//
//	stardrift play            - Start a run directly
//	stardrift menu            - Pick a difficulty preset interactively
//	stardrift serve           - Start the SSH server for remote play
//	stardrift scores          - Show the best runs
//	stardrift replay          - Replay a viewer-action script headlessly
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set database path (default: ~/.stardrift/runs.db)
//	--config <path>  - Path to a custom gameplay config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stardrift",
	Short: "Stardrift - Endless space drift in your terminal",
	Long: `Stardrift is a terminal-based endless runner: pilot a craft through
a scrolling field of obstacles, collect power-ups, and survive as the
difficulty ramps. Viewers can join over SSH and inject power-ups or
obstacles into a live run.

Available commands:
  play     - Start a run directly
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play and viewer cheers
  scores   - View the best runs
  replay   - Replay a viewer-action script headlessly

Examples:
  stardrift play
  stardrift play --difficulty hard
  stardrift menu
  stardrift serve --ssh :2222
  stardrift scores
  stardrift replay --script cheers.yaml --verify`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stardrift/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
