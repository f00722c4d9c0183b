package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/telisar/stardrift/internal/config"
	"github.com/telisar/stardrift/internal/core"
	"github.com/telisar/stardrift/internal/platform/tui"
	"github.com/telisar/stardrift/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run directly, skipping the menu.

Controls:
  W/A/S/D, Arrows - Steer the craft
  P               - Pause
  R               - Restart (after game over)
  B/Esc           - Back out of the run
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Generous power-ups, gentle start
  normal - The intended experience
  hard   - Starts at level 3, stingy power-ups
  fixed  - Difficulty pinned at the starting level

Examples:
  stardrift play
  stardrift play --difficulty easy
  stardrift play --seed 42 --difficulty fixed
  stardrift play --config ./my-stardrift.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard, fixed)\n", flagDifficulty)
			os.Exit(1)
		}
		config.ApplyPreset(&cfg, preset)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the run still works
		store = nil
	}

	highScore := 0
	if store != nil {
		if best, hsErr := store.HighScore(); hsErr == nil {
			highScore = best
		}
	}

	g := tui.NewSim(cfg, rt, highScore)
	_, runErr := tui.Run(g, store, rt, "")

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
