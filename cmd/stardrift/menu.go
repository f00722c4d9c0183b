package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/telisar/stardrift/internal/config"
	"github.com/telisar/stardrift/internal/core"
	"github.com/telisar/stardrift/internal/platform/tui"
	"github.com/telisar/stardrift/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the difficulty picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run.
After a run ends, press B to return to the menu and go again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start run
  Tab          - Best runs
  Q            - Quit

Examples:
  stardrift menu
  stardrift menu --fps 30
  stardrift menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	baseCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
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

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if !menuResult.Selected {
			break
		}

		cfg := baseCfg
		config.ApplyPreset(&cfg, menuResult.Preset)

		highScore := 0
		if store != nil {
			if best, hsErr := store.HighScore(); hsErr == nil {
				highScore = best
			}
		}

		// Fresh seed for each run
		rt.Seed = time.Now().UnixNano()

		g := tui.NewSim(cfg, rt, highScore)
		result, runErr := tui.Run(g, store, rt, "")
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
			break
		}
		if !result.BackToMenu {
			break
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
