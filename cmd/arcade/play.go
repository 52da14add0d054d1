package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var flagClassic bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: breakout).

Controls:
  Left/Right, A/D  - Move paddle (or move the mouse)
  Space/Enter      - Start
  P                - Pause
  R                - Restart (after the run ends)
  Ctrl+S           - Save a screenshot to ~/.arcade/screenshots
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, gentler speed-up, faster paddle
  normal - Values from the config file
  hard   - Faster ball, higher cap, sharper speed-up
  fixed  - No speed-up on reflections

Examples:
  arcade play
  arcade play --classic
  arcade play --difficulty hard --seed 42
  arcade play --config ./my-breakout.yaml --log ./arcade.log --debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Use the plain vertical paddle bounce")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "breakout"
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagClassic {
		gameID = "breakout_classic"
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	gameCfg, err := breakout.EffectiveConfig(gameID == "breakout_classic")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := newLogger("play")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting", "game", gameID, "cols", width, "rows", height, "seed", flagSeed, "difficulty", flagDifficulty)

	opts := tui.Options{
		Logger:       logger,
		KeyHoldTicks: gameCfg.Host.KeyHoldTicks,
	}
	if err := tui.Run(game, cfg, opts); err != nil {
		logger.Error("game exited", "error", err)
		closer.Close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
