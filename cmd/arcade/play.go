package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/platform/tui"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls (Player 1 / Player 2):
  WASD / Arrows     - Move
  Space / Enter     - Fire, serve, grab
  F / L             - Punch
  G / K             - Block
  Q, E              - Spin left or right (Sky Fighter)
  Mouse             - Aim and fire (Skull Hunter)
  P                 - Pause
  R                 - Restart (after game over)
  M                 - Mute
  Ctrl+S            - Save a screenshot
  Esc, Ctrl+C       - Quit

In single player and vs CPU games the arrow keys also move Player 1.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play skyfighter
  arcade play skullhunter --difficulty hard
  arcade play boxing --mode local
  arcade play tennis --config ./my-tennis.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagMode, "mode", "cpu", "Versus games: cpu or local (two players, one keyboard)")
}

// parseMode maps --mode to a match mode for the given game.
func parseMode(info registry.GameInfo, mode string) (multiplayer.MatchMode, error) {
	if !info.Versus {
		return multiplayer.MatchModeSolo, nil
	}
	switch mode {
	case "", "cpu":
		return multiplayer.MatchModeVsCPU, nil
	case "local":
		return multiplayer.MatchModeLocalPvP, nil
	}
	return multiplayer.MatchModeSolo, fmt.Errorf("unknown mode %q (want cpu or local)", mode)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	mode, err := parseMode(info, flagMode)
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.CreateWith(gameID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
	})
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	player := newAudio(logger)
	defer player.Close()

	logger.Info("starting game", "game", gameID, "mode", mode)
	err = tui.Run(game, tui.GameOptions{
		Store:  store,
		Audio:  player,
		Logger: logger,
		Config: runtimeConfig(),
		Mode:   mode,
	})
	if err != nil && !errors.Is(err, tui.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}
