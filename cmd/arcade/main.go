// arcade is a terminal arcade of shooting, fighting and sports games.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade scores <game>     - Show high scores and trophies for a game
//	arcade sim <game>        - Run a game headless with random input
//	arcade serve             - Start SSH server for remote and online play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/scores.db)
//	--log-file <path>  - Write logs to a file while the game owns the terminal
//	--mute             - Start without sound
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sky-arcade/internal/audio"
	"github.com/vovakirdan/sky-arcade/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/sky-arcade/internal/games/boxing"
	_ "github.com/vovakirdan/sky-arcade/internal/games/skullhunter"
	_ "github.com/vovakirdan/sky-arcade/internal/games/skyfighter"
	_ "github.com/vovakirdan/sky-arcade/internal/games/tennis"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagMute    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Sky Arcade - shooters, fighters and sports in your terminal",
	Long: `Sky Arcade is a terminal arcade with a scrolling airplane shooter,
two boxing rings, a tennis court and a top-down skull hunt.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores and trophies
  sim      - Headless deterministic run
  serve    - Start SSH server for remote and online play

Examples:
  arcade list
  arcade play skyfighter
  arcade play boxing --mode local
  arcade menu
  arcade serve --ssh :2222 --spectate :8080
  arcade scores tennis`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound muted")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the logger for interactive commands. The alt screen owns
// stdout, so logs go to --log-file or nowhere.
func newLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil //nolint:errcheck
}

// newAudio opens the speaker unless --mute was given.
func newAudio(logger *log.Logger) *audio.Player {
	if flagMute {
		p := audio.NewSilent()
		p.SetMuted(true)
		return p
	}
	return audio.NewPlayer(logger)
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints an error the way every subcommand does and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
