package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and trophies for a game",
	Long: `Display the top 10 high scores, play statistics and trophies
for the specified game.

Examples:
  arcade scores skyfighter
  arcade scores boxing`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close() //nolint:errcheck

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		fmt.Println()
		if best, err := store.HighScore(gameID); err == nil {
			fmt.Printf("Best: %d\n", best)
		}
		if stats, err := store.GameStats(gameID); err == nil {
			fmt.Printf("Games: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
		}
	}

	trophies, err := store.Trophies(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving trophies: %v\n", err)
		return
	}
	if len(trophies) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Trophies")
	for _, t := range trophies {
		holder := ""
		if t.Holder != "" {
			holder = " (" + t.Holder + ")"
		}
		fmt.Printf("  %-24s x%-3d first %s%s\n", t.Name, t.Count, t.FirstEarned.Format("2006-01-02"), holder)
	}
}
