package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/registry"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best runs and overall statistics for a mode,
"skyraid" when omitted.

Examples:
  skyraid scores
  skyraid scores skyraid_endless --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "skyraid"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'skyraid list' to see the modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve runs: %w", err)
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'skyraid play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-5s  %-7s  %-6s  %s\n", "Rank", "Score", "Tier", "Kills", "Result", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-5s  %-7s  %-6s  %s\n", "----", "-----", "----", "-----", "------", "----", "----")
	for i, r := range runs {
		secs := int(r.Duration / time.Second)
		fmt.Printf("  %-4d  %-7d  %-4d  %-5d  %-7s  %-6s  %s\n",
			i+1, r.Score, r.Tier, r.Kills, r.Outcome,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("cannot retrieve stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Best tier: %d  Wins: %d  Kills: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTier, stats.Wins, stats.TotalKills)
	return nil
}
