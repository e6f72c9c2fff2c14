package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/qisge/qisge/internal/storage"
)

var flagSessionLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions [game]",
	Short: "Show the session log",
	Long: `Show recent game runs and per-game totals from the session database.
With a game id, only that game's runs are listed.

Examples:
  qisge sessions
  qisge sessions park --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionLimit, "limit", 10, "Number of runs to show")
}

func runSessions(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	entries, err := store.RecentSessions(gameID, flagSessionLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Println("Recent runs:")
	fmt.Println()
	fmt.Printf("  %-10s  %8s  %10s  %s\n", "Game", "Frames", "Duration", "When")
	for _, e := range entries {
		fmt.Printf("  %-10s  %8d  %10s  %s\n",
			e.GameID, e.Frames, e.Duration.Round(time.Second), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Totals:")
	for id, s := range stats {
		if gameID != "" && id != gameID {
			continue
		}
		fmt.Printf("  %-10s  %d runs, %s played, longest run %d frames\n",
			id, s.Runs, s.TotalTime.Round(time.Second), s.MostFrames)
	}
}
