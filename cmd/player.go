package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/report"
	"github.com/pable/go-poker-ledger/internal/stats"
)

var playerHistory bool

// playerCmd prints the stat card of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name|id> [<name|id>...]",
	Short: "Stat card for one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().BoolVar(&playerHistory, "history", false, "also list every game with a running total")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}

	for _, arg := range args {
		p, err := findPlayer(players, arg)
		if err != nil {
			return err
		}
		s := stats.CalculatePlayerStats(p, games, now())
		report.PrintPlayerStats(os.Stdout, s, p)
		if s.GamesPlayed == 0 {
			fmt.Fprintln(os.Stdout, "No games recorded.")
			continue
		}
		if playerHistory {
			fmt.Fprintln(os.Stdout)
			report.PrintPlayerHistory(os.Stdout, p.ID, games)
		}
	}
	return nil
}
