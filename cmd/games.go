package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/report"
)

var gamesLast int

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List stored games, newest first",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

func init() {
	gamesCmd.Flags().IntVar(&gamesLast, "last", 0, "only the N most recent games")
}

func runGames(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'pokerledger import <session.csv>' to add one.")
		return nil
	}
	if gamesLast > 0 && gamesLast < len(games) {
		games = games[:gamesLast]
	}
	report.PrintGames(os.Stdout, games, players)
	return nil
}
