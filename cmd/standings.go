package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/report"
	"github.com/pable/go-poker-ledger/internal/stats"
)

var standingsFocus string

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Lifetime standings, biggest winner first",
	Args:  cobra.NoArgs,
	RunE:  runStandings,
}

func init() {
	standingsCmd.Flags().StringVar(&standingsFocus, "player", "", "highlight a player (id, name or nickname)")
}

func runStandings(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}
	standings := stats.LifetimeStandings(players, games, now())
	if len(standings) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'pokerledger seed' or 'pokerledger import' first.")
		return nil
	}

	var focusID string
	if standingsFocus != "" {
		p, err := findPlayer(players, standingsFocus)
		if err != nil {
			return err
		}
		focusID = p.ID
	}
	report.PrintStandings(os.Stdout, standings, focusID)
	return nil
}
