package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players with their saved ids and nicknames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		players, err := db.ListPlayers(cmd.Context())
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		if len(players) == 0 {
			fmt.Fprintln(os.Stdout, "No players yet.")
			return nil
		}
		report.PrintPlayers(os.Stdout, players)
		return nil
	},
}
