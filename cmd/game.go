package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/report"
)

var gameCmd = &cobra.Command{
	Use:   "game <YYYY-MM-DD[-2]>",
	Short: "Show one game's results",
	Args:  cobra.ExactArgs(1),
	RunE:  runGame,
}

func runGame(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := db.GetGameByDate(cmd.Context(), args[0])
	if errors.Is(err, model.ErrGameNotFound) {
		return fmt.Errorf("no game on %s (see 'pokerledger games')", args[0])
	}
	if err != nil {
		return fmt.Errorf("get game: %w", err)
	}
	players, err := db.ListPlayers(cmd.Context())
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	report.PrintGameLog(os.Stdout, *g, players)
	return nil
}
