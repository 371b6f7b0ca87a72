package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/importer"
	"github.com/pable/go-poker-ledger/internal/report"
)

var importCmd = &cobra.Command{
	Use:   "import <session.csv>",
	Short: "Import one session's upload CSV",
	Long: `Import a per-session upload. Rows are matched to players by known id, saved
player_id and nickname; anything left is resolved interactively. Nothing is
written until every row has a player.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	imp := importer.New(db, cfg.KnownIDs, logger)
	game, err := imp.RunFile(cmd.Context(), args[0], ptermPrompter{})
	if errors.Is(err, importer.ErrAborted) {
		pterm.Warning.Println("Import aborted, nothing was written.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	players, err := db.ListPlayers(cmd.Context())
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	pterm.Success.Printfln("Stored game %s with %d players", game.Date, len(game.Results))
	report.PrintGameLog(os.Stdout, game, players)
	return nil
}
