package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/importer"
)

var (
	seedBaseYear int
	seedReset    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed <ledger.csv>",
	Short: "Load the wide historical ledger",
	Long: `Load a historical ledger: one row per player, one column per game date
("M/D", with " -1" marking the second game of a day). Dates before the base
year's rollover land in the following year.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedBaseYear, "base-year", 0, "year of the first ledger column (default from config)")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "clear all players and games first")
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	baseYear := cfg.BaseYear
	if seedBaseYear != 0 {
		baseYear = seedBaseYear
	}

	imp := importer.New(db, cfg.KnownIDs, logger)
	imp.SeedNicknames = cfg.SeedNicknames
	res, err := imp.SeedFile(cmd.Context(), args[0], baseYear, seedReset)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Players: %d created, %d reused\n", res.PlayersCreated, res.PlayersReused)
	fmt.Fprintf(os.Stdout, "Games:   %d stored\n", len(res.Games))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(os.Stdout, "Skipped: %s\n", strings.Join(res.Skipped, ", "))
	}
	return nil
}
