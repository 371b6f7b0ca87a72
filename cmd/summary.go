package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/report"
	"github.com/pable/go-poker-ledger/internal/stats"
)

// summaryCmd is the cobra command for displaying a high-level ledger overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the ledger",
	Long: `Display row counts and the date range of the stored ledger, the current
top of the standings and the most recent game.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

const summaryTop = 5

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.Overview(cmd.Context())
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Games == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'pokerledger seed <ledger.csv>' to add history.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Ledger Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Games stored  : %d\n", ov.Games)
	fmt.Fprintf(os.Stdout, "  Date range    : %s → %s\n", ov.FirstDate, ov.LastDate)
	fmt.Fprintf(os.Stdout, "  Players       : %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Result rows   : %d\n", ov.Results)

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}

	standings := stats.LifetimeStandings(players, games, now())
	if len(standings) > summaryTop {
		standings = standings[:summaryTop]
	}
	fmt.Fprintf(os.Stdout, "\n--- Top %d ---\n\n", len(standings))
	report.PrintStandings(os.Stdout, standings, "")

	fmt.Fprintf(os.Stdout, "\n--- Latest Game ---\n")
	report.PrintGameLog(os.Stdout, games[0], players)
	return nil
}
