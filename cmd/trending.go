package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/report"
	"github.com/pable/go-poker-ledger/internal/stats"
)

var (
	trendingRange string
	trendingTop   int
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Hot and cold players over a recent window",
	Long: `Sum each player's results over the last week, month or quarter, counted
back from the most recent game, and list the biggest movers either way.`,
	Args: cobra.NoArgs,
	RunE: runTrending,
}

func init() {
	trendingCmd.Flags().StringVar(&trendingRange, "range", string(stats.RangeMonth), "window: week, month or quarter")
	trendingCmd.Flags().IntVar(&trendingTop, "top", 3, "players per list")
}

func runTrending(cmd *cobra.Command, args []string) error {
	r, err := stats.ParseTrendRange(trendingRange)
	if err != nil {
		return err
	}
	if trendingTop < 1 {
		return fmt.Errorf("--top must be at least 1")
	}

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
		fmt.Fprintln(os.Stdout, "No games stored yet.")
		return nil
	}

	totals := stats.PeriodTotals(players, games, r.Window())
	report.PrintTrending(os.Stdout, r,
		stats.HotPlayers(totals, trendingTop),
		stats.ColdPlayers(totals, trendingTop))
	return nil
}
