package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/report"
	"github.com/pable/go-poker-ledger/internal/stats"
)

var funstatsKey string

var funstatsCmd = &cobra.Command{
	Use:   "funstats",
	Short: "Superlatives: whales, sharks, streaks and more",
	Args:  cobra.NoArgs,
	RunE:  runFunstats,
}

func init() {
	funstatsCmd.Flags().StringVar(&funstatsKey, "key", "", "show a single award (e.g. whale, shark, last-laugh)")
}

func runFunstats(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}
	all := stats.FunStats(players, games, now())
	if funstatsKey != "" {
		f, err := stats.FunStatByKey(all, funstatsKey)
		if err != nil {
			return err
		}
		all = []model.FunStat{f}
	}
	report.PrintFunStats(os.Stdout, all)
	return nil
}
