package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/stats"
)

var (
	chartKind    string
	chartPlayers []string
	chartOut     string
)

// chartSeries names the players the series' values are keyed by.
type chartSeries struct {
	Kind        string              `json:"kind"`
	GeneratedAt string              `json:"generated_at"`
	Players     map[string]string   `json:"players"`
	Points      []stats.SeriesPoint `json:"points"`
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Export per-game chart series as JSON",
	Long: `Write one point per game (oldest first) holding each player's running
total ("cumulative") or running per-game average ("average"), in cents.`,
	Example: `  pokerledger chart --kind average --player Garrett --player Shik --out avg.json`,
	Args:    cobra.NoArgs,
	RunE:    runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartKind, "kind", "cumulative", "cumulative or average")
	chartCmd.Flags().StringSliceVar(&chartPlayers, "player", nil, "restrict to these players (default all)")
	chartCmd.Flags().StringVar(&chartOut, "out", "", "output file (default stdout)")
}

func runChart(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}
	if len(chartPlayers) > 0 {
		picked := make([]model.Player, 0, len(chartPlayers))
		for _, q := range chartPlayers {
			p, err := findPlayer(players, q)
			if err != nil {
				return err
			}
			picked = append(picked, p)
		}
		players = picked
	}

	out := chartSeries{
		Kind:        chartKind,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Players:     make(map[string]string, len(players)),
	}
	for _, p := range players {
		out.Players[p.ID] = p.Name
	}
	switch chartKind {
	case "cumulative":
		out.Points = stats.CumulativeSeries(players, games)
	case "average":
		out.Points = stats.AverageSeries(players, games)
	default:
		return fmt.Errorf("unknown chart kind %q (want cumulative or average)", chartKind)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if chartOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(chartOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", chartOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d points)\n", chartOut, len(out.Points))
	return nil
}
