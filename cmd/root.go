package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/config"
	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/storage"
)

var (
	dbPath       string
	knownIDsPath string
	verbose      bool

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pokerledger",
	Short: "Home poker game ledger",
	Long: `Track results of a recurring home poker game: import session CSVs,
match players across imports and read lifetime standings, trends and fun stats.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite path or postgres:// DSN (default ~/.pokerledger/ledger.db, $POKERLEDGER_DB)")
	rootCmd.PersistentFlags().StringVar(&knownIDsPath, "known-ids", "", "JSON file of external id -> player name ($POKERLEDGER_KNOWN_IDS)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(funstatsCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if knownIDsPath != "" {
		if cfg.KnownIDs, err = config.LoadKnownIDs(knownIDsPath); err != nil {
			return err
		}
	}

	pl := pterm.DefaultLogger
	if verbose {
		pl = *pl.WithLevel(pterm.LogLevelDebug)
	}
	logger = slog.New(pterm.NewSlogHandler(&pl))
	return nil
}

// openStore opens the configured store, creating the SQLite directory if needed.
func openStore() (*storage.DB, error) {
	if !storage.IsPostgresDSN(cfg.DBPath) && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// loadLedger reads the full player and game collections.
func loadLedger(ctx context.Context, db *storage.DB) ([]model.Player, []model.Game, error) {
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list players: %w", err)
	}
	games, err := db.ListGames(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list games: %w", err)
	}
	return players, games, nil
}

// findPlayer looks a player up by id, then by name or nickname ignoring case.
func findPlayer(players []model.Player, query string) (model.Player, error) {
	for _, p := range players {
		if p.ID == query {
			return p, nil
		}
	}
	for _, p := range players {
		if strings.EqualFold(p.Name, query) || p.HasNickname(query) {
			return p, nil
		}
	}
	return model.Player{}, fmt.Errorf("%q: %w", query, model.ErrPlayerNotFound)
}

// now is the as-of time for month-based stats.
func now() time.Time { return time.Now() }
