package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/storage"
)

var dropForce bool

// dropCmd deletes the ledger database.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the ledger database",
	Long: `Permanently delete every player and game. A SQLite database file is removed;
a PostgreSQL database has its tables emptied. Re-seed afterwards to rebuild.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	if storage.IsPostgresDSN(cfg.DBPath) {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.ClearAll(cmd.Context()); err != nil {
			return fmt.Errorf("clear database: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Cleared all players and games.")
		return nil
	}

	if err := os.Remove(cfg.DBPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files.
	os.Remove(cfg.DBPath + "-wal")
	os.Remove(cfg.DBPath + "-shm")
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DBPath)
	return nil
}
