package aggregator

import (
	"context"
	"fmt"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/parser"
)

// ResolvedRow is one import row after identity resolution.
type ResolvedRow struct {
	PlayerID string
	Net      int64 // cents
}

// Aggregate folds resolved rows into one Game dated date. Repeat rows for a
// player (re-buys) are summed.
func Aggregate(rows []ResolvedRow, date string) model.Game {
	results := make(map[string]int64, len(rows))
	for _, r := range rows {
		if r.PlayerID == "" {
			continue
		}
		results[r.PlayerID] += r.Net
	}
	return model.Game{
		Date:        date,
		DisplayDate: parser.DisplayDate(date),
		Results:     results,
	}
}

// SumUploadNets sums net cents per external player id straight off the
// upload rows, before any identity resolution.
func SumUploadNets(rows []model.UploadRow) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range rows {
		out[r.PlayerID] += parser.ParseCents(r.Net)
	}
	return out
}

// GameWriter is the slice of the store the duplicate guard needs.
type GameWriter interface {
	GameExists(ctx context.Context, date string) (bool, error)
	// CreateGameIfAbsent writes the game unless one with the same date
	// exists. created is false when nothing was written.
	CreateGameIfAbsent(ctx context.Context, game *model.Game) (created bool, err error)
}

// Commit writes game unless its date is already taken. The existence check
// runs first so the common duplicate case is reported before any write; the
// conditional create catches a racing import.
func Commit(ctx context.Context, w GameWriter, game *model.Game) error {
	if len(game.Results) == 0 {
		return fmt.Errorf("commit %s: %w", game.Date, model.ErrEmptyGame)
	}

	exists, err := w.GameExists(ctx, game.Date)
	if err != nil {
		return fmt.Errorf("check game %s: %w", game.Date, err)
	}
	if exists {
		return fmt.Errorf("commit %s: %w", game.Date, model.ErrDuplicateGame)
	}

	created, err := w.CreateGameIfAbsent(ctx, game)
	if err != nil {
		return fmt.Errorf("create game %s: %w", game.Date, err)
	}
	if !created {
		return fmt.Errorf("commit %s: %w", game.Date, model.ErrDuplicateGame)
	}
	return nil
}
