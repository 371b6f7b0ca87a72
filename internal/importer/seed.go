package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pable/go-poker-ledger/internal/aggregator"
	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/parser"
)

// SeedResult summarises a ledger seed.
type SeedResult struct {
	PlayersCreated int
	PlayersReused  int
	Games          []string // dates written, in column order
	Skipped        []string // column headers that produced no game
}

// Seed loads a wide historical ledger. Each row becomes a player (reused by
// name unless reset wipes the store first) and each date column a game.
// A bad column is logged and skipped; store failures abort the seed.
func (imp *Importer) Seed(ctx context.Context, r io.Reader, baseYear int, reset bool) (SeedResult, error) {
	sheet, err := parser.ParseLedger(r)
	if err != nil {
		return SeedResult{}, fmt.Errorf("parse ledger: %w", err)
	}
	return imp.seed(ctx, sheet, baseYear, reset)
}

// SeedFile is Seed over the ledger CSV at path.
func (imp *Importer) SeedFile(ctx context.Context, path string, baseYear int, reset bool) (SeedResult, error) {
	sheet, err := parser.ParseLedgerFile(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("parse ledger: %w", err)
	}
	return imp.seed(ctx, sheet, baseYear, reset)
}

func (imp *Importer) seed(ctx context.Context, sheet *model.LedgerSheet, baseYear int, reset bool) (SeedResult, error) {
	var res SeedResult
	if len(sheet.Rows) == 0 {
		return res, model.ErrEmptyImport
	}

	if reset {
		if err := imp.store.ClearAll(ctx); err != nil {
			return res, fmt.Errorf("clear store: %w", err)
		}
		imp.logger.Info("store cleared")
	}

	byName, err := imp.seedPlayers(ctx, sheet, &res)
	if err != nil {
		return res, err
	}

	for _, header := range sheet.DateColumns {
		date, err := parser.InferDate(header, baseYear)
		if err != nil {
			imp.logger.Warn("skipping column", "header", header, "err", err)
			res.Skipped = append(res.Skipped, header)
			continue
		}
		// A day's second column gets "-2", whichever of the two headers
		// carries the " -1" marker.
		final := date
		if createdOn(res.Games, date) {
			final = date + "-2"
		}

		results := make(map[string]int64)
		for _, row := range sheet.Rows {
			cents, ok := parser.ParseCentsStrict(row.Cells[header])
			if !ok {
				continue
			}
			results[byName[row.Player]] += cents
		}
		if len(results) == 0 {
			imp.logger.Debug("empty column", "header", header)
			res.Skipped = append(res.Skipped, header)
			continue
		}

		game := model.Game{Date: final, DisplayDate: parser.DisplayDate(date), Results: results}
		err = aggregator.Commit(ctx, imp.store, &game)
		switch {
		case errors.Is(err, model.ErrDuplicateGame), errors.Is(err, model.ErrEmptyGame):
			imp.logger.Warn("skipping column", "header", header, "date", final, "err", err)
			res.Skipped = append(res.Skipped, header)
			continue
		case err != nil:
			return res, err
		}
		imp.logger.Info("game created", "display", game.DisplayDate, "date", final, "second_session", parser.IsSecondSession(header))
		res.Games = append(res.Games, final)
	}
	return res, nil
}

func createdOn(dates []string, date string) bool {
	for _, d := range dates {
		if strings.HasPrefix(d, date) {
			return true
		}
	}
	return false
}

// seedPlayers returns ledger name -> player id, creating players the store
// does not have yet.
func (imp *Importer) seedPlayers(ctx context.Context, sheet *model.LedgerSheet, res *SeedResult) (map[string]string, error) {
	existing, err := imp.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	byName := make(map[string]string, len(sheet.Rows))
	for _, p := range existing {
		if _, dup := byName[p.Name]; !dup {
			byName[p.Name] = p.ID
		}
	}

	for _, row := range sheet.Rows {
		if _, ok := byName[row.Player]; ok {
			res.PlayersReused++
			continue
		}
		p := model.Player{
			Name:                  row.Player,
			PlayerIDs:             []string{},
			Nicknames:             []string{},
			GamesPlayedFromLedger: row.GamesPlayed,
		}
		if id, ok := imp.known.IDFor(row.Player); ok {
			p.AddPlayerID(id)
		}
		if nick, ok := imp.SeedNicknames[row.Player]; ok {
			p.AddNickname(nick)
		}
		if err := imp.store.CreatePlayer(ctx, &p); err != nil {
			return nil, fmt.Errorf("create player %s: %w", row.Player, err)
		}
		byName[row.Player] = p.ID
		res.PlayersCreated++
	}
	imp.logger.Info("players seeded", "created", res.PlayersCreated, "reused", res.PlayersReused)
	return byName, nil
}
