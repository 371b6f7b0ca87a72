package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pable/go-poker-ledger/internal/model"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func encodeSet(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	return string(b), err
}

func decodeSet(raw string) ([]string, error) {
	var vals []string
	if raw == "" {
		return vals, nil
	}
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func scanPlayer(s scanner) (model.Player, error) {
	var (
		p           model.Player
		ids, nicks  string
		ledgerGames sql.NullInt64
	)
	if err := s.Scan(&p.ID, &p.Name, &ids, &nicks, &ledgerGames); err != nil {
		return p, err
	}
	var err error
	if p.PlayerIDs, err = decodeSet(ids); err != nil {
		return p, fmt.Errorf("decode player_ids of %s: %w", p.ID, err)
	}
	if p.Nicknames, err = decodeSet(nicks); err != nil {
		return p, fmt.Errorf("decode nicknames of %s: %w", p.ID, err)
	}
	if ledgerGames.Valid {
		n := int(ledgerGames.Int64)
		p.GamesPlayedFromLedger = &n
	}
	return p, nil
}

const playerColumns = "id, name, player_ids, nicknames, games_played_from_ledger"

// ListPlayers returns every player ordered by name, then id.
func (db *DB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+playerColumns+" FROM players ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlayer returns the player with id, or model.ErrPlayerNotFound.
func (db *DB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+playerColumns+" FROM players WHERE id = ?"), id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, model.ErrPlayerNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlayer inserts p, assigning a new UUID when p.ID is empty.
func (db *DB) CreatePlayer(ctx context.Context, p *model.Player) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	ids, err := encodeSet(p.PlayerIDs)
	if err != nil {
		return err
	}
	nicks, err := encodeSet(p.Nicknames)
	if err != nil {
		return err
	}
	var ledgerGames sql.NullInt64
	if p.GamesPlayedFromLedger != nil {
		ledgerGames = sql.NullInt64{Int64: int64(*p.GamesPlayedFromLedger), Valid: true}
	}
	_, err = db.conn.ExecContext(ctx, db.rebind(`
		INSERT INTO players(id, name, player_ids, nicknames, games_played_from_ledger)
		VALUES (?, ?, ?, ?, ?)`),
		p.ID, p.Name, ids, nicks, ledgerGames,
	)
	if err != nil {
		return fmt.Errorf("insert player %s: %w", p.Name, err)
	}
	return nil
}

// UpdatePlayerIDs merges ids into the player's external id set. Ids already
// present are left alone; other fields are untouched.
func (db *DB) UpdatePlayerIDs(ctx context.Context, playerID string, ids ...string) (*model.Player, error) {
	return db.mergePlayer(ctx, playerID, func(p *model.Player) bool {
		changed := false
		for _, id := range ids {
			changed = p.AddPlayerID(id) || changed
		}
		return changed
	})
}

// UpdateNicknames merges nicks into the player's nickname set.
func (db *DB) UpdateNicknames(ctx context.Context, playerID string, nicks ...string) (*model.Player, error) {
	return db.mergePlayer(ctx, playerID, func(p *model.Player) bool {
		changed := false
		for _, n := range nicks {
			changed = p.AddNickname(n) || changed
		}
		return changed
	})
}

func (db *DB) mergePlayer(ctx context.Context, playerID string, merge func(*model.Player) bool) (*model.Player, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, db.rebind("SELECT "+playerColumns+" FROM players WHERE id = ?"), playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", playerID, model.ErrPlayerNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !merge(&p) {
		return &p, nil
	}

	ids, err := encodeSet(p.PlayerIDs)
	if err != nil {
		return nil, err
	}
	nicks, err := encodeSet(p.Nicknames)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, db.rebind("UPDATE players SET player_ids = ?, nicknames = ? WHERE id = ?"),
		ids, nicks, playerID); err != nil {
		return nil, fmt.Errorf("update player %s: %w", playerID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}
