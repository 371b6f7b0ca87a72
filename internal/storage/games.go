package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pable/go-poker-ledger/internal/model"
)

// GameExists returns true if a game with the given date is already stored.
func (db *DB) GameExists(ctx context.Context, date string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, db.rebind("SELECT COUNT(1) FROM games WHERE date = ?"), date).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateGameIfAbsent stores the game and its results in one transaction
// unless a game with the same date exists. created is false when nothing
// was written. An empty g.ID is filled with a new UUID.
func (db *DB) CreateGameIfAbsent(ctx context.Context, g *model.Game) (bool, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, db.rebind(`
		INSERT INTO games(id, date, display_date) VALUES (?, ?, ?)
		ON CONFLICT (date) DO NOTHING`),
		g.ID, g.Date, g.DisplayDate,
	)
	if err != nil {
		return false, fmt.Errorf("insert game %s: %w", g.Date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	stmt, err := tx.PrepareContext(ctx, db.rebind("INSERT INTO game_results(game_id, player_id, cents) VALUES (?, ?, ?)"))
	if err != nil {
		return false, err
	}
	defer stmt.Close()

	for playerID, cents := range g.Results {
		if _, err := stmt.ExecContext(ctx, g.ID, playerID, cents); err != nil {
			return false, fmt.Errorf("insert result %s/%s: %w", g.Date, playerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ListGames returns every game with its results, newest first.
func (db *DB) ListGames(ctx context.Context) ([]model.Game, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, date, display_date FROM games ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []model.Game
	index := make(map[string]int)
	for rows.Next() {
		g := model.Game{Results: make(map[string]int64)}
		if err := rows.Scan(&g.ID, &g.Date, &g.DisplayDate); err != nil {
			return nil, err
		}
		index[g.ID] = len(games)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results, err := db.conn.QueryContext(ctx, "SELECT game_id, player_id, cents FROM game_results")
	if err != nil {
		return nil, err
	}
	defer results.Close()
	for results.Next() {
		var gameID, playerID string
		var cents int64
		if err := results.Scan(&gameID, &playerID, &cents); err != nil {
			return nil, err
		}
		if i, ok := index[gameID]; ok {
			games[i].Results[playerID] = cents
		}
	}
	return games, results.Err()
}

// GetGameByDate returns the game on date with its results, or
// model.ErrGameNotFound.
func (db *DB) GetGameByDate(ctx context.Context, date string) (*model.Game, error) {
	g := model.Game{Results: make(map[string]int64)}
	err := db.conn.QueryRowContext(ctx, db.rebind("SELECT id, date, display_date FROM games WHERE date = ?"), date).
		Scan(&g.ID, &g.Date, &g.DisplayDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", date, model.ErrGameNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, db.rebind("SELECT player_id, cents FROM game_results WHERE game_id = ?"), g.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var playerID string
		var cents int64
		if err := rows.Scan(&playerID, &cents); err != nil {
			return nil, err
		}
		g.Results[playerID] = cents
	}
	return &g, rows.Err()
}
