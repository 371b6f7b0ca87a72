package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// DB wraps a sql.DB holding the players and games collections.
type DB struct {
	conn    *sql.DB
	dialect dialect
}

// IsPostgresDSN reports whether dsn selects the PostgreSQL backend.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the ledger store and applies the schema. A postgres:// or
// postgresql:// DSN uses PostgreSQL; anything else is a SQLite path
// (":memory:" included).
func Open(dsn string) (*DB, error) {
	if IsPostgresDSN(dsn) {
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return initDB(conn, dialectPostgres)
	}

	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dsn))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	conn.SetMaxOpenConns(1)
	return initDB(conn, dialectSQLite)
}

func initDB(conn *sql.DB, d dialect) (*DB, error) {
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn, dialect: d}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Overview is a row count summary of the store.
type Overview struct {
	Players   int
	Games     int
	Results   int
	FirstDate string
	LastDate  string
}

// Overview counts players, games and result rows, and the date range covered.
func (db *DB) Overview(ctx context.Context) (Overview, error) {
	var o Overview
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(1) FROM players").Scan(&o.Players); err != nil {
		return o, fmt.Errorf("count players: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(1) FROM game_results").Scan(&o.Results); err != nil {
		return o, fmt.Errorf("count results: %w", err)
	}
	var first, last sql.NullString
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(1), MIN(date), MAX(date) FROM games").
		Scan(&o.Games, &first, &last)
	if err != nil {
		return o, fmt.Errorf("count games: %w", err)
	}
	o.FirstDate, o.LastDate = first.String, last.String
	return o, nil
}

// QueryRaw runs an arbitrary query and returns column names plus every row
// rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// ClearAll deletes every game, result and player in one transaction.
func (db *DB) ClearAll(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"game_results", "games", "players"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
