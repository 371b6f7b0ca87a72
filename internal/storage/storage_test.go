package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/pable/go-poker-ledger/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPlayerCreateAndGet(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	n := 14
	p := model.Player{
		Name:                  "Garrett",
		PlayerIDs:             []string{"Gx6CTDK1-V"},
		Nicknames:             []string{"G"},
		GamesPlayedFromLedger: &n,
	}
	if err := db.CreatePlayer(ctx, &p); err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected CreatePlayer to assign an id")
	}

	got, err := db.GetPlayer(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if got.Name != "Garrett" || !got.HasPlayerID("Gx6CTDK1-V") || !got.HasNickname("g") {
		t.Errorf("player mismatch: %+v", got)
	}
	if got.GamesPlayedFromLedger == nil || *got.GamesPlayedFromLedger != 14 {
		t.Errorf("GamesPlayedFromLedger: want 14, got %v", got.GamesPlayedFromLedger)
	}

	_, err = db.GetPlayer(ctx, "missing")
	if !errors.Is(err, model.ErrPlayerNotFound) {
		t.Errorf("want ErrPlayerNotFound, got %v", err)
	}
}

func TestListPlayersOrdered(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	for _, name := range []string{"Shik", "Abhi", "Ano"} {
		if err := db.CreatePlayer(ctx, &model.Player{Name: name}); err != nil {
			t.Fatalf("CreatePlayer %s: %v", name, err)
		}
	}
	list, err := db.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 players, got %d", len(list))
	}
	if list[0].Name != "Abhi" || list[2].Name != "Shik" {
		t.Errorf("unexpected order: %s, %s, %s", list[0].Name, list[1].Name, list[2].Name)
	}
	if list[0].PlayerIDs == nil || len(list[0].PlayerIDs) != 0 {
		t.Errorf("expected empty id set, got %v", list[0].PlayerIDs)
	}
	if list[0].GamesPlayedFromLedger != nil {
		t.Error("expected nil GamesPlayedFromLedger")
	}
}

func TestUpdatePlayerIDsMerges(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	p := model.Player{Name: "Sampath", PlayerIDs: []string{"a"}, Nicknames: []string{"Sam"}}
	db.CreatePlayer(ctx, &p)

	if _, err := db.UpdatePlayerIDs(ctx, p.ID, "b", "a", ""); err != nil {
		t.Fatalf("UpdatePlayerIDs: %v", err)
	}
	if _, err := db.UpdateNicknames(ctx, p.ID, "sam ", "Sammy"); err != nil {
		t.Fatalf("UpdateNicknames: %v", err)
	}

	got, _ := db.GetPlayer(ctx, p.ID)
	if len(got.PlayerIDs) != 2 || got.PlayerIDs[0] != "a" || got.PlayerIDs[1] != "b" {
		t.Errorf("PlayerIDs: want [a b], got %v", got.PlayerIDs)
	}
	if len(got.Nicknames) != 2 || got.Nicknames[1] != "Sammy" {
		t.Errorf("Nicknames: want [Sam Sammy], got %v", got.Nicknames)
	}
	if got.Name != "Sampath" {
		t.Errorf("name changed: %s", got.Name)
	}

	if _, err := db.UpdatePlayerIDs(ctx, "missing", "x"); !errors.Is(err, model.ErrPlayerNotFound) {
		t.Errorf("want ErrPlayerNotFound, got %v", err)
	}
}

func TestCreateGameIfAbsent(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	g := model.Game{Date: "2025-03-10", DisplayDate: "3/10", Results: map[string]int64{"a": 1800, "b": -1800}}
	created, err := db.CreateGameIfAbsent(ctx, &g)
	if err != nil {
		t.Fatalf("CreateGameIfAbsent: %v", err)
	}
	if !created || g.ID == "" {
		t.Fatalf("expected game to be created with an id, created=%v id=%q", created, g.ID)
	}

	exists, err := db.GameExists(ctx, "2025-03-10")
	if err != nil || !exists {
		t.Errorf("GameExists: want true, got %v (err %v)", exists, err)
	}
	exists, _ = db.GameExists(ctx, "2025-03-11")
	if exists {
		t.Error("expected 2025-03-11 to not exist")
	}

	// Same date again: nothing written.
	dup := model.Game{Date: "2025-03-10", DisplayDate: "3/10", Results: map[string]int64{"c": 5}}
	created, err = db.CreateGameIfAbsent(ctx, &dup)
	if err != nil {
		t.Fatalf("second CreateGameIfAbsent: %v", err)
	}
	if created {
		t.Error("expected second same-date game to be rejected")
	}

	got, err := db.GetGameByDate(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("GetGameByDate: %v", err)
	}
	if got.ID != g.ID || len(got.Results) != 2 || got.Results["a"] != 1800 {
		t.Errorf("stored game mismatch: %+v", got)
	}

	ov, err := db.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Games != 1 || ov.Results != 2 {
		t.Errorf("overview: want 1 game / 2 results, got %+v", ov)
	}
}

func TestGetGameByDateMissing(t *testing.T) {
	db := openMemDB(t)
	if _, err := db.GetGameByDate(context.Background(), "2025-01-01"); !errors.Is(err, model.ErrGameNotFound) {
		t.Errorf("want ErrGameNotFound, got %v", err)
	}
}

func TestListGames(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	games := []model.Game{
		{Date: "2025-01-15", DisplayDate: "1/15", Results: map[string]int64{"a": 100}},
		{Date: "2025-01-15-2", DisplayDate: "1/15", Results: map[string]int64{"a": -50, "b": 50}},
		{Date: "2024-11-20", DisplayDate: "11/20", Results: map[string]int64{"b": 10}},
	}
	for i := range games {
		if _, err := db.CreateGameIfAbsent(ctx, &games[i]); err != nil {
			t.Fatalf("CreateGameIfAbsent: %v", err)
		}
	}

	list, err := db.ListGames(ctx)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 games, got %d", len(list))
	}
	// Ordered by date DESC.
	if list[0].Date != "2025-01-15-2" || list[2].Date != "2024-11-20" {
		t.Errorf("unexpected order: %s, %s, %s", list[0].Date, list[1].Date, list[2].Date)
	}
	if list[0].Results["b"] != 50 || len(list[0].Results) != 2 {
		t.Errorf("results not attached: %v", list[0].Results)
	}

	ov, _ := db.Overview(ctx)
	if ov.FirstDate != "2024-11-20" || ov.LastDate != "2025-01-15-2" {
		t.Errorf("overview range: %+v", ov)
	}
}

func TestClearAll(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	db.CreatePlayer(ctx, &model.Player{Name: "Ano"})
	db.CreateGameIfAbsent(ctx, &model.Game{Date: "2025-01-01", DisplayDate: "1/1", Results: map[string]int64{"x": 1}})

	if err := db.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	ov, _ := db.Overview(ctx)
	if ov.Players != 0 || ov.Games != 0 || ov.Results != 0 {
		t.Errorf("expected empty store, got %+v", ov)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()
	db.CreatePlayer(ctx, &model.Player{Name: "Shik"})

	cols, rows, err := db.QueryRaw(ctx, "SELECT name, games_played_from_ledger FROM players")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "name" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "Shik" || rows[0][1] != "NULL" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: dialectPostgres}
	if got := pg.rebind("SELECT 1 WHERE a = ? AND b = ?"); got != "SELECT 1 WHERE a = $1 AND b = $2" {
		t.Errorf("postgres rebind: %s", got)
	}
	lite := &DB{dialect: dialectSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind changed query: %s", got)
	}
	if !IsPostgresDSN("postgresql://u@h/db") || IsPostgresDSN("/tmp/ledger.db") {
		t.Error("IsPostgresDSN mismatch")
	}
}
