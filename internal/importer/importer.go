// Package importer turns CSV files into stored games. An upload import runs as
// a Session: rows whose player can be identified are bound straight away, the
// rest wait for an operator to pick or create a player, and nothing is
// written until every row is bound.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pable/go-poker-ledger/internal/aggregator"
	"github.com/pable/go-poker-ledger/internal/identity"
	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/parser"
)

// Store is the persistence an import needs.
type Store interface {
	aggregator.GameWriter
	ListPlayers(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	CreatePlayer(ctx context.Context, p *model.Player) error
	UpdatePlayerIDs(ctx context.Context, playerID string, ids ...string) (*model.Player, error)
	ClearAll(ctx context.Context) error
}

// Importer runs upload imports and ledger seeds against a Store.
type Importer struct {
	store  Store
	known  identity.KnownIDs
	logger *slog.Logger

	// SeedNicknames gives ledger players a starting nickname, keyed by name.
	SeedNicknames map[string]string
}

func New(store Store, known identity.KnownIDs, logger *slog.Logger) *Importer {
	return &Importer{store: store, known: known, logger: logger}
}

// Pending is an upload row no lookup could place.
type Pending struct {
	Index int // position in the upload file
	Row   model.UploadRow
}

// Reference returns what the row says about its player.
func (p Pending) Reference() identity.Reference {
	return identity.Reference{PlayerID: p.Row.PlayerID, Nickname: p.Row.PlayerNickname}
}

// Session is one upload import in progress.
type Session struct {
	imp      *Importer
	date     string
	rows     []model.UploadRow
	bound    map[int]string // row index -> player id
	pending  []Pending
	resolver *identity.Resolver
}

// Begin parses an upload and resolves what it can. It fails before touching
// the store's players when the file is empty or its date is already taken.
func (imp *Importer) Begin(ctx context.Context, r io.Reader) (*Session, error) {
	rows, err := parser.ParseUpload(r)
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	return imp.begin(ctx, rows)
}

// BeginFile is Begin over the upload CSV at path.
func (imp *Importer) BeginFile(ctx context.Context, path string) (*Session, error) {
	rows, err := parser.ParseUploadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	return imp.begin(ctx, rows)
}

func (imp *Importer) begin(ctx context.Context, rows []model.UploadRow) (*Session, error) {
	if len(rows) == 0 {
		return nil, model.ErrEmptyImport
	}

	date := parser.DateFromTimestamp(rows[0].SessionStartAt)
	if _, err := parser.ParseGameDate(date); err != nil {
		return nil, fmt.Errorf("session_start_at %q: %w", rows[0].SessionStartAt, err)
	}
	exists, err := imp.store.GameExists(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check game %s: %w", date, err)
	}
	if exists {
		return nil, fmt.Errorf("import %s: %w", date, model.ErrDuplicateGame)
	}

	players, err := imp.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}

	s := &Session{
		imp:      imp,
		date:     date,
		rows:     rows,
		bound:    make(map[int]string, len(rows)),
		resolver: identity.New(imp.known, players),
	}
	for i, row := range rows {
		s.pending = append(s.pending, Pending{Index: i, Row: row})
	}
	s.resolvePending()

	imp.logger.Info("upload parsed",
		"date", date, "rows", len(rows), "matched", len(s.bound), "unmatched", len(s.pending))
	if off := s.Imbalance(); off != 0 {
		imp.logger.Warn("upload nets do not sum to zero", "date", date, "off_by_cents", off)
	}
	return s, nil
}

// resolvePending binds every pending row the resolver can now place, keeping
// the order of the rows that remain.
func (s *Session) resolvePending() {
	remaining := s.pending[:0]
	for _, p := range s.pending {
		player, rule, err := s.resolver.ResolveStep(p.Reference())
		if err != nil {
			remaining = append(remaining, p)
			continue
		}
		s.bound[p.Index] = player.ID
		s.imp.logger.Debug("row matched",
			"row", p.Index, "nickname", p.Row.PlayerNickname, "player", player.Name, "rule", rule.String())
	}
	s.pending = remaining
}

// Date is the game date taken from the first row.
func (s *Session) Date() string { return s.date }

// Imbalance is the sum of every row's net. A complete session sums to zero;
// anything else means a missing row or a mistyped amount.
func (s *Session) Imbalance() int64 {
	var total int64
	for _, net := range aggregator.SumUploadNets(s.rows) {
		total += net
	}
	return total
}

// Players is the player list the session resolves against.
func (s *Session) Players() []model.Player { return s.resolver.Players() }

// Pending returns the unresolved rows in file order.
func (s *Session) Pending() []Pending {
	return append([]Pending(nil), s.pending...)
}

// Next returns the first unresolved row.
func (s *Session) Next() (Pending, bool) {
	if len(s.pending) == 0 {
		return Pending{}, false
	}
	return s.pending[0], true
}

// BindExisting binds the current pending row to an existing player. With
// savePlayerID the row's external id is added to the player so later imports
// match it automatically.
func (s *Session) BindExisting(ctx context.Context, playerID string, savePlayerID bool) error {
	cur, ok := s.Next()
	if !ok {
		return model.ErrNoPendingRows
	}

	player, err := s.imp.store.GetPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("bind row %d: %w", cur.Index, err)
	}

	if savePlayerID && cur.Row.PlayerID != "" && !player.HasPlayerID(cur.Row.PlayerID) {
		if _, err := s.imp.store.UpdatePlayerIDs(ctx, playerID, cur.Row.PlayerID); err != nil {
			return fmt.Errorf("save player id: %w", err)
		}
		s.imp.logger.Info("player id saved", "player", player.Name, "player_id", cur.Row.PlayerID)
		if err := s.reload(ctx); err != nil {
			return err
		}
	}

	s.bind(cur, playerID)
	return nil
}

// CreatePlayer adds a new player named name for the current pending row and
// binds the row to it.
func (s *Session) CreatePlayer(ctx context.Context, name string, savePlayerID bool) (model.Player, error) {
	cur, ok := s.Next()
	if !ok {
		return model.Player{}, model.ErrNoPendingRows
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, fmt.Errorf("create player: name is empty")
	}

	p := model.Player{Name: name}
	p.AddNickname(cur.Row.PlayerNickname)
	if savePlayerID {
		p.AddPlayerID(cur.Row.PlayerID)
	}
	if err := s.imp.store.CreatePlayer(ctx, &p); err != nil {
		return model.Player{}, fmt.Errorf("create player: %w", err)
	}
	s.imp.logger.Info("player created", "name", p.Name, "id", p.ID)

	if err := s.reload(ctx); err != nil {
		return p, err
	}
	s.bind(cur, p.ID)
	return p, nil
}

func (s *Session) reload(ctx context.Context) error {
	players, err := s.imp.store.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("reload players: %w", err)
	}
	s.resolver.Refresh(players)
	return nil
}

// bind resolves cur, then retries the remaining rows: a saved id or a new
// player's nickname often covers a later re-buy row of the same person.
func (s *Session) bind(cur Pending, playerID string) {
	s.bound[cur.Index] = playerID
	s.pending = s.pending[1:]
	s.resolvePending()
}

// Commit aggregates every row and writes the game. Nothing is written while
// rows are still pending.
func (s *Session) Commit(ctx context.Context) (model.Game, error) {
	if len(s.pending) > 0 {
		return model.Game{}, fmt.Errorf("commit %s: %d rows: %w", s.date, len(s.pending), model.ErrUnresolvedRows)
	}

	resolved := make([]aggregator.ResolvedRow, 0, len(s.rows))
	for i, row := range s.rows {
		resolved = append(resolved, aggregator.ResolvedRow{
			PlayerID: s.bound[i],
			Net:      parser.ParseCents(row.Net),
		})
	}
	game := aggregator.Aggregate(resolved, s.date)
	if err := aggregator.Commit(ctx, s.imp.store, &game); err != nil {
		return model.Game{}, err
	}
	s.imp.logger.Info("game created", "date", game.Date, "players", len(game.Results))
	return game, nil
}
