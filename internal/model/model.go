package model

import "strings"

// Player is a person who has sat down at the game at least once.
type Player struct {
	ID        string
	Name      string
	PlayerIDs []string // external ids minted by the session-tracking app
	Nicknames []string

	// GamesPlayedFromLedger is the "Num Games Played" column of the historical
	// ledger. Display only; stats never read it.
	GamesPlayedFromLedger *int
}

// HasPlayerID reports whether id is one of the player's external ids (exact match).
func (p Player) HasPlayerID(id string) bool {
	for _, pid := range p.PlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// HasNickname reports whether the player is known by nick, ignoring case and
// surrounding whitespace.
func (p Player) HasNickname(nick string) bool {
	want := normalizeNickname(nick)
	if want == "" {
		return false
	}
	for _, n := range p.Nicknames {
		if normalizeNickname(n) == want {
			return true
		}
	}
	return false
}

// AddPlayerID appends id unless it is empty or already present. Returns true
// if the set changed.
func (p *Player) AddPlayerID(id string) bool {
	if id == "" || p.HasPlayerID(id) {
		return false
	}
	p.PlayerIDs = append(p.PlayerIDs, id)
	return true
}

// AddNickname appends nick unless it is blank or already present.
func (p *Player) AddNickname(nick string) bool {
	nick = strings.TrimSpace(nick)
	if nick == "" || p.HasNickname(nick) {
		return false
	}
	p.Nicknames = append(p.Nicknames, nick)
	return true
}

func normalizeNickname(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Game is one poker session.
type Game struct {
	ID          string
	Date        string // "YYYY-MM-DD", optionally suffixed "-2"
	DisplayDate string // "M/D"
	Results     map[string]int64 // player ID -> net cents
}

// Result returns the player's net cents and whether they played.
func (g *Game) Result(playerID string) (int64, bool) {
	cents, ok := g.Results[playerID]
	return cents, ok
}

// Trend classifies a player's recent form.
type Trend string

const (
	TrendHot     Trend = "hot"
	TrendCold    Trend = "cold"
	TrendNeutral Trend = "neutral"
)

// PlayerStats is derived from the full game history on every read.
type PlayerStats struct {
	PlayerID              string
	PlayerName            string
	TotalWinnings         int64 // cents
	GamesPlayed           int
	GamesPlayedFromLedger *int
	AveragePerGame        float64 // cents
	BiggestWin            int64
	BiggestLoss           int64
	WinPercentage         float64 // 0-100
	StandardDeviation     float64 // cents
	RecentTrend           Trend
	MonthlyTrend          int64 // cents, this month minus last month
}

// FunStat is one entry of the superlatives catalogue.
type FunStat struct {
	Key         string
	Icon        string
	Title       string
	Description string
	PlayerID    string
	PlayerName  string
	Value       string
	Hint        string
}

// ---- Import formats ----

// UploadRow is one player-session record of the per-session upload CSV.
// Fields are kept verbatim; numeric parsing happens downstream.
type UploadRow struct {
	PlayerNickname string
	PlayerID       string
	SessionStartAt string
	SessionEndAt   string
	BuyIn          string
	BuyOut         string
	Stack          string
	Net            string
}

// LedgerRow is one player row of the wide historical ledger.
type LedgerRow struct {
	Player      string
	Totals      string
	GamesPlayed *int
	PerGame     string
	Cells       map[string]string // date header -> raw cell
}

// LedgerSheet is a parsed wide ledger: date columns in file order plus rows.
type LedgerSheet struct {
	DateColumns []string
	Rows        []LedgerRow
}
