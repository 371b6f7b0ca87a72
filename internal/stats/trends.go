package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/pable/go-poker-ledger/internal/model"
)

// TrendRange is a look-back window for hot and cold players.
type TrendRange string

const (
	RangeWeek    TrendRange = "week"
	RangeMonth   TrendRange = "month"
	RangeQuarter TrendRange = "quarter"
)

// Window returns the range length.
func (r TrendRange) Window() time.Duration {
	day := 24 * time.Hour
	switch r {
	case RangeWeek:
		return 7 * day
	case RangeQuarter:
		return 90 * day
	default:
		return 30 * day
	}
}

// ParseTrendRange accepts "week", "month" or "quarter".
func ParseTrendRange(s string) (TrendRange, error) {
	switch r := TrendRange(s); r {
	case RangeWeek, RangeMonth, RangeQuarter:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q (want week, month or quarter)", s)
}

// PeriodTotal is a player's net over a trend window.
type PeriodTotal struct {
	PlayerID   string
	PlayerName string
	Total      int64
}

// PeriodTotals sums every player's results over the window ending at the
// latest game date. Players with no game in the window total 0.
func PeriodTotals(players []model.Player, games []model.Game, window time.Duration) []PeriodTotal {
	var anchor time.Time
	for _, g := range games {
		if d, ok := gameDay(g.Date); ok && d.After(anchor) {
			anchor = d
		}
	}
	cutoff := anchor.Add(-window)

	out := make([]PeriodTotal, 0, len(players))
	for _, p := range players {
		pt := PeriodTotal{PlayerID: p.ID, PlayerName: p.Name}
		for _, g := range games {
			d, ok := gameDay(g.Date)
			if !ok || d.Before(cutoff) {
				continue
			}
			pt.Total += g.Results[p.ID]
		}
		out = append(out, pt)
	}
	return out
}

// HotPlayers returns up to n of the best totals, keeping only winners.
func HotPlayers(totals []PeriodTotal, n int) []PeriodTotal {
	sorted := append([]PeriodTotal(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total > sorted[j].Total })
	return keep(sorted[:min(n, len(sorted))], func(t PeriodTotal) bool { return t.Total > 0 })
}

// ColdPlayers returns up to n of the worst totals, keeping only losers.
func ColdPlayers(totals []PeriodTotal, n int) []PeriodTotal {
	sorted := append([]PeriodTotal(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total < sorted[j].Total })
	return keep(sorted[:min(n, len(sorted))], func(t PeriodTotal) bool { return t.Total < 0 })
}

func keep(in []PeriodTotal, ok func(PeriodTotal) bool) []PeriodTotal {
	var out []PeriodTotal
	for _, t := range in {
		if ok(t) {
			out = append(out, t)
		}
	}
	return out
}

// SeriesPoint is one game on a chart, with a value per player id in cents.
type SeriesPoint struct {
	Date        string             `json:"date"`
	DisplayDate string             `json:"displayDate"`
	Values      map[string]float64 `json:"values"`
}

func chronological(games []model.Game) []model.Game {
	sorted := append([]model.Game(nil), games...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}

// CumulativeSeries is every player's running total after each game.
func CumulativeSeries(players []model.Player, games []model.Game) []SeriesPoint {
	running := make(map[string]int64, len(players))
	var out []SeriesPoint
	for _, g := range chronological(games) {
		pt := SeriesPoint{Date: g.Date, DisplayDate: g.DisplayDate, Values: make(map[string]float64, len(players))}
		for _, p := range players {
			running[p.ID] += g.Results[p.ID]
			pt.Values[p.ID] = float64(running[p.ID])
		}
		out = append(out, pt)
	}
	return out
}

// AverageSeries is every player's running per-game average after each game.
// A player's value stays 0 until their first game.
func AverageSeries(players []model.Player, games []model.Game) []SeriesPoint {
	sums := make(map[string]int64, len(players))
	counts := make(map[string]int, len(players))
	var out []SeriesPoint
	for _, g := range chronological(games) {
		pt := SeriesPoint{Date: g.Date, DisplayDate: g.DisplayDate, Values: make(map[string]float64, len(players))}
		for _, p := range players {
			if cents, ok := g.Results[p.ID]; ok {
				sums[p.ID] += cents
				counts[p.ID]++
			}
			if counts[p.ID] > 0 {
				pt.Values[p.ID] = float64(sums[p.ID]) / float64(counts[p.ID])
			} else {
				pt.Values[p.ID] = 0
			}
		}
		out = append(out, pt)
	}
	return out
}

// GameLogEntry is one line of a game's result list.
type GameLogEntry struct {
	PlayerID   string
	PlayerName string
	Cents      int64
}

// GameLog lists a game's results, biggest winner first. Ids without a
// player show as "Unknown".
func GameLog(players []model.Player, game model.Game) []GameLogEntry {
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	out := make([]GameLogEntry, 0, len(game.Results))
	for id, cents := range game.Results {
		name, ok := names[id]
		if !ok {
			name = "Unknown"
		}
		out = append(out, GameLogEntry{PlayerID: id, PlayerName: name, Cents: cents})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cents != out[j].Cents {
			return out[i].Cents > out[j].Cents
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
