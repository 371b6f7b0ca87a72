// Package stats derives per-player and group statistics from the full game
// history. Every function is pure: the same players, games and as-of time
// always produce the same output.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/pable/go-poker-ledger/internal/model"
)

const (
	recentWindow    = 5
	hotThreshold    = 1000 // cents over the recent window
	minQualifyGames = 3
)

// datedResult is one of a player's game results.
type datedResult struct {
	Date  string
	Cents int64
}

// playerResults returns the player's results in ascending date order. Games
// sharing a date keep their input order.
func playerResults(playerID string, games []model.Game) []datedResult {
	var out []datedResult
	for i := range games {
		if cents, ok := games[i].Results[playerID]; ok {
			out = append(out, datedResult{Date: games[i].Date, Cents: cents})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// gameDay parses the calendar day of a game date, ignoring any "-2" suffix.
func gameDay(date string) (time.Time, bool) {
	if len(date) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", date[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CalculatePlayerStats computes lifetime stats for one player. asOf decides
// which calendar month is "this month" for MonthlyTrend.
func CalculatePlayerStats(p model.Player, games []model.Game, asOf time.Time) model.PlayerStats {
	results := playerResults(p.ID, games)
	s := model.PlayerStats{
		PlayerID:              p.ID,
		PlayerName:            p.Name,
		GamesPlayed:           len(results),
		GamesPlayedFromLedger: p.GamesPlayedFromLedger,
		RecentTrend:           model.TrendNeutral,
	}
	if s.GamesPlayed == 0 {
		return s
	}

	var wins int
	for _, r := range results {
		s.TotalWinnings += r.Cents
		s.BiggestWin = max(s.BiggestWin, r.Cents)
		s.BiggestLoss = min(s.BiggestLoss, r.Cents)
		if r.Cents > 0 {
			wins++
		}
	}
	n := float64(s.GamesPlayed)
	s.AveragePerGame = float64(s.TotalWinnings) / n
	s.WinPercentage = float64(wins) / n * 100

	var sq float64
	for _, r := range results {
		d := float64(r.Cents) - s.AveragePerGame
		sq += d * d
	}
	s.StandardDeviation = math.Sqrt(sq / n)

	var recent int64
	for _, r := range lastN(results, recentWindow) {
		recent += r.Cents
	}
	switch {
	case recent > hotThreshold:
		s.RecentTrend = model.TrendHot
	case recent < -hotThreshold:
		s.RecentTrend = model.TrendCold
	}

	s.MonthlyTrend = monthlyTrend(results, asOf)
	return s
}

func lastN(results []datedResult, n int) []datedResult {
	if len(results) <= n {
		return results
	}
	return results[len(results)-n:]
}

// monthlyTrend is this calendar month's total minus last month's.
func monthlyTrend(results []datedResult, asOf time.Time) int64 {
	thisMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var cur, prev int64
	for _, r := range results {
		d, ok := gameDay(r.Date)
		if !ok {
			continue
		}
		switch {
		case d.Year() == thisMonth.Year() && d.Month() == thisMonth.Month():
			cur += r.Cents
		case d.Year() == lastMonth.Year() && d.Month() == lastMonth.Month():
			prev += r.Cents
		}
	}
	return cur - prev
}

// AllPlayerStats returns stats for every player, in player order.
func AllPlayerStats(players []model.Player, games []model.Game, asOf time.Time) []model.PlayerStats {
	out := make([]model.PlayerStats, 0, len(players))
	for _, p := range players {
		out = append(out, CalculatePlayerStats(p, games, asOf))
	}
	return out
}

// LifetimeStandings returns players who have played, best total first.
// Equal totals keep player order.
func LifetimeStandings(players []model.Player, games []model.Game, asOf time.Time) []model.PlayerStats {
	var out []model.PlayerStats
	for _, s := range AllPlayerStats(players, games, asOf) {
		if s.GamesPlayed > 0 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalWinnings > out[j].TotalWinnings })
	return out
}

// LongestStreak returns the longest run of strictly positive (or, with
// positive=false, strictly negative) results.
func LongestStreak(results []int64, positive bool) int {
	var best, cur int
	for _, r := range results {
		if (positive && r > 0) || (!positive && r < 0) {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}
