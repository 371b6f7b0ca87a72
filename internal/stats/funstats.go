package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/pable/go-poker-ledger/internal/model"
)

// Fun-stat keys, in catalogue order.
const (
	KeyWhale           = "whale"
	KeyShark           = "shark"
	KeyConsistencyKing = "consistency-king"
	KeyRollercoaster   = "rollercoaster"
	KeyGhost           = "ghost"
	KeyIronButt        = "iron-butt"
	KeyLuckyCharm      = "lucky-charm"
	KeyUnluckySoul     = "unlucky-soul"
	KeyBiggestWinner   = "biggest-winner"
	KeyStreakMaster    = "streak-master"
	KeyColdStreak      = "cold-streak"
	KeyBiggestLoser    = "biggest-loser"
	KeyOnFire          = "on-fire"
	KeyLastLaugh       = "last-laugh"
)

// foldIndex returns the index of the best item, where better(a, b) reports
// a strictly beating b. Ties keep the earliest index. -1 for an empty slice.
func foldIndex[T any](items []T, better func(a, b T) bool) int {
	if len(items) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if better(items[i], items[best]) {
			best = i
		}
	}
	return best
}

// playerAgg carries the per-player numbers the catalogue ranks on.
type playerAgg struct {
	stats      model.PlayerStats
	winStreak  int
	lossStreak int
	last5Avg   float64
}

func newFunStat(key, icon, title, desc string, s model.PlayerStats, value, hint string) model.FunStat {
	return model.FunStat{
		Key:         key,
		Icon:        icon,
		Title:       title,
		Description: desc,
		PlayerID:    s.PlayerID,
		PlayerName:  s.PlayerName,
		Value:       value,
		Hint:        hint,
	}
}

// FunStats computes the superlatives catalogue. Entries that need at least
// three games, or a non-zero streak, are left out when nobody qualifies.
func FunStats(players []model.Player, games []model.Game, asOf time.Time) []model.FunStat {
	if len(players) == 0 {
		return nil
	}

	all := make([]playerAgg, 0, len(players))
	for _, p := range players {
		results := playerResults(p.ID, games)
		cents := make([]int64, len(results))
		for i, r := range results {
			cents[i] = r.Cents
		}
		agg := playerAgg{
			stats:      CalculatePlayerStats(p, games, asOf),
			winStreak:  LongestStreak(cents, true),
			lossStreak: LongestStreak(cents, false),
		}
		if recent := lastN(results, recentWindow); len(recent) > 0 {
			var sum int64
			for _, r := range recent {
				sum += r.Cents
			}
			agg.last5Avg = float64(sum) / float64(len(recent))
		}
		all = append(all, agg)
	}

	var qualified []playerAgg
	for _, a := range all {
		if a.stats.GamesPlayed >= minQualifyGames {
			qualified = append(qualified, a)
		}
	}

	var out []model.FunStat
	pick := func(items []playerAgg, better func(a, b playerAgg) bool) (playerAgg, bool) {
		i := foldIndex(items, better)
		if i < 0 {
			return playerAgg{}, false
		}
		return items[i], true
	}

	if a, ok := pick(all, func(a, b playerAgg) bool { return a.stats.TotalWinnings < b.stats.TotalWinnings }); ok {
		out = append(out, newFunStat(KeyWhale, "🐋", "The Whale", "Biggest all-time loser",
			a.stats, FormatCurrency(a.stats.TotalWinnings), ""))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return a.stats.TotalWinnings > b.stats.TotalWinnings }); ok {
		out = append(out, newFunStat(KeyShark, "🦈", "The Shark", "Biggest all-time winner",
			a.stats, FormatCurrency(a.stats.TotalWinnings), ""))
	}
	if a, ok := pick(qualified, func(a, b playerAgg) bool { return a.stats.StandardDeviation < b.stats.StandardDeviation }); ok {
		out = append(out, newFunStat(KeyConsistencyKing, "👑", "Consistency King", "Most consistent results",
			a.stats, "σ = "+FormatCurrencyFloat(a.stats.StandardDeviation),
			"Calculated by lowest standard deviation of per-game results (min 3 games)."))
	}
	if a, ok := pick(qualified, func(a, b playerAgg) bool { return a.stats.StandardDeviation > b.stats.StandardDeviation }); ok {
		out = append(out, newFunStat(KeyRollercoaster, "🎢", "Rollercoaster", "Most volatile results",
			a.stats, "σ = "+FormatCurrencyFloat(a.stats.StandardDeviation),
			"Calculated by highest standard deviation of per-game results (min 3 games)."))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return a.stats.GamesPlayed < b.stats.GamesPlayed }); ok {
		out = append(out, newFunStat(KeyGhost, "👻", "Ghost Player", "Least games played",
			a.stats, gamesLabel(a.stats.GamesPlayed), ""))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return a.stats.GamesPlayed > b.stats.GamesPlayed }); ok {
		out = append(out, newFunStat(KeyIronButt, "🪑", "Iron Butt", "Most games played",
			a.stats, gamesLabel(a.stats.GamesPlayed), ""))
	}
	if a, ok := pick(qualified, func(a, b playerAgg) bool { return a.stats.WinPercentage > b.stats.WinPercentage }); ok {
		out = append(out, newFunStat(KeyLuckyCharm, "🍀", "Lucky Charm", "Best winning percentage",
			a.stats, FormatPercent(a.stats.WinPercentage), ""))
	}
	if a, ok := pick(qualified, func(a, b playerAgg) bool { return a.stats.WinPercentage < b.stats.WinPercentage }); ok {
		out = append(out, newFunStat(KeyUnluckySoul, "💀", "Unlucky Soul", "Worst winning percentage",
			a.stats, FormatPercent(a.stats.WinPercentage), ""))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return max(a.stats.BiggestWin, 0) > max(b.stats.BiggestWin, 0) }); ok {
		out = append(out, newFunStat(KeyBiggestWinner, "🎯", "Biggest Single-Game Winner", "Largest single-game win",
			a.stats, FormatCurrency(a.stats.BiggestWin), ""))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return a.winStreak > b.winStreak }); ok && a.winStreak > 0 {
		out = append(out, newFunStat(KeyStreakMaster, "🔥", "Streak Master", "Longest winning streak",
			a.stats, gamesLabel(a.winStreak)+" in a row", "Most consecutive games with a positive result."))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return a.lossStreak > b.lossStreak }); ok && a.lossStreak > 0 {
		out = append(out, newFunStat(KeyColdStreak, "❄️", "Longest Cold Streak", "Most consecutive losses",
			a.stats, gamesLabel(a.lossStreak)+" in a row", "Most consecutive games with a negative result."))
	}
	if a, ok := pick(all, func(a, b playerAgg) bool { return a.stats.BiggestLoss < b.stats.BiggestLoss }); ok {
		out = append(out, newFunStat(KeyBiggestLoser, "💸", "Biggest Single-Game Loser", "Largest single-game loss",
			a.stats, FormatCurrency(a.stats.BiggestLoss), ""))
	}
	if a, ok := pick(qualified, func(a, b playerAgg) bool { return a.last5Avg > b.last5Avg }); ok {
		out = append(out, newFunStat(KeyOnFire, "🔥", "On Fire", "Best recent form (last 5 games)",
			a.stats, FormatCurrencyFloat(a.last5Avg), "Highest average profit over their last 5 games."))
	}
	if fs, ok := lastLaugh(players, games); ok {
		out = append(out, fs)
	}
	return out
}

// lastLaugh finds the strictly highest result in the latest game. Result ids
// are scanned in sorted order so equal amounts resolve the same way each run.
func lastLaugh(players []model.Player, games []model.Game) (model.FunStat, bool) {
	latest := foldIndex(games, func(a, b model.Game) bool { return a.Date > b.Date })
	if latest < 0 || len(games[latest].Results) == 0 {
		return model.FunStat{}, false
	}
	g := games[latest]

	ids := make([]string, 0, len(g.Results))
	for id := range g.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	winner := ids[foldIndex(ids, func(a, b string) bool { return g.Results[a] > g.Results[b] })]

	for _, p := range players {
		if p.ID == winner {
			s := model.PlayerStats{PlayerID: p.ID, PlayerName: p.Name}
			return newFunStat(KeyLastLaugh, "😎", "Last Laugh", "Winner of the most recent game",
				s, FormatCurrency(g.Results[winner]), "Took down the latest session."), true
		}
	}
	return model.FunStat{}, false
}

// FunStatByKey returns the catalogue entry with key, if it was emitted.
func FunStatByKey(stats []model.FunStat, key string) (model.FunStat, error) {
	for _, fs := range stats {
		if fs.Key == key {
			return fs, nil
		}
	}
	return model.FunStat{}, fmt.Errorf("fun stat %q not emitted", key)
}
