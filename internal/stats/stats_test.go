package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-poker-ledger/internal/model"
)

var asOf = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func game(date string, results map[string]int64) model.Game {
	return model.Game{ID: "g-" + date, Date: date, Results: results}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[int64]string{
		1234:    "+$12.34",
		-500:    "-$5.00",
		0:       "+$0.00",
		-1:      "-$0.01",
		100000:  "+$1000.00",
		-123456: "-$1234.56",
	}
	for cents, want := range cases {
		assert.Equal(t, want, FormatCurrency(cents), "cents=%d", cents)
	}
}

func TestFormatCurrencyFloat(t *testing.T) {
	assert.Equal(t, "+$1.00", FormatCurrencyFloat(99.6))
	assert.Equal(t, "-$0.33", FormatCurrencyFloat(-33.4))
	assert.Equal(t, "+$100.00", FormatCurrencyFloat(10000))
}

func TestFormatCurrencyFloatHalvesRoundUp(t *testing.T) {
	assert.Equal(t, "-$0.12", FormatCurrencyFloat(-12.5))
	assert.Equal(t, "+$0.13", FormatCurrencyFloat(12.5))
	assert.Equal(t, "+$0.00", FormatCurrencyFloat(-0.5))
}

func TestCalculatePlayerStats_StandardDeviation(t *testing.T) {
	p := model.Player{ID: "a", Name: "Alice"}
	games := []model.Game{
		game("2025-01-01", map[string]int64{"a": 100}),
		game("2025-01-08", map[string]int64{"a": -100}),
	}
	s := CalculatePlayerStats(p, games, asOf)

	assert.Equal(t, 2, s.GamesPlayed)
	assert.Equal(t, int64(0), s.TotalWinnings)
	assert.InDelta(t, 0, s.AveragePerGame, 1e-9)
	assert.InDelta(t, 100, s.StandardDeviation, 1e-9)
	assert.InDelta(t, 50, s.WinPercentage, 1e-9)
	assert.Equal(t, int64(100), s.BiggestWin)
	assert.Equal(t, int64(-100), s.BiggestLoss)
}

func TestCalculatePlayerStats_NoGames(t *testing.T) {
	n := 12
	p := model.Player{ID: "a", Name: "Alice", GamesPlayedFromLedger: &n}
	s := CalculatePlayerStats(p, []model.Game{game("2025-01-01", map[string]int64{"b": 5})}, asOf)

	assert.Zero(t, s.GamesPlayed)
	assert.Zero(t, s.AveragePerGame)
	assert.Zero(t, s.StandardDeviation)
	assert.Zero(t, s.WinPercentage)
	assert.Equal(t, model.TrendNeutral, s.RecentTrend)
	require.NotNil(t, s.GamesPlayedFromLedger)
	assert.Equal(t, 12, *s.GamesPlayedFromLedger)
}

func TestCalculatePlayerStats_ExtremesClampAtZero(t *testing.T) {
	p := model.Player{ID: "a"}
	losing := []model.Game{
		game("2025-01-01", map[string]int64{"a": -300}),
		game("2025-01-02", map[string]int64{"a": -100}),
	}
	s := CalculatePlayerStats(p, losing, asOf)
	assert.Equal(t, int64(0), s.BiggestWin)
	assert.Equal(t, int64(-300), s.BiggestLoss)

	winning := []model.Game{game("2025-01-01", map[string]int64{"a": 700})}
	s = CalculatePlayerStats(p, winning, asOf)
	assert.Equal(t, int64(700), s.BiggestWin)
	assert.Equal(t, int64(0), s.BiggestLoss)
}

func TestCalculatePlayerStats_RecentTrend(t *testing.T) {
	p := model.Player{ID: "a"}
	// Six games out of date order; only the latest five count.
	games := []model.Game{
		game("2025-02-06", map[string]int64{"a": 400}),
		game("2025-01-01", map[string]int64{"a": -100000}),
		game("2025-02-01", map[string]int64{"a": 400}),
		game("2025-02-02", map[string]int64{"a": 400}),
		game("2025-02-04", map[string]int64{"a": -200}),
		game("2025-02-05", map[string]int64{"a": 100}),
	}
	assert.Equal(t, model.TrendHot, CalculatePlayerStats(p, games, asOf).RecentTrend)

	cold := []model.Game{
		game("2025-02-01", map[string]int64{"a": -600}),
		game("2025-02-02", map[string]int64{"a": -401}),
	}
	assert.Equal(t, model.TrendCold, CalculatePlayerStats(p, cold, asOf).RecentTrend)

	edge := []model.Game{game("2025-02-01", map[string]int64{"a": 1000})}
	assert.Equal(t, model.TrendNeutral, CalculatePlayerStats(p, edge, asOf).RecentTrend)
}

func TestCalculatePlayerStats_MonthlyTrend(t *testing.T) {
	p := model.Player{ID: "a"}
	games := []model.Game{
		game("2025-03-01", map[string]int64{"a": 500}),
		game("2025-03-08-2", map[string]int64{"a": 200}),
		game("2025-02-20", map[string]int64{"a": -300}),
		game("2025-01-20", map[string]int64{"a": 9999}),
	}
	// March 700 minus February -300.
	assert.Equal(t, int64(1000), CalculatePlayerStats(p, games, asOf).MonthlyTrend)
}

func TestCalculatePlayerStats_MonthlyTrendJanuaryRollover(t *testing.T) {
	p := model.Player{ID: "a"}
	games := []model.Game{
		game("2025-01-05", map[string]int64{"a": 100}),
		game("2024-12-20", map[string]int64{"a": 400}),
		game("2025-12-20", map[string]int64{"a": 9999}),
	}
	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(-300), CalculatePlayerStats(p, games, jan).MonthlyTrend)
}

func TestLongestStreak(t *testing.T) {
	results := []int64{50, -10, 30, 40, -5}
	assert.Equal(t, 2, LongestStreak(results, true))
	assert.Equal(t, 1, LongestStreak(results, false))

	assert.Equal(t, 0, LongestStreak(nil, true))
	assert.Equal(t, 0, LongestStreak([]int64{0, 0}, false))
	assert.Equal(t, 3, LongestStreak([]int64{-1, -2, 0, -1, -1, -1}, false))
}

func TestLifetimeStandings(t *testing.T) {
	players := []model.Player{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
		{ID: "c", Name: "Carol"},
		{ID: "d", Name: "Dan"},
	}
	games := []model.Game{
		game("2025-01-01", map[string]int64{"a": -500, "b": 300, "c": 200}),
		game("2025-01-08", map[string]int64{"a": 100, "b": -100}),
	}
	got := LifetimeStandings(players, games, asOf)
	require.Len(t, got, 3, "Dan never played")

	// Bob and Carol tie at 200; player order keeps Bob first.
	assert.Equal(t, "b", got[0].PlayerID)
	assert.Equal(t, "c", got[1].PlayerID)
	assert.Equal(t, "a", got[2].PlayerID)
	assert.Equal(t, int64(-400), got[2].TotalWinnings)
}
