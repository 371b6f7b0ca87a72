package cmd

import (
	"encoding/json"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/stats"
)

func ledgerFixture() ([]model.Player, []model.Game) {
	players := []model.Player{
		{ID: "p1", Name: "Garrett"},
		{ID: "p2", Name: "Hoot", Nicknames: []string{"hooter"}},
		{ID: "p3", Name: "Hoot"},
	}
	games := []model.Game{
		{ID: "g2", Date: "2025-02-01", DisplayDate: "2/1", Results: map[string]int64{"p1": -1050, "p2": 1050}},
		{ID: "g1", Date: "2025-01-15", DisplayDate: "1/15", Results: map[string]int64{"p1": 2500, "p3": -2500}},
	}
	return players, games
}

func TestFindPlayer(t *testing.T) {
	players, _ := ledgerFixture()

	p, err := findPlayer(players, "p3")
	require.NoError(t, err)
	assert.Equal(t, "p3", p.ID)

	p, err = findPlayer(players, "garrett")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	p, err = findPlayer(players, " HOOTER ")
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)

	_, err = findPlayer(players, "nobody")
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}

func TestPlayerOptionsDisambiguatesNames(t *testing.T) {
	players, _ := ledgerFixture()
	opts, byLabel := playerOptions(players)

	assert.Equal(t, []string{"Garrett", "Hoot (p2)", "Hoot (p3)"}, opts)
	assert.Equal(t, "p3", byLabel["Hoot (p3)"])
}

func TestBuildLedgerContext(t *testing.T) {
	players, games := ledgerFixture()
	raw, err := buildLedgerContext(players, games, 1)
	require.NoError(t, err)

	var doc struct {
		GamesStored int    `json:"games_stored"`
		FirstGame   string `json:"first_game"`
		LastGame    string `json:"last_game"`
		Standings   []struct {
			Player string  `json:"player"`
			Total  float64 `json:"total"`
		} `json:"standings"`
		RecentGames []struct {
			Date    string             `json:"date"`
			Results map[string]float64 `json:"results"`
		} `json:"recent_games"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, 2, doc.GamesStored)
	assert.Equal(t, "2025-01-15", doc.FirstGame)
	assert.Equal(t, "2025-02-01", doc.LastGame)
	require.Len(t, doc.Standings, 3)
	assert.Equal(t, "Garrett", doc.Standings[0].Player)
	assert.Equal(t, 14.5, doc.Standings[0].Total)
	require.Len(t, doc.RecentGames, 1)
	assert.Equal(t, -10.5, doc.RecentGames[0].Results["Garrett"])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, round2(1.236))
	assert.Equal(t, -1.24, round2(-1.236))
	assert.Equal(t, 1.24, round2(1.235))
	assert.Equal(t, 0.0, round2(0))
}

func TestBuildLedgerContextClampsRecent(t *testing.T) {
	players, games := ledgerFixture()
	for _, recent := range []int{-1, 0, 50} {
		raw, err := buildLedgerContext(players, games, recent)
		require.NoError(t, err, "recent=%d", recent)

		var doc struct {
			RecentGames []json.RawMessage `json:"recent_games"`
		}
		require.NoError(t, json.Unmarshal([]byte(raw), &doc))
		assert.LessOrEqual(t, len(doc.RecentGames), len(games))
	}
}

func TestRunAnalyzeRejectsNegativeRecent(t *testing.T) {
	analyzeRecent = -3
	defer func() { analyzeRecent = 10 }()

	err := runAnalyze(analyzeCmd, []string{"who is winning?"})
	assert.ErrorContains(t, err, "--recent")
}

func TestResultLabelsKeepsSameNamedPlayers(t *testing.T) {
	players, _ := ledgerFixture()
	g := model.Game{Date: "2025-03-01", Results: map[string]int64{"p2": 300, "p3": -100, "zz1": -100, "zz2": -100}}

	labels := resultLabels(stats.GameLog(players, g))
	require.Len(t, labels, 4)
	assert.Equal(t, int64(300), labels["Hoot (p2)"].Cents)
	assert.Equal(t, int64(-100), labels["Hoot (p3)"].Cents)
	assert.Contains(t, labels, "Unknown (zz1)")
	assert.Contains(t, labels, "Unknown (zz2)")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown("**Garrett** is up $14.50", glamour.WithStandardStyle("dark"))
	require.NoError(t, err)
	assert.Contains(t, out, "Garrett")
	assert.NotContains(t, out, "**")
}

func TestAnalyzePromptFormRule(t *testing.T) {
	assert.Contains(t, analyzeSystemPrompt, "last 5 games sum to more than +$10")
	assert.NotContains(t, analyzeSystemPrompt, "average over")
}
