package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/stats"
)

func fixture() ([]model.Player, []model.Game) {
	n := 9
	players := []model.Player{
		{ID: "a", Name: "Garrett", PlayerIDs: []string{"Gx6CTDK1-V"}, GamesPlayedFromLedger: &n},
		{ID: "b", Name: "Shik", Nicknames: []string{"shik"}},
	}
	games := []model.Game{
		{ID: "g2", Date: "2025-01-15", DisplayDate: "1/15", Results: map[string]int64{"a": -250, "b": 250}},
		{ID: "g1", Date: "2024-11-20", DisplayDate: "11/20", Results: map[string]int64{"a": 1234, "b": -1234}},
	}
	return players, games
}

func TestPrintStandings(t *testing.T) {
	players, games := fixture()
	var buf bytes.Buffer
	PrintStandings(&buf, stats.LifetimeStandings(players, games, time.Now()), "b")

	out := buf.String()
	if !strings.Contains(out, "+$9.84") || !strings.Contains(out, "-$9.84") {
		t.Errorf("expected both totals in standings:\n%s", out)
	}
	if strings.Index(out, "Garrett") > strings.Index(out, "Shik") {
		t.Error("expected Garrett ranked above Shik")
	}
	if !strings.Contains(out, "2 (9)") {
		t.Errorf("expected ledger game count next to computed count:\n%s", out)
	}
}

func TestPrintGameLogUnknownPlayer(t *testing.T) {
	players, _ := fixture()
	g := model.Game{Date: "2025-02-01", DisplayDate: "2/1", Results: map[string]int64{"a": 100, "zz": -100}}

	var buf bytes.Buffer
	PrintGameLog(&buf, g, players)
	out := buf.String()
	if !strings.Contains(out, "Unknown") || !strings.Contains(out, "+$1.00") {
		t.Errorf("unexpected game log:\n%s", out)
	}
}

func TestPrintFunStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintFunStats(&buf, nil)
	if !strings.Contains(buf.String(), "No fun stats yet.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintPlayerHistory(t *testing.T) {
	_, games := fixture()
	var buf bytes.Buffer
	PrintPlayerHistory(&buf, "a", games)
	out := buf.String()
	// Oldest first: +12.34 then -2.50 for a running +9.84.
	if strings.Index(out, "11/20") > strings.Index(out, "1/15") {
		t.Errorf("expected chronological order:\n%s", out)
	}
	if !strings.Contains(out, "+$9.84") {
		t.Errorf("expected running total:\n%s", out)
	}
}

func TestPrintPlayers(t *testing.T) {
	players, _ := fixture()
	var buf bytes.Buffer
	PrintPlayers(&buf, players)
	out := buf.String()
	if !strings.Contains(out, "Gx6CTDK1-V") || !strings.Contains(out, "shik") {
		t.Errorf("missing matching keys:\n%s", out)
	}
}
