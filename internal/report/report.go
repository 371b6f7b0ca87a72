package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func trendArrow(t model.Trend) string {
	switch t {
	case model.TrendHot:
		return "🔥"
	case model.TrendCold:
		return "🧊"
	}
	return "—"
}

// ledgerGames shows the ledger's own game count next to the computed one
// when the two disagree.
func ledgerGames(s model.PlayerStats) string {
	played := strconv.Itoa(s.GamesPlayed)
	if s.GamesPlayedFromLedger != nil && *s.GamesPlayedFromLedger != s.GamesPlayed {
		played += fmt.Sprintf(" (%d)", *s.GamesPlayedFromLedger)
	}
	return played
}

// PrintStandings writes the lifetime standings. focusID, when set, marks that
// player's row with ">".
func PrintStandings(w io.Writer, standings []model.PlayerStats, focusID string) {
	table := newTable(w)
	table.Header(" ", "#", "PLAYER", "TOTAL", "GAMES", "AVG", "WIN%", "BEST", "WORST", "FORM", "MONTH")

	for i, s := range standings {
		marker := " "
		if focusID != "" && s.PlayerID == focusID {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			s.PlayerName,
			stats.FormatCurrency(s.TotalWinnings),
			ledgerGames(s),
			stats.FormatCurrencyFloat(s.AveragePerGame),
			stats.FormatPercent(s.WinPercentage),
			stats.FormatCurrency(s.BiggestWin),
			stats.FormatCurrency(s.BiggestLoss),
			trendArrow(s.RecentTrend),
			stats.FormatCurrency(s.MonthlyTrend),
		)
	}
	table.Render()
}

// PrintPlayerStats writes one player's card as a two-column table.
func PrintPlayerStats(w io.Writer, s model.PlayerStats, p model.Player) {
	fmt.Fprintf(w, "\n%s  |  id %s\n", s.PlayerName, p.ID)
	if len(p.PlayerIDs) > 0 {
		fmt.Fprintf(w, "Known ids: %s\n", strings.Join(p.PlayerIDs, ", "))
	}
	if len(p.Nicknames) > 0 {
		fmt.Fprintf(w, "Nicknames: %s\n", strings.Join(p.Nicknames, ", "))
	}
	fmt.Fprintln(w)

	table := newTable(w)
	table.Header("STAT", "VALUE")
	rows := [][2]string{
		{"Total winnings", stats.FormatCurrency(s.TotalWinnings)},
		{"Games played", ledgerGames(s)},
		{"Average per game", stats.FormatCurrencyFloat(s.AveragePerGame)},
		{"Biggest win", stats.FormatCurrency(s.BiggestWin)},
		{"Biggest loss", stats.FormatCurrency(s.BiggestLoss)},
		{"Win percentage", stats.FormatPercent(s.WinPercentage)},
		{"Std deviation", "σ = " + stats.FormatCurrencyFloat(s.StandardDeviation)},
		{"Recent form", string(s.RecentTrend) + " " + trendArrow(s.RecentTrend)},
		{"This month vs last", stats.FormatCurrency(s.MonthlyTrend)},
	}
	for _, r := range rows {
		table.Append(r[0], r[1])
	}
	table.Render()
}

// PrintPlayerHistory writes a player's results oldest first with a running total.
func PrintPlayerHistory(w io.Writer, playerID string, games []model.Game) {
	table := newTable(w)
	table.Header("DATE", "RESULT", "RUNNING")

	var running int64
	for _, pt := range stats.CumulativeSeries([]model.Player{{ID: playerID}}, games) {
		g := findGame(games, pt.Date)
		cents, ok := g.Result(playerID)
		if !ok {
			continue
		}
		running += cents
		table.Append(pt.DisplayDate+"  "+pt.Date, stats.FormatCurrency(cents), stats.FormatCurrency(running))
	}
	table.Render()
}

func findGame(games []model.Game, date string) model.Game {
	for _, g := range games {
		if g.Date == date {
			return g
		}
	}
	return model.Game{}
}

// PrintFunStats writes the superlatives catalogue.
func PrintFunStats(w io.Writer, funStats []model.FunStat) {
	if len(funStats) == 0 {
		fmt.Fprintln(w, "No fun stats yet.")
		return
	}
	table := newTable(w)
	table.Header(" ", "AWARD", "PLAYER", "VALUE", "WHAT")
	for _, f := range funStats {
		what := f.Description
		if f.Hint != "" {
			what += " (" + f.Hint + ")"
		}
		table.Append(f.Icon, f.Title, f.PlayerName, f.Value, what)
	}
	table.Render()
}

// PrintGames writes one line per game, newest first as given.
func PrintGames(w io.Writer, games []model.Game, players []model.Player) {
	table := newTable(w)
	table.Header("DATE", "SHOWN", "PLAYERS", "TOP WINNER", "POT")
	for _, g := range games {
		log := stats.GameLog(players, g)
		top := "—"
		if len(log) > 0 && log[0].Cents > 0 {
			top = fmt.Sprintf("%s %s", log[0].PlayerName, stats.FormatCurrency(log[0].Cents))
		}
		var pot int64
		for _, e := range log {
			if e.Cents > 0 {
				pot += e.Cents
			}
		}
		table.Append(g.Date, g.DisplayDate, strconv.Itoa(len(g.Results)), top, stats.FormatCurrency(pot))
	}
	table.Render()
}

// PrintGameLog writes a single game's results, biggest winner first.
func PrintGameLog(w io.Writer, g model.Game, players []model.Player) {
	fmt.Fprintf(w, "\nGame %s (%s)  |  %d players\n\n", g.DisplayDate, g.Date, len(g.Results))

	table := newTable(w)
	table.Header("#", "PLAYER", "RESULT")
	var net int64
	for i, e := range stats.GameLog(players, g) {
		table.Append(strconv.Itoa(i+1), e.PlayerName, stats.FormatCurrency(e.Cents))
		net += e.Cents
	}
	table.Footer("", "NET", stats.FormatCurrency(net))
	table.Render()
}

// PrintTrending writes the hot and cold lists for one range.
func PrintTrending(w io.Writer, r stats.TrendRange, hot, cold []stats.PeriodTotal) {
	fmt.Fprintf(w, "\nHot & cold over the last %s\n\n", r)

	table := newTable(w)
	table.Header(" ", "PLAYER", "TOTAL")
	for _, t := range hot {
		table.Append("🔥", t.PlayerName, stats.FormatCurrency(t.Total))
	}
	for _, t := range cold {
		table.Append("🧊", t.PlayerName, stats.FormatCurrency(t.Total))
	}
	if len(hot) == 0 && len(cold) == 0 {
		table.Append("—", "nobody moved", stats.FormatCurrency(0))
	}
	table.Render()
}

// PrintPlayers writes the player directory with their matching keys.
func PrintPlayers(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("NAME", "ID", "PLAYER IDS", "NICKNAMES", "LEDGER GAMES")
	for _, p := range players {
		ledger := "—"
		if p.GamesPlayedFromLedger != nil {
			ledger = strconv.Itoa(*p.GamesPlayedFromLedger)
		}
		table.Append(p.Name, p.ID, dashIfEmpty(p.PlayerIDs), dashIfEmpty(p.Nicknames), ledger)
	}
	table.Render()
}

func dashIfEmpty(vals []string) string {
	if len(vals) == 0 {
		return "—"
	}
	return strings.Join(vals, ", ")
}
