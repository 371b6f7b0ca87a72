package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/report"
	"github.com/pable/go-poker-ledger/internal/stats"
	"github.com/pable/go-poker-ledger/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the ledger. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := cmd.Context()

	cGreeting.Println("pokerledger shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("pokerledger")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "standings", "games", "funstats", "players":
			shellLedgerView(ctx, db, name)
		case "game":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: game <YYYY-MM-DD[-2]>")
				continue
			}
			shellGame(ctx, db, args[0])
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name|id>")
				continue
			}
			shellPlayer(ctx, db, strings.Join(args, " "))
		case "trending":
			r := string(stats.RangeMonth)
			if len(args) > 0 {
				r = args[0]
			}
			shellTrending(ctx, db, r)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"standings", "lifetime standings"},
		{"player <name|id>", "one player's stat card and history"},
		{"funstats", "superlatives"},
		{"trending [week|month|quarter]", "hot and cold players"},
		{"games", "list stored games"},
		{"game <YYYY-MM-DD[-2]>", "one game's results"},
		{"players", "player directory with saved ids"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

// shellLedgerView reloads the ledger each time so imports from another
// terminal show up.
func shellLedgerView(ctx context.Context, db *storage.DB, view string) {
	players, games, err := loadLedger(ctx, db)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(games) == 0 && view != "players" {
		cMuted.Println("No games stored yet.")
		return
	}
	switch view {
	case "standings":
		report.PrintStandings(os.Stdout, stats.LifetimeStandings(players, games, now()), "")
	case "games":
		report.PrintGames(os.Stdout, games, players)
	case "funstats":
		report.PrintFunStats(os.Stdout, stats.FunStats(players, games, now()))
	case "players":
		report.PrintPlayers(os.Stdout, players)
	}
}

func shellGame(ctx context.Context, db *storage.DB, date string) {
	g, err := db.GetGameByDate(ctx, date)
	if errors.Is(err, model.ErrGameNotFound) {
		cWarn.Fprintf(os.Stderr, "no game on %s\n", date)
		return
	}
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	players, err := db.ListPlayers(ctx)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintGameLog(os.Stdout, *g, players)
}

func shellPlayer(ctx context.Context, db *storage.DB, query string) {
	players, games, err := loadLedger(ctx, db)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	p, err := findPlayer(players, query)
	if err != nil {
		cWarn.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	report.PrintPlayerStats(os.Stdout, stats.CalculatePlayerStats(p, games, now()), p)
	fmt.Println()
	report.PrintPlayerHistory(os.Stdout, p.ID, games)
}

func shellTrending(ctx context.Context, db *storage.DB, rangeArg string) {
	r, err := stats.ParseTrendRange(rangeArg)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	players, games, err := loadLedger(ctx, db)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	totals := stats.PeriodTotals(players, games, r.Window())
	report.PrintTrending(os.Stdout, r, stats.HotPlayers(totals, 3), stats.ColdPlayers(totals, 3))
}
