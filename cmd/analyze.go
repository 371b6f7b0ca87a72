package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pable/go-poker-ledger/internal/model"
	"github.com/pable/go-poker-ledger/internal/stats"
)

const analyzeSystemPrompt = `You are the statistician of a recurring home poker game. You are given the
group's ledger statistics as JSON and a question from one of the players.

Rules:
- Answer ONLY from the data provided. Never invent results or games.
- Always cite specific numbers (dollars, game counts, dates) when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Keep it short and friendly; a little table talk is fine.

Field glossary:
- Amounts are US dollars. Positive is money won, negative money lost.
- total: lifetime net. avg: total divided by games played.
- win_pct: share of games finished up.
- stddev: population standard deviation of per-game results.
- form: "hot" if the last 5 games sum to more than +$10, "cold" to less than -$10.
- month_delta: this calendar month's net minus last month's.
- fun_stats: group superlatives, already computed.
- recent_games: newest first, per-player results of the latest games. A name
  shared by several players carries a short id in brackets.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeRecent int
	analyzeRender bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "Ask an AI about the ledger (requires ANTHROPIC_API_KEY)",
	Example: `  pokerledger analyze "who has improved the most since January?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeRecent, "recent", 10, "number of recent games included in full")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "wait for the full answer and render it as markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeRecent < 0 {
		return fmt.Errorf("--recent must not be negative")
	}
	question := strings.Join(args, " ")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	players, games, err := loadLedger(cmd.Context(), db)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return fmt.Errorf("no games stored yet")
	}

	contextJSON, err := buildLedgerContext(players, games, analyzeRecent)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question, analyzeRender)
}

// buildLedgerContext serialises standings, fun stats and recent games into
// compact JSON with amounts in dollars.
func buildLedgerContext(players []model.Player, games []model.Game, recent int) (string, error) {
	type standingEntry struct {
		Player     string  `json:"player"`
		Total      float64 `json:"total"`
		Games      int     `json:"games"`
		Avg        float64 `json:"avg"`
		WinPct     float64 `json:"win_pct"`
		BestGame   float64 `json:"best_game"`
		WorstGame  float64 `json:"worst_game"`
		StdDev     float64 `json:"stddev"`
		Form       string  `json:"form"`
		MonthDelta float64 `json:"month_delta"`
	}
	type funEntry struct {
		Award  string `json:"award"`
		Player string `json:"player"`
		Value  string `json:"value"`
	}
	type gameEntry struct {
		Date    string             `json:"date"`
		Results map[string]float64 `json:"results"`
	}

	asOf := now()
	standings := make([]standingEntry, 0, len(players))
	for _, s := range stats.LifetimeStandings(players, games, asOf) {
		standings = append(standings, standingEntry{
			Player:     s.PlayerName,
			Total:      dollars(float64(s.TotalWinnings)),
			Games:      s.GamesPlayed,
			Avg:        dollars(s.AveragePerGame),
			WinPct:     round2(s.WinPercentage),
			BestGame:   dollars(float64(s.BiggestWin)),
			WorstGame:  dollars(float64(s.BiggestLoss)),
			StdDev:     dollars(s.StandardDeviation),
			Form:       string(s.RecentTrend),
			MonthDelta: dollars(float64(s.MonthlyTrend)),
		})
	}

	funStats := stats.FunStats(players, games, asOf)
	fun := make([]funEntry, 0, len(funStats))
	for _, f := range funStats {
		fun = append(fun, funEntry{Award: f.Title, Player: f.PlayerName, Value: f.Value})
	}

	recent = max(0, min(recent, len(games)))
	latest := make([]gameEntry, 0, recent)
	for _, g := range games[:recent] {
		log := stats.GameLog(players, g)
		e := gameEntry{Date: g.Date, Results: make(map[string]float64, len(log))}
		for label, r := range resultLabels(log) {
			e.Results[label] = dollars(float64(r.Cents))
		}
		latest = append(latest, e)
	}

	doc := map[string]interface{}{
		"as_of":        asOf.Format("2006-01-02"),
		"games_stored": len(games),
		"first_game":   games[len(games)-1].Date,
		"last_game":    games[0].Date,
		"standings":    standings,
		"fun_stats":    fun,
		"recent_games": latest,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// resultLabels keys a game's results by player name, adding a short id to
// names that occur more than once (two players sharing a name, or several
// unknown ids).
func resultLabels(log []stats.GameLogEntry) map[string]stats.GameLogEntry {
	seen := make(map[string]int, len(log))
	for _, r := range log {
		seen[r.PlayerName]++
	}
	out := make(map[string]stats.GameLogEntry, len(log))
	for _, r := range log {
		label := r.PlayerName
		if seen[label] > 1 {
			label = fmt.Sprintf("%s (%s)", r.PlayerName, shortID(r.PlayerID))
		}
		out[label] = r
	}
	return out
}

func dollars(cents float64) float64 { return round2(cents / 100) }

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// callAnthropic streams a response from the Anthropic API and prints it to
// stdout. With render set the answer is buffered and printed once through a
// markdown renderer instead.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string, render bool) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)
	logger.Debug("calling anthropic", "model", modelID, "context_bytes", len(dataJSON))

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	var answer strings.Builder
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				text := delta.Delta.AsTextDelta().Text
				if render {
					answer.WriteString(text)
				} else {
					fmt.Fprint(os.Stdout, text)
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}

	if render {
		out, err := renderMarkdown(answer.String(), glamour.WithAutoStyle())
		if err != nil {
			return fmt.Errorf("render answer: %w", err)
		}
		fmt.Fprint(os.Stdout, out)
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")
	return nil
}

// renderMarkdown renders md wrapped at 80 columns. style picks the
// glamour style; auto style falls back to plain text off a terminal.
func renderMarkdown(md string, style glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
