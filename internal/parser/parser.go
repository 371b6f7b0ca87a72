package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-poker-ledger/internal/model"
)

// Wide ledger fixed columns. Every other header is a game date.
const (
	colPlayer      = "Player"
	colTotals      = "Totals"
	colGamesPlayed = "Num Games Played"
	colPerGame     = "Per Game"
)

// Upload CSV columns.
const (
	colNickname     = "player_nickname"
	colPlayerID     = "player_id"
	colSessionStart = "session_start_at"
	colSessionEnd   = "session_end_at"
	colBuyIn        = "buy_in"
	colBuyOut       = "buy_out"
	colStack        = "stack"
	colNet          = "net"
)

// secondSessionSuffix marks a header as the second session of a calendar day.
const secondSessionSuffix = " -1"

// table is a header-indexed view over raw CSV records.
type table struct {
	header  []string
	index   map[string]int
	records [][]string
}

func (t *table) get(rec []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func (t *table) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return &table{index: map[string]int{}}, nil
	}

	header := make([]string, len(all[0]))
	index := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		header[i] = h
		if _, dup := index[h]; !dup && h != "" {
			index[h] = i
		}
	}
	return &table{header: header, index: index, records: all[1:]}, nil
}

// ParseUpload reads the per-session upload CSV. Rows come back in file order;
// rows with neither a nickname nor a player id are dropped.
func ParseUpload(r io.Reader) ([]model.UploadRow, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(t.records) > 0 && !t.has(colNickname) && !t.has(colPlayerID) {
		return nil, fmt.Errorf("upload csv: missing %s/%s columns", colNickname, colPlayerID)
	}

	var rows []model.UploadRow
	for _, rec := range t.records {
		row := model.UploadRow{
			PlayerNickname: strings.TrimSpace(t.get(rec, colNickname)),
			PlayerID:       strings.TrimSpace(t.get(rec, colPlayerID)),
			SessionStartAt: strings.TrimSpace(t.get(rec, colSessionStart)),
			SessionEndAt:   strings.TrimSpace(t.get(rec, colSessionEnd)),
			BuyIn:          t.get(rec, colBuyIn),
			BuyOut:         t.get(rec, colBuyOut),
			Stack:          t.get(rec, colStack),
			Net:            t.get(rec, colNet),
		}
		if row.PlayerNickname == "" && row.PlayerID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseLedger reads the wide historical ledger: one row per player, one
// column per game date.
func ParseLedger(r io.Reader) (*model.LedgerSheet, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(t.records) > 0 && !t.has(colPlayer) {
		return nil, fmt.Errorf("ledger csv: missing %q column", colPlayer)
	}

	sheet := &model.LedgerSheet{}
	for _, h := range t.header {
		switch h {
		case "", colPlayer, colTotals, colGamesPlayed, colPerGame:
			continue
		}
		sheet.DateColumns = append(sheet.DateColumns, h)
	}

	for _, rec := range t.records {
		name := strings.TrimSpace(t.get(rec, colPlayer))
		if name == "" {
			continue
		}
		row := model.LedgerRow{
			Player:  name,
			Totals:  strings.TrimSpace(t.get(rec, colTotals)),
			PerGame: strings.TrimSpace(t.get(rec, colPerGame)),
			Cells:   make(map[string]string, len(sheet.DateColumns)),
		}
		if n, err := strconv.Atoi(strings.TrimSpace(t.get(rec, colGamesPlayed))); err == nil {
			row.GamesPlayed = &n
		}
		for _, col := range sheet.DateColumns {
			if v := strings.TrimSpace(t.get(rec, col)); v != "" {
				row.Cells[col] = v
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// ParseUploadFile opens path and parses it as an upload CSV.
func ParseUploadFile(path string) ([]model.UploadRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ParseUpload(f)
}

// ParseLedgerFile opens path and parses it as a wide ledger.
func ParseLedgerFile(path string) (*model.LedgerSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ParseLedger(f)
}

// ParseCents parses a signed integer cent amount. Anything unparseable is
// worth nothing.
func ParseCents(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseCentsStrict is ParseCents but reports whether s held a number at all.
func ParseCentsStrict(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var errBadDateHeader = errors.New("bad date header")

// InferDate turns a "M/D" (or "M/D -1") ledger header into "YYYY-MM-DD".
// November and December belong to baseYear, every other month to the year after.
func InferDate(header string, baseYear int) (string, error) {
	clean, _, _ := strings.Cut(strings.TrimSpace(header), " ")
	ms, ds, ok := strings.Cut(clean, "/")
	if !ok {
		return "", fmt.Errorf("%w: %q", errBadDateHeader, header)
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errBadDateHeader, header)
	}
	day, err := strconv.Atoi(ds)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errBadDateHeader, header)
	}

	year := baseYear + 1
	if month >= 11 {
		year = baseYear
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if month < 1 || month > 12 || d.Day() != day {
		return "", fmt.Errorf("%w: %q", errBadDateHeader, header)
	}
	return d.Format("2006-01-02"), nil
}

// IsSecondSession reports whether a ledger header carries the " -1" marker.
func IsSecondSession(header string) bool {
	return strings.Contains(header, secondSessionSuffix)
}

// DisplayDate converts "2026-01-25" (or "2026-01-25-2") to "1/25".
func DisplayDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) < 3 {
		return date
	}
	m, err1 := strconv.Atoi(parts[1])
	d, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return date
	}
	return fmt.Sprintf("%d/%d", m, d)
}

// DateFromTimestamp returns the date portion of an ISO-8601 timestamp,
// e.g. "2026-01-25T04:58:41.360Z" -> "2026-01-25".
func DateFromTimestamp(ts string) string {
	date, _, _ := strings.Cut(strings.TrimSpace(ts), "T")
	return date
}

// ParseGameDate parses a stored game date, "YYYY-MM-DD" with an optional
// "-2" second-session suffix.
func ParseGameDate(date string) (time.Time, error) {
	day := strings.TrimSuffix(date, "-2")
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errBadDateHeader, date)
	}
	return t, nil
}
