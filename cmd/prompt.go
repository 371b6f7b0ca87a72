package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/pable/go-poker-ledger/internal/importer"
	"github.com/pable/go-poker-ledger/internal/model"
)

const (
	optCreate = "+ Create new player"
	optAbort  = "x Abort import"
)

// ptermPrompter asks about unmatched upload rows on the terminal.
type ptermPrompter struct{}

func (ptermPrompter) ChoosePlayer(p importer.Pending, players []model.Player) (importer.Choice, error) {
	ref := p.Reference()
	pterm.Warning.Printfln("Unmatched row %d: nickname %q, player_id %q, net %s",
		p.Index+1, ref.Nickname, ref.PlayerID, p.Row.Net)

	options, byLabel := playerOptions(players)
	options = append(options, optCreate, optAbort)

	picked, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Who is this?").
		WithOptions(options).
		WithMaxHeight(15).
		Show()
	if err != nil {
		return importer.Choice{}, err
	}

	var choice importer.Choice
	switch picked {
	case optAbort:
		return importer.Choice{Abort: true}, nil
	case optCreate:
		name, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText("New player name").
			WithDefaultValue(strings.TrimSpace(ref.Nickname)).
			Show()
		if err != nil {
			return importer.Choice{}, err
		}
		if strings.TrimSpace(name) == "" {
			return importer.Choice{Abort: true}, nil
		}
		choice.NewName = name
	default:
		choice.PlayerID = byLabel[picked]
	}

	if ref.PlayerID != "" {
		save, err := pterm.DefaultInteractiveConfirm.
			WithDefaultText(fmt.Sprintf("Remember player_id %s for future imports?", ref.PlayerID)).
			WithDefaultValue(true).
			Show()
		if err != nil {
			return importer.Choice{}, err
		}
		choice.SavePlayerID = save
	}
	return choice, nil
}

// playerOptions labels players for the select list. Names are not unique, so
// duplicates carry a short id.
func playerOptions(players []model.Player) ([]string, map[string]string) {
	seen := make(map[string]int, len(players))
	for _, p := range players {
		seen[p.Name]++
	}
	options := make([]string, 0, len(players)+2)
	byLabel := make(map[string]string, len(players))
	for _, p := range players {
		label := p.Name
		if seen[p.Name] > 1 {
			label = fmt.Sprintf("%s (%s)", p.Name, shortID(p.ID))
		}
		options = append(options, label)
		byLabel[label] = p.ID
	}
	return options, byLabel
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
