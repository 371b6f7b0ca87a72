package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pable/go-poker-ledger/internal/model"
)

// ErrAborted is returned by Run when the prompter gives up on an import.
var ErrAborted = errors.New("import aborted")

// Choice is an operator's answer for one pending row. Set PlayerID to bind an
// existing player, NewName to create one, or Abort to stop.
type Choice struct {
	PlayerID     string
	NewName      string
	SavePlayerID bool
	Abort        bool
}

// Prompter asks the operator who a pending row belongs to.
type Prompter interface {
	ChoosePlayer(p Pending, players []model.Player) (Choice, error)
}

// Run drives a whole upload import, asking prompter about every row that
// could not be matched, then commits the game.
func (imp *Importer) Run(ctx context.Context, r io.Reader, prompter Prompter) (model.Game, error) {
	s, err := imp.Begin(ctx, r)
	if err != nil {
		return model.Game{}, err
	}
	return s.drive(ctx, prompter)
}

// RunFile is Run over the upload CSV at path.
func (imp *Importer) RunFile(ctx context.Context, path string, prompter Prompter) (model.Game, error) {
	s, err := imp.BeginFile(ctx, path)
	if err != nil {
		return model.Game{}, err
	}
	return s.drive(ctx, prompter)
}

func (s *Session) drive(ctx context.Context, prompter Prompter) (model.Game, error) {
	for {
		p, ok := s.Next()
		if !ok {
			break
		}
		choice, err := prompter.ChoosePlayer(p, s.Players())
		if err != nil {
			return model.Game{}, fmt.Errorf("choose player for %s: %w", p.Reference(), err)
		}
		switch {
		case choice.Abort:
			return model.Game{}, ErrAborted
		case choice.PlayerID != "":
			err = s.BindExisting(ctx, choice.PlayerID, choice.SavePlayerID)
		case choice.NewName != "":
			_, err = s.CreatePlayer(ctx, choice.NewName, choice.SavePlayerID)
		default:
			err = fmt.Errorf("no player chosen for %s", p.Reference())
		}
		if err != nil {
			return model.Game{}, err
		}
	}
	return s.Commit(ctx)
}
