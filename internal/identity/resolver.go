// Package identity maps external player references from imported sessions
// onto players already in the ledger.
package identity

import (
	"fmt"
	"strings"

	"github.com/pable/go-poker-ledger/internal/model"
)

// KnownIDs maps external player ids to display names. It is configuration,
// consulted before anything learned from the data.
type KnownIDs map[string]string

// IDFor returns the external id configured for a display name, if any.
func (k KnownIDs) IDFor(name string) (string, bool) {
	// Deterministic when two ids map to the same name: lowest id wins.
	var found string
	for id, n := range k {
		if n == name && (found == "" || id < found) {
			found = id
		}
	}
	return found, found != ""
}

// Reference is what an import row knows about its player.
type Reference struct {
	PlayerID string
	Nickname string
}

func (r Reference) String() string {
	return fmt.Sprintf("%s (%s)", r.Nickname, r.PlayerID)
}

// MatchRule says which lookup resolved a reference.
type MatchRule int

const (
	MatchNone MatchRule = iota
	MatchKnownID
	MatchPlayerID
	MatchNickname
)

func (m MatchRule) String() string {
	switch m {
	case MatchKnownID:
		return "known-id"
	case MatchPlayerID:
		return "player-id"
	case MatchNickname:
		return "nickname"
	default:
		return "none"
	}
}

// Resolver resolves references against a snapshot of the player list.
type Resolver struct {
	known   KnownIDs
	players []model.Player
}

// New returns a Resolver over players. The slice is not copied; call Refresh
// after the player list changes.
func New(known KnownIDs, players []model.Player) *Resolver {
	return &Resolver{known: known, players: players}
}

// Refresh replaces the player snapshot.
func (r *Resolver) Refresh(players []model.Player) {
	r.players = players
}

// Players returns the current snapshot.
func (r *Resolver) Players() []model.Player {
	return r.players
}

// Resolve returns the player a reference belongs to, or an error wrapping
// model.ErrPlayerNotFound.
func (r *Resolver) Resolve(ref Reference) (*model.Player, error) {
	p, _, err := r.ResolveStep(ref)
	return p, err
}

// ResolveStep is Resolve plus the rule that matched. Rules are tried in order:
// configured known id, stored external ids, then nickname.
func (r *Resolver) ResolveStep(ref Reference) (*model.Player, MatchRule, error) {
	if ref.PlayerID != "" {
		// A known id naming a player that does not exist falls through.
		if name, ok := r.known[ref.PlayerID]; ok {
			if p := r.byName(name); p != nil {
				return p, MatchKnownID, nil
			}
		}
		if p := r.byPlayerID(ref.PlayerID); p != nil {
			return p, MatchPlayerID, nil
		}
	}
	if strings.TrimSpace(ref.Nickname) != "" {
		if p := r.byNickname(ref.Nickname); p != nil {
			return p, MatchNickname, nil
		}
	}
	return nil, MatchNone, fmt.Errorf("resolve %s: %w", ref, model.ErrPlayerNotFound)
}

func (r *Resolver) byName(name string) *model.Player {
	for i := range r.players {
		if r.players[i].Name == name {
			return &r.players[i]
		}
	}
	return nil
}

func (r *Resolver) byPlayerID(id string) *model.Player {
	for i := range r.players {
		if r.players[i].HasPlayerID(id) {
			return &r.players[i]
		}
	}
	return nil
}

func (r *Resolver) byNickname(nick string) *model.Player {
	for i := range r.players {
		if r.players[i].HasNickname(nick) {
			return &r.players[i]
		}
	}
	return nil
}
