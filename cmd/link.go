package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	linkIDs   []string
	linkNicks []string
)

var linkCmd = &cobra.Command{
	Use:   "link <name|id>",
	Short: "Attach player_ids or nicknames to a player",
	Long: `Add external player_ids and nicknames to an existing player so future
imports match them automatically. Existing entries are kept.`,
	Example: `  pokerledger link Garrett --id Gx6CTDK1-V
  pokerledger link Hoot --nick hooter --nick hoot`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringSliceVar(&linkIDs, "id", nil, "player_id to add (repeatable)")
	linkCmd.Flags().StringSliceVar(&linkNicks, "nick", nil, "nickname to add (repeatable)")
}

func runLink(cmd *cobra.Command, args []string) error {
	if len(linkIDs) == 0 && len(linkNicks) == 0 {
		return fmt.Errorf("nothing to link: pass --id and/or --nick")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	p, err := findPlayer(players, args[0])
	if err != nil {
		return err
	}

	updated := &p
	if len(linkIDs) > 0 {
		if updated, err = db.UpdatePlayerIDs(ctx, p.ID, linkIDs...); err != nil {
			return fmt.Errorf("update player ids: %w", err)
		}
	}
	if len(linkNicks) > 0 {
		if updated, err = db.UpdateNicknames(ctx, p.ID, linkNicks...); err != nil {
			return fmt.Errorf("update nicknames: %w", err)
		}
	}
	fmt.Fprintf(os.Stdout, "%s: ids %v, nicknames %v\n", updated.Name, updated.PlayerIDs, updated.Nicknames)
	return nil
}
