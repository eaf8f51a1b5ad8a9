package nflverse

import (
	"context"
	"fmt"
	"log"
)

// Players downloads the player biographical snapshot. The source can carry
// duplicate gsis_ids; the first occurrence wins so the working set holds at
// most one row per player.
func (c *Client) Players(ctx context.Context) ([]PlayerBio, error) {
	t, err := c.fetchTable(ctx, c.playersURL)
	if err != nil {
		return nil, err
	}

	if err := t.Require(
		"gsis_id", "first_name", "last_name",
		"birth_date", "rookie_year", "entry_year", "draft_number",
	); err != nil {
		return nil, fmt.Errorf("player info: %w", err)
	}

	seen := make(map[string]bool, len(t.Rows()))
	var out []PlayerBio
	for _, row := range t.Rows() {
		id := t.Str(row, "gsis_id")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, PlayerBio{
			PlayerID:    id,
			FirstName:   t.Str(row, "first_name"),
			LastName:    t.Str(row, "last_name"),
			BirthDate:   t.StrPtr(row, "birth_date"),
			RookieYear:  t.IntPtr(row, "rookie_year"),
			EntryYear:   t.IntPtr(row, "entry_year"),
			DraftNumber: t.IntPtr(row, "draft_number"),
		})
	}

	log.Printf("[nflverse] loaded %d player bio rows", len(out))
	return out, nil
}
