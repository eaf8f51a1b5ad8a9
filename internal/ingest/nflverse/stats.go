package nflverse

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/qbvalue/internal/teams"
)

// QBStats downloads the weekly player stats snapshot and returns the
// quarterback rows with team codes normalized to canonical abbreviations.
func (c *Client) QBStats(ctx context.Context) ([]PlayerGameStat, error) {
	t, err := c.fetchTable(ctx, c.statsURL)
	if err != nil {
		return nil, err
	}

	if err := t.Require(
		"player_id", "player_name", "player_display_name", "position",
		"recent_team", "season", "week",
		"completions", "attempts", "passing_yards", "passing_tds",
		"interceptions", "sacks", "carries", "rushing_yards", "rushing_tds",
	); err != nil {
		return nil, fmt.Errorf("player stats: %w", err)
	}

	var out []PlayerGameStat
	for _, row := range t.Rows() {
		// only quarterbacks are relevant to the value model
		if t.Str(row, "position") != "QB" {
			continue
		}
		out = append(out, PlayerGameStat{
			PlayerID:          t.Str(row, "player_id"),
			PlayerName:        t.Str(row, "player_name"),
			PlayerDisplayName: t.Str(row, "player_display_name"),
			Position:          t.Str(row, "position"),
			// the stats file only carries the most recent abbreviation
			Team:   teams.Normalize(t.Str(row, "recent_team"), teams.PlayerStats),
			Season: t.Int(row, "season"),
			Week:   t.Int(row, "week"),
			Stats: CountingStats{
				Completions:   t.Float(row, "completions"),
				Attempts:      t.Float(row, "attempts"),
				PassingYards:  t.Float(row, "passing_yards"),
				PassingTDs:    t.Float(row, "passing_tds"),
				Interceptions: t.Float(row, "interceptions"),
				Sacks:         t.Float(row, "sacks"),
				Carries:       t.Float(row, "carries"),
				RushingYards:  t.Float(row, "rushing_yards"),
				RushingTDs:    t.Float(row, "rushing_tds"),
			},
		})
	}

	log.Printf("[nflverse] loaded %d QB stat rows", len(out))
	return out, nil
}
