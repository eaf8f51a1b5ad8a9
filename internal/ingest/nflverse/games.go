package nflverse

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/qbvalue/internal/teams"
)

// Games downloads the schedule snapshot. Home and away codes are normalized
// before the game id is rebuilt; the raw file's own game_id is discarded
// because it may embed pre-relocation codes that would never match the
// player-side join keys.
func (c *Client) Games(ctx context.Context) ([]GameRecord, error) {
	t, err := c.fetchTable(ctx, c.gamesURL)
	if err != nil {
		return nil, err
	}

	if err := t.Require(
		"gameday", "season", "week", "home_team", "away_team",
		"home_qb_id", "home_qb_name", "away_qb_id", "away_qb_name",
	); err != nil {
		return nil, fmt.Errorf("game data: %w", err)
	}

	out := make([]GameRecord, 0, len(t.Rows()))
	for _, row := range t.Rows() {
		g := GameRecord{
			Gameday:    t.Str(row, "gameday"),
			Season:     t.Int(row, "season"),
			Week:       t.Int(row, "week"),
			HomeTeam:   teams.Normalize(t.Str(row, "home_team"), teams.Schedule),
			AwayTeam:   teams.Normalize(t.Str(row, "away_team"), teams.Schedule),
			HomeQBID:   t.Str(row, "home_qb_id"),
			HomeQBName: t.Str(row, "home_qb_name"),
			AwayQBID:   t.Str(row, "away_qb_id"),
			AwayQBName: t.Str(row, "away_qb_name"),
		}
		g.GameID = GameID(g.Season, g.Week, g.AwayTeam, g.HomeTeam)
		out = append(out, g)
	}

	log.Printf("[nflverse] loaded %d game rows", len(out))
	return out, nil
}

// GameID builds the canonical game identifier from normalized team codes.
// Every downstream join keys on this, never on the raw source identifier.
func GameID(season, week int, awayTeam, homeTeam string) string {
	return fmt.Sprintf("%d_%02d_%s_%s", season, week, awayTeam, homeTeam)
}
