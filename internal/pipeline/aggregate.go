package pipeline

import (
	"sort"

	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
)

// TeamField selects which side of a player row a team aggregate groups on.
type TeamField int

const (
	// ByTeam groups player rows under their own team.
	ByTeam TeamField = iota
	// ByOpponent groups player rows under the opposing team, for an
	// opponent-side view of the same games.
	ByOpponent
)

// TeamStats is one team's summed stat line for one game.
type TeamStats struct {
	GameID  string
	Season  int
	Week    int
	Gameday string
	Team    string
	Stats   nflverse.CountingStats
}

type gameTeamKey struct {
	gameID string
	team   string
}

// AggregateTeamStats collapses player rows into one row per (game, team),
// summing the nine counting stats. Rows without a matched game carry no
// game id and are skipped; they cannot key a team-game. Output is ordered
// by (game_id, team).
func AggregateTeamStats(rows []PlayerGameRow, field TeamField) []TeamStats {
	groups := make(map[gameTeamKey]*TeamStats)
	var order []gameTeamKey
	for _, row := range rows {
		if row.GameID == "" {
			continue
		}
		team := row.Team
		if field == ByOpponent {
			team = row.Opponent
		}
		k := gameTeamKey{gameID: row.GameID, team: team}
		g, ok := groups[k]
		if !ok {
			g = &TeamStats{
				GameID:  row.GameID,
				Season:  row.Season,
				Week:    row.Week,
				Gameday: row.Gameday,
				Team:    team,
			}
			groups[k] = g
			order = append(order, k)
		}
		g.Stats.Add(row.Stats)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].gameID != order[j].gameID {
			return order[i].gameID < order[j].gameID
		}
		return order[i].team < order[j].team
	})

	out := make([]TeamStats, len(order))
	for i, k := range order {
		out[i] = *groups[k]
	}
	return out
}

// IsoTopPassers keeps one row per (game, team): the one with the most
// attempts. The sort is stable, so among tied attempt counts the
// earliest-encountered row wins. This is an approximation of the starting
// quarterback, not ground truth, and callers must treat it as such.
func IsoTopPassers(rows []PlayerGameRow) []PlayerGameRow {
	sorted := make([]PlayerGameRow, 0, len(rows))
	for _, row := range rows {
		if row.GameID == "" {
			continue
		}
		sorted = append(sorted, row)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].GameID != sorted[j].GameID {
			return sorted[i].GameID < sorted[j].GameID
		}
		return sorted[i].Stats.Attempts > sorted[j].Stats.Attempts
	})

	seen := make(map[gameTeamKey]bool)
	out := make([]PlayerGameRow, 0, len(sorted))
	for _, row := range sorted {
		k := gameTeamKey{gameID: row.GameID, team: row.Team}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out
}

// BuildModelRows formats the isolated top passers into the player-level
// output, attaching start numbers and the player-grain VALUE and dropping
// the raw counting stats.
//
// The start number is a running count of the player's appearances in the
// already-filtered top-passer set, in encounter order, starting at 1. It
// undercounts starts that predate the dataset's coverage; that limitation
// is inherited from the source data and deliberately left as-is.
func BuildModelRows(topPassers []PlayerGameRow) []ModelRow {
	starts := make(map[string]int)
	out := make([]ModelRow, len(topPassers))
	for i, row := range topPassers {
		starts[row.PlayerID]++
		out[i] = ModelRow{
			GameID:            row.GameID,
			Season:            row.Season,
			Week:              row.Week,
			Gameday:           row.Gameday,
			Team:              row.Team,
			Opponent:          row.Opponent,
			PlayerID:          row.PlayerID,
			PlayerName:        row.PlayerName,
			PlayerDisplayName: row.PlayerDisplayName,
			StartNumber:       starts[row.PlayerID],
			RookieYear:        row.RookieYear,
			EntryYear:         row.EntryYear,
			DraftNumber:       row.DraftNumber,
			PlayerValue:       Value(row.Stats),
		}
	}
	return out
}

// BuildTeamModel computes the team-grain VALUE over the aggregates and
// drops the raw counting stats.
func BuildTeamModel(aggregates []TeamStats) []TeamModelRow {
	out := make([]TeamModelRow, len(aggregates))
	for i, agg := range aggregates {
		out[i] = TeamModelRow{
			GameID:    agg.GameID,
			Season:    agg.Season,
			Week:      agg.Week,
			Gameday:   agg.Gameday,
			Team:      agg.Team,
			TeamValue: Value(agg.Stats),
		}
	}
	return out
}

// JoinTeamValue attaches the team-grain VALUE onto each model row by
// (game_id, team). Rows without a matching team row keep a nil TeamValue.
func JoinTeamValue(model []ModelRow, teamModel []TeamModelRow) {
	byKey := make(map[gameTeamKey]float64, len(teamModel))
	for _, tr := range teamModel {
		byKey[gameTeamKey{gameID: tr.GameID, team: tr.Team}] = tr.TeamValue
	}
	for i := range model {
		if v, ok := byKey[gameTeamKey{gameID: model[i].GameID, team: model[i].Team}]; ok {
			value := v
			model[i].TeamValue = &value
		}
	}
}
