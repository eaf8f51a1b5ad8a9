package pipeline

import (
	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
)

// MergeBio left-joins stat rows against biographical records by player id.
// Every stat row survives; players without a bio record keep nil/empty bio
// fields. Input order is preserved.
func MergeBio(stats []nflverse.PlayerGameStat, bios []nflverse.PlayerBio) []PlayerGameRow {
	byID := make(map[string]nflverse.PlayerBio, len(bios))
	for _, b := range bios {
		if _, ok := byID[b.PlayerID]; !ok {
			byID[b.PlayerID] = b
		}
	}

	out := make([]PlayerGameRow, len(stats))
	for i, st := range stats {
		row := PlayerGameRow{PlayerGameStat: st}
		if b, ok := byID[st.PlayerID]; ok {
			row.FirstName = b.FirstName
			row.LastName = b.LastName
			row.BirthDate = b.BirthDate
			row.RookieYear = b.RookieYear
			row.EntryYear = b.EntryYear
			row.DraftNumber = b.DraftNumber
		}
		out[i] = row
	}
	return out
}

// FlattenGames reshapes one row per game into two perspective rows, one per
// participating team, under the unified team/opponent schema.
func FlattenGames(games []nflverse.GameRecord) []TeamPerspective {
	out := make([]TeamPerspective, 0, 2*len(games))
	for _, g := range games {
		out = append(out, TeamPerspective{
			GameID:              g.GameID,
			Gameday:             g.Gameday,
			Season:              g.Season,
			Week:                g.Week,
			Team:                g.HomeTeam,
			Opponent:            g.AwayTeam,
			StarterID:           g.HomeQBID,
			StarterName:         g.HomeQBName,
			OpponentStarterID:   g.AwayQBID,
			OpponentStarterName: g.AwayQBName,
		}, TeamPerspective{
			GameID:              g.GameID,
			Gameday:             g.Gameday,
			Season:              g.Season,
			Week:                g.Week,
			Team:                g.AwayTeam,
			Opponent:            g.HomeTeam,
			StarterID:           g.AwayQBID,
			StarterName:         g.AwayQBName,
			OpponentStarterID:   g.HomeQBID,
			OpponentStarterName: g.HomeQBName,
		})
	}
	return out
}

type teamWeekKey struct {
	season int
	week   int
	team   string
}

// MergeGames left-joins game context onto player rows by (season, week,
// team). Every player row survives; rows with no schedule match keep empty
// game fields and are later excluded from the team-game aggregates, which
// cannot key them.
func MergeGames(rows []PlayerGameRow, perspectives []TeamPerspective) []PlayerGameRow {
	byKey := make(map[teamWeekKey]TeamPerspective, len(perspectives))
	for _, p := range perspectives {
		k := teamWeekKey{season: p.Season, week: p.Week, team: p.Team}
		if _, ok := byKey[k]; !ok {
			byKey[k] = p
		}
	}

	out := make([]PlayerGameRow, len(rows))
	for i, row := range rows {
		if p, ok := byKey[teamWeekKey{season: row.Season, week: row.Week, team: row.Team}]; ok {
			row.GameID = p.GameID
			row.Gameday = p.Gameday
			row.Opponent = p.Opponent
			row.StarterID = p.StarterID
			row.StarterName = p.StarterName
			row.OpponentStarterID = p.OpponentStarterID
			row.OpponentStarterName = p.OpponentStarterName
		}
		out[i] = row
	}
	return out
}
