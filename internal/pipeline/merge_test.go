package pipeline

import (
	"testing"

	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
)

func qbStat(playerID, team string, season, week int, attempts float64) nflverse.PlayerGameStat {
	return nflverse.PlayerGameStat{
		PlayerID: playerID,
		Position: "QB",
		Team:     team,
		Season:   season,
		Week:     week,
		Stats:    nflverse.CountingStats{Attempts: attempts},
	}
}

func TestMergeBioPreservesRowCount(t *testing.T) {
	stats := []nflverse.PlayerGameStat{
		qbStat("00-0001", "KC", 2023, 1, 30),
		qbStat("00-0002", "BUF", 2023, 1, 28),
		qbStat("00-0001", "KC", 2023, 2, 35),
	}
	draftNum := 10
	bios := []nflverse.PlayerBio{
		{PlayerID: "00-0001", FirstName: "Patrick", LastName: "Mahomes", DraftNumber: &draftNum},
	}

	rows := MergeBio(stats, bios)

	if len(rows) != len(stats) {
		t.Fatalf("row count changed: got %d, want %d", len(rows), len(stats))
	}
	if rows[0].FirstName != "Patrick" || *rows[0].DraftNumber != 10 {
		t.Errorf("bio fields not joined: %+v", rows[0])
	}
	// unmatched player keeps null bio fields, not a dropped row
	if rows[1].FirstName != "" || rows[1].DraftNumber != nil {
		t.Errorf("unmatched player should have empty bio: %+v", rows[1])
	}
}

func TestMergeBioAgainstEmptyBios(t *testing.T) {
	stats := []nflverse.PlayerGameStat{
		qbStat("00-0001", "KC", 2023, 1, 30),
		qbStat("00-0002", "BUF", 2023, 1, 28),
	}

	rows := MergeBio(stats, nil)
	if len(rows) != 2 {
		t.Fatalf("row count changed against empty bios: got %d", len(rows))
	}
}

func TestFlattenGamesTwoPerspectives(t *testing.T) {
	games := []nflverse.GameRecord{{
		GameID:     "2023_01_OAK_KC",
		Gameday:    "2023-09-07",
		Season:     2023,
		Week:       1,
		HomeTeam:   "KC",
		AwayTeam:   "OAK",
		HomeQBID:   "00-0001",
		HomeQBName: "Patrick Mahomes",
		AwayQBID:   "00-0003",
		AwayQBName: "Derek Carr",
	}}

	persp := FlattenGames(games)
	if len(persp) != 2 {
		t.Fatalf("got %d perspective rows, want 2", len(persp))
	}

	home, away := persp[0], persp[1]
	if home.Team != "KC" || home.Opponent != "OAK" || home.StarterID != "00-0001" {
		t.Errorf("home perspective wrong: %+v", home)
	}
	if home.OpponentStarterName != "Derek Carr" {
		t.Errorf("home opponent starter wrong: %+v", home)
	}
	if away.Team != "OAK" || away.Opponent != "KC" || away.StarterID != "00-0003" {
		t.Errorf("away perspective wrong: %+v", away)
	}
	if away.OpponentStarterName != "Patrick Mahomes" {
		t.Errorf("away opponent starter wrong: %+v", away)
	}
}

func TestMergeGamesPreservesRowCount(t *testing.T) {
	rows := MergeBio([]nflverse.PlayerGameStat{
		qbStat("00-0001", "KC", 2023, 1, 30),
		qbStat("00-0009", "ZZZ", 2023, 1, 12), // no schedule match
	}, nil)

	persp := FlattenGames([]nflverse.GameRecord{{
		GameID:   "2023_01_OAK_KC",
		Gameday:  "2023-09-07",
		Season:   2023,
		Week:     1,
		HomeTeam: "KC",
		AwayTeam: "OAK",
	}})

	merged := MergeGames(rows, persp)

	if len(merged) != len(rows) {
		t.Fatalf("row count changed: got %d, want %d", len(merged), len(rows))
	}
	if merged[0].GameID != "2023_01_OAK_KC" || merged[0].Opponent != "OAK" {
		t.Errorf("game context not joined: %+v", merged[0])
	}
	// unmatched rows keep empty game fields, they are not dropped
	if merged[1].GameID != "" || merged[1].Opponent != "" {
		t.Errorf("unmatched row should keep empty game fields: %+v", merged[1])
	}
}
