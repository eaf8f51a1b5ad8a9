package pipeline

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/fortuna/qbvalue/internal/draft"
	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
)

type fakeSources struct {
	stats []nflverse.PlayerGameStat
	bios  []nflverse.PlayerBio
	games []nflverse.GameRecord
	fixes []draft.Fix

	statsErr error
	biosErr  error
	gamesErr error
	fixesErr error
}

func (f *fakeSources) QBStats(context.Context) ([]nflverse.PlayerGameStat, error) {
	return f.stats, f.statsErr
}

func (f *fakeSources) Players(context.Context) ([]nflverse.PlayerBio, error) {
	return f.bios, f.biosErr
}

func (f *fakeSources) Games(context.Context) ([]nflverse.GameRecord, error) {
	return f.games, f.gamesErr
}

func (f *fakeSources) MissingDraftData() ([]draft.Fix, error) {
	return f.fixes, f.fixesErr
}

func (f *fakeSources) pipeline() *Pipeline {
	return New(Sources{Stats: f, Players: f, Games: f, Draft: f})
}

func fixtureSources() *fakeSources {
	draftNum := 7
	return &fakeSources{
		stats: []nflverse.PlayerGameStat{
			qbStat("starter-kc", "KC", 2023, 1, 30),
			qbStat("backup-kc", "KC", 2023, 1, 5),
			qbStat("starter-oak", "OAK", 2023, 1, 25),
		},
		bios: []nflverse.PlayerBio{
			{PlayerID: "starter-kc", FirstName: "Patrick", LastName: "Mahomes"},
			{PlayerID: "starter-oak", FirstName: "Derek", LastName: "Carr"},
		},
		games: []nflverse.GameRecord{{
			GameID:   "2023_01_OAK_KC",
			Gameday:  "2023-09-07",
			Season:   2023,
			Week:     1,
			HomeTeam: "KC",
			AwayTeam: "OAK",
		}},
		fixes: []draft.Fix{
			{PlayerID: "starter-kc", DraftNumber: &draftNum},
		},
	}
}

func TestRunBuildsSnapshot(t *testing.T) {
	snap, err := fixtureSources().pipeline().Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(snap.Model) != 2 {
		t.Fatalf("got %d model rows, want one top passer per team", len(snap.Model))
	}
	if len(snap.TeamModel) != 2 {
		t.Fatalf("got %d team rows, want 2", len(snap.TeamModel))
	}
	if len(snap.Games) != 1 {
		t.Fatalf("got %d games, want 1", len(snap.Games))
	}

	byTeam := map[string]ModelRow{}
	for _, m := range snap.Model {
		byTeam[m.Team] = m
	}

	kc := byTeam["KC"]
	if kc.PlayerID != "starter-kc" {
		t.Errorf("KC top passer = %q, want starter-kc", kc.PlayerID)
	}
	if kc.StartNumber != 1 {
		t.Errorf("start_number = %d, want 1", kc.StartNumber)
	}
	// backfilled through the curated table
	if kc.DraftNumber == nil || *kc.DraftNumber != 7 {
		t.Errorf("draft_number should be backfilled to 7, got %v", kc.DraftNumber)
	}

	// team VALUE covers both KC passers, so it differs from the starter's own
	wantTeam := Value(nflverse.CountingStats{Attempts: 35})
	if kc.TeamValue == nil || math.Abs(*kc.TeamValue-wantTeam) > 1e-9 {
		t.Errorf("team_VALUE = %v, want %v", kc.TeamValue, wantTeam)
	}
	wantPlayer := Value(nflverse.CountingStats{Attempts: 30})
	if math.Abs(kc.PlayerValue-wantPlayer) > 1e-9 {
		t.Errorf("player_VALUE = %v, want %v", kc.PlayerValue, wantPlayer)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	pipe := fixtureSources().pipeline()

	first, err := pipe.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := pipe.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first.Model, second.Model) {
		t.Error("model rows differ between identical runs")
	}
	if !reflect.DeepEqual(first.TeamModel, second.TeamModel) {
		t.Error("team rows differ between identical runs")
	}
	if !reflect.DeepEqual(first.Games, second.Games) {
		t.Error("game rows differ between identical runs")
	}
}

func TestRunShortCircuitsOnStageFailure(t *testing.T) {
	cases := []struct {
		name  string
		wreck func(*fakeSources)
		stage string
	}{
		{"stats", func(f *fakeSources) { f.statsErr = errFake }, "retrieve player stats"},
		{"players", func(f *fakeSources) { f.biosErr = errFake }, "retrieve player info"},
		{"draft", func(f *fakeSources) { f.fixesErr = errFake }, "load missing draft data"},
		{"games", func(f *fakeSources) { f.gamesErr = errFake }, "retrieve game data"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := fixtureSources()
			c.wreck(src)

			snap, err := src.pipeline().Run(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if snap != nil {
				t.Error("failed run must not return a partial snapshot")
			}
			if !strings.Contains(err.Error(), c.stage) {
				t.Errorf("error %q should name stage %q", err, c.stage)
			}
		})
	}
}

var errFake = errTest("source unavailable")

type errTest string

func (e errTest) Error() string { return string(e) }
