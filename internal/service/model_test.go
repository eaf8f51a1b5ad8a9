package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fortuna/qbvalue/internal/draft"
	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
	"github.com/fortuna/qbvalue/internal/pipeline"
)

// toggleSources serves a fixed dataset until fail is set, after which every
// fetch errors. Lets tests exercise the retained-output contract.
type toggleSources struct {
	fail bool
}

func (s *toggleSources) QBStats(context.Context) ([]nflverse.PlayerGameStat, error) {
	if s.fail {
		return nil, errors.New("source unavailable")
	}
	return []nflverse.PlayerGameStat{
		{
			PlayerID: "starter-kc",
			Position: "QB",
			Team:     "KC",
			Season:   2023,
			Week:     1,
			Stats:    nflverse.CountingStats{Attempts: 30},
		},
		{
			PlayerID: "starter-oak",
			Position: "QB",
			Team:     "OAK",
			Season:   2023,
			Week:     1,
			Stats:    nflverse.CountingStats{Attempts: 25},
		},
	}, nil
}

func (s *toggleSources) Players(context.Context) ([]nflverse.PlayerBio, error) {
	if s.fail {
		return nil, errors.New("source unavailable")
	}
	return nil, nil
}

func (s *toggleSources) Games(context.Context) ([]nflverse.GameRecord, error) {
	if s.fail {
		return nil, errors.New("source unavailable")
	}
	return []nflverse.GameRecord{{
		GameID:   "2023_01_OAK_KC",
		Season:   2023,
		Week:     1,
		HomeTeam: "KC",
		AwayTeam: "OAK",
	}}, nil
}

func (s *toggleSources) MissingDraftData() ([]draft.Fix, error) {
	if s.fail {
		return nil, errors.New("source unavailable")
	}
	return nil, nil
}

func newTestService(src *toggleSources) *ModelService {
	pipe := pipeline.New(pipeline.Sources{Stats: src, Players: src, Games: src, Draft: src})
	return NewModelService(pipe, nil, nil)
}

func TestServiceUnloadedBeforeFirstRefresh(t *testing.T) {
	svc := newTestService(&toggleSources{})

	if _, ok := svc.ModelRows(0, ""); ok {
		t.Error("ModelRows should report not loaded before a refresh")
	}
	if _, ok := svc.Games(0); ok {
		t.Error("Games should report not loaded before a refresh")
	}
	if _, ok := svc.LastUpdated(); ok {
		t.Error("LastUpdated should report not loaded before a refresh")
	}
}

func TestServiceFailedRefreshRetainsPriorDataset(t *testing.T) {
	src := &toggleSources{}
	svc := newTestService(src)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	before, ok := svc.ModelRows(0, "")
	if !ok || len(before) == 0 {
		t.Fatal("expected model rows after successful refresh")
	}

	src.fail = true
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error once sources fail")
	}

	after, ok := svc.ModelRows(0, "")
	if !ok {
		t.Fatal("prior dataset should still be served")
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("failed refresh must leave the stored outputs unchanged")
	}
}

func TestServiceFilters(t *testing.T) {
	svc := newTestService(&toggleSources{})
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	kc, _ := svc.ModelRows(2023, "KC")
	if len(kc) != 1 || kc[0].Team != "KC" {
		t.Errorf("team filter wrong: %+v", kc)
	}

	none, _ := svc.ModelRows(1999, "")
	if len(none) != 0 {
		t.Errorf("season filter wrong: %+v", none)
	}

	teams, _ := svc.TeamRows(2023, "OAK")
	if len(teams) != 1 || teams[0].Team != "OAK" {
		t.Errorf("team rows filter wrong: %+v", teams)
	}

	games, _ := svc.Games(2023)
	if len(games) != 1 {
		t.Errorf("games filter wrong: %+v", games)
	}
}
