// Package pipeline builds the per-game quarterback value dataset: it joins
// the three nflverse snapshots and the curated draft backfill into one
// player-level model table and one team-level table, both rated with the
// fixed VALUE formula.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/qbvalue/internal/draft"
	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
)

// StatsSource supplies the weekly quarterback stat rows.
type StatsSource interface {
	QBStats(ctx context.Context) ([]nflverse.PlayerGameStat, error)
}

// PlayerSource supplies the player biographical records.
type PlayerSource interface {
	Players(ctx context.Context) ([]nflverse.PlayerBio, error)
}

// GameSource supplies the schedule records.
type GameSource interface {
	Games(ctx context.Context) ([]nflverse.GameRecord, error)
}

// DraftSource supplies the curated missing-draft-data table.
type DraftSource interface {
	MissingDraftData() ([]draft.Fix, error)
}

// Sources bundles the four inputs of a run.
type Sources struct {
	Stats   StatsSource
	Players PlayerSource
	Games   GameSource
	Draft   DraftSource
}

// Pipeline sequences the stages of one dataset build. Each Run is
// independent: it either returns a complete Snapshot or an error from the
// first failed stage, never a partial result.
type Pipeline struct {
	src Sources
}

// New creates a pipeline over the given sources.
func New(src Sources) *Pipeline {
	return &Pipeline{src: src}
}

// NewDefault wires the pipeline against the public nflverse snapshots and
// the local curated draft table.
func NewDefault(draftPath string) *Pipeline {
	client := nflverse.NewClient()
	return New(Sources{
		Stats:   client,
		Players: client,
		Games:   client,
		Draft:   draft.File{Path: draftPath},
	})
}

// Run executes the full build. It short-circuits on the first stage
// failure; the returned error names the stage that failed.
func (p *Pipeline) Run(ctx context.Context) (*Snapshot, error) {
	started := time.Now()
	log.Printf("[pipeline] retrieving nflverse data...")

	stats, err := p.src.Stats.QBStats(ctx)
	if err != nil {
		return nil, p.fail("retrieve player stats", err)
	}

	bios, err := p.src.Players.Players(ctx)
	if err != nil {
		return nil, p.fail("retrieve player info", err)
	}

	fixes, err := p.src.Draft.MissingDraftData()
	if err != nil {
		return nil, p.fail("load missing draft data", err)
	}
	bios = draft.Apply(bios, fixes)

	games, err := p.src.Games.Games(ctx)
	if err != nil {
		return nil, p.fail("retrieve game data", err)
	}

	rows := MergeBio(stats, bios)
	rows = MergeGames(rows, FlattenGames(games))

	teamModel := BuildTeamModel(AggregateTeamStats(rows, ByTeam))
	model := BuildModelRows(IsoTopPassers(rows))
	JoinTeamValue(model, teamModel)

	log.Printf("[pipeline] ✓ built %d model rows, %d team rows, %d games in %v",
		len(model), len(teamModel), len(games), time.Since(started).Round(time.Millisecond))

	return &Snapshot{
		Model:     model,
		TeamModel: teamModel,
		Games:     games,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *Pipeline) fail(stage string, err error) error {
	log.Printf("[pipeline] ⚠ %s failed: %v", stage, err)
	return fmt.Errorf("%s: %w", stage, err)
}
