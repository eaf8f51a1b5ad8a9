// Package service owns the published dataset and the refresh path around
// the pipeline.
package service

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
	"github.com/fortuna/qbvalue/internal/pipeline"
	"github.com/fortuna/qbvalue/internal/publisher"
	"github.com/fortuna/qbvalue/internal/store"
)

// ModelService coordinates pipeline runs, the in-memory snapshot holder,
// and the optional sinks. Sinks are best-effort: once the holder has the
// new snapshot, a sink failure logs a warning and nothing else.
type ModelService struct {
	pipe   *pipeline.Pipeline
	holder *pipeline.Holder

	db  *store.Database           // optional
	pub *publisher.RedisPublisher // optional
}

// NewModelService creates the service. db and pub may be nil.
func NewModelService(pipe *pipeline.Pipeline, db *store.Database, pub *publisher.RedisPublisher) *ModelService {
	return &ModelService{
		pipe:   pipe,
		holder: &pipeline.Holder{},
		db:     db,
		pub:    pub,
	}
}

// Refresh runs the pipeline once. On failure the previously published
// snapshot stays in place and the error is returned; on success the new
// snapshot replaces it atomically before the sinks are fed.
func (s *ModelService) Refresh(ctx context.Context) error {
	snap, err := s.pipe.Run(ctx)
	if err != nil {
		return err
	}

	s.holder.Publish(snap)

	if s.db != nil {
		if err := s.db.ReplaceSnapshot(ctx, snap); err != nil {
			log.Printf("[service] ⚠ postgres sink failed: %v (serving from memory)", err)
		}
	}
	if s.pub != nil {
		if err := s.pub.PublishRefresh(ctx, snap); err != nil {
			log.Printf("[service] ⚠ refresh publish failed: %v", err)
		}
	}

	return nil
}

// ModelRows returns the player-level rows, optionally filtered by season
// and team. The second return is false before the first successful refresh.
func (s *ModelService) ModelRows(season int, team string) ([]pipeline.ModelRow, bool) {
	snap, ok := s.holder.Latest()
	if !ok {
		return nil, false
	}
	if season == 0 && team == "" {
		return snap.Model, true
	}
	out := make([]pipeline.ModelRow, 0, len(snap.Model))
	for _, r := range snap.Model {
		if season != 0 && r.Season != season {
			continue
		}
		if team != "" && r.Team != team {
			continue
		}
		out = append(out, r)
	}
	return out, true
}

// TeamRows returns the team-level rows, optionally filtered by season and
// team.
func (s *ModelService) TeamRows(season int, team string) ([]pipeline.TeamModelRow, bool) {
	snap, ok := s.holder.Latest()
	if !ok {
		return nil, false
	}
	if season == 0 && team == "" {
		return snap.TeamModel, true
	}
	out := make([]pipeline.TeamModelRow, 0, len(snap.TeamModel))
	for _, r := range snap.TeamModel {
		if season != 0 && r.Season != season {
			continue
		}
		if team != "" && r.Team != team {
			continue
		}
		out = append(out, r)
	}
	return out, true
}

// Games returns the raw game table, optionally filtered by season.
func (s *ModelService) Games(season int) ([]nflverse.GameRecord, bool) {
	snap, ok := s.holder.Latest()
	if !ok {
		return nil, false
	}
	if season == 0 {
		return snap.Games, true
	}
	out := make([]nflverse.GameRecord, 0, len(snap.Games))
	for _, g := range snap.Games {
		if g.Season == season {
			out = append(out, g)
		}
	}
	return out, true
}

// LastUpdated reports when the current snapshot was built.
func (s *ModelService) LastUpdated() (time.Time, bool) {
	snap, ok := s.holder.Latest()
	if !ok {
		return time.Time{}, false
	}
	return snap.FetchedAt, true
}
