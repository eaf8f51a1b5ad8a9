// Package publisher announces completed dataset refreshes on a Redis
// stream so downstream model consumers can react without polling.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/qbvalue/internal/pipeline"
)

const refreshStream = "qbvalue.refresh"

// RedisPublisher publishes refresh events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher connects to Redis and verifies the connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishRefresh announces that a new snapshot replaced the previous one.
// Only summary counts go on the wire; consumers pull the tables themselves.
func (rp *RedisPublisher) PublishRefresh(ctx context.Context, snap *pipeline.Snapshot) error {
	summary, err := json.Marshal(map[string]interface{}{
		"model_rows": len(snap.Model),
		"team_rows":  len(snap.TeamModel),
		"games":      len(snap.Games),
		"fetched_at": snap.FetchedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: refreshStream,
		Values: map[string]interface{}{
			"data":      string(summary),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
