package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"NetSentry/internal/config"
	"NetSentry/internal/model"
)

const historyKey = "netsentry:events"

// RedisReporter keeps a rolling history of flagged events in a scored set
// and publishes each event on a pub/sub channel for live consumers.
type RedisReporter struct {
	client  *redis.Client
	history int64
	channel string
}

// NewRedisReporter connects to Redis and verifies the connection.
func NewRedisReporter(cfg config.RedisConfig) (*RedisReporter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReporter{
		client:  client,
		history: cfg.HistorySize,
		channel: cfg.AlertChannel,
	}, nil
}

// Report stores each event in the history set, scored by its timestamp,
// publishes it on the alert channel, and trims the history to the
// configured size.
func (r *RedisReporter) Report(events []model.FlaggedEvent) error {
	ctx := context.Background()
	pipe := r.client.Pipeline()

	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
		}
		pipe.ZAdd(ctx, historyKey, redis.Z{
			Score:  float64(ev.Timestamp.Unix()),
			Member: string(data),
		})
		pipe.Publish(ctx, r.channel, string(data))
	}
	pipe.ZRemRangeByRank(ctx, historyKey, 0, -(r.history + 1))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store events in Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisReporter) Close() error {
	return r.client.Close()
}
