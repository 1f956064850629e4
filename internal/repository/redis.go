package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// VersionKey tracks the global leaderboard version for change detection.
	// Every accepted lap bumps it; websocket clients refetch on change.
	VersionKey = "leaderboard:version"

	// snapshotKeyPrefix prefixes cached leaderboard snapshots keyed by filter
	snapshotKeyPrefix = "leaderboard:snapshot:"

	// SnapshotTTL bounds staleness when the refresh pool drops a task
	SnapshotTTL = 5 * time.Minute
)

// RedisRepository handles all Redis operations
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
	}
}

// SnapshotKey builds the cache key for a leaderboard filter. Zero means
// unfiltered.
func SnapshotKey(carID, trackID uint) string {
	return fmt.Sprintf("%scar=%d:track=%d", snapshotKeyPrefix, carID, trackID)
}

// BumpVersion increments the global leaderboard version
func (r *RedisRepository) BumpVersion(ctx context.Context) error {
	return r.client.Incr(ctx, VersionKey).Err()
}

// GetVersion returns the current global version number
func (r *RedisRepository) GetVersion(ctx context.Context) (int64, error) {
	version, err := r.client.Get(ctx, VersionKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // Version not set yet
		}
		return 0, err
	}
	return version, nil
}

// SetSnapshot caches a serialized leaderboard response
func (r *RedisRepository) SetSnapshot(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, key, payload, SnapshotTTL).Err()
}

// GetSnapshot returns a cached leaderboard response, or ok=false on miss
func (r *RedisRepository) GetSnapshot(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// InvalidateSnapshots drops every cached leaderboard snapshot. Used after
// bulk writes (seeding) where per-key refresh is pointless.
func (r *RedisRepository) InvalidateSnapshots(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, snapshotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Ping checks if Redis is reachable
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
