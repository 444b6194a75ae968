package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/job-autoapply/internal/types"
	"github.com/redis/go-redis/v9"
)

const (
	redisVacancySetKey = "autoapply:applications:vacancy_ids"
	redisEntryListKey  = "autoapply:applications:entries"
)

// RedisLog stores the application log in Redis: a set of vacancy ids for
// dedup lookups and a list of JSON entries in append order.
type RedisLog struct {
	client *redis.Client
}

// ConnectRedis parses redisURL and verifies connectivity.
func ConnectRedis(ctx context.Context, redisURL string) (*RedisLog, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisLog(client), nil
}

// NewRedisLog wraps an existing client.
func NewRedisLog(client *redis.Client) *RedisLog {
	return &RedisLog{client: client}
}

// Close closes the client
func (r *RedisLog) Close() {
	_ = r.client.Close()
}

// Initialize is a no-op; keys are created on first write.
func (r *RedisLog) Initialize(_ context.Context) error {
	return nil
}

// Exists reports whether any entry has the vacancy id.
func (r *RedisLog) Exists(ctx context.Context, vacancyID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, redisVacancySetKey, vacancyID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check vacancy %s: %w", vacancyID, err)
	}
	return ok, nil
}

// Append writes one entry atomically to both keys.
func (r *RedisLog) Append(ctx context.Context, entry *types.ApplicationLogEntry) error {
	prepareEntry(entry)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal application: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, redisEntryListKey, data)
		pipe.SAdd(ctx, redisVacancySetKey, entry.VacancyID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append application for vacancy %s: %w", entry.VacancyID, err)
	}
	return nil
}

// List returns entries newest first. A non-positive limit returns everything.
func (r *RedisLog) List(ctx context.Context, limit int) ([]types.ApplicationLogEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}

	raw, err := r.client.LRange(ctx, redisEntryListKey, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	entries := make([]types.ApplicationLogEntry, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e types.ApplicationLogEntry
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			return nil, fmt.Errorf("failed to decode application: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SeedDemo inserts the demo rows unless they are already present.
func (r *RedisLog) SeedDemo(ctx context.Context) error {
	for _, entry := range DemoEntries() {
		exists, err := r.Exists(ctx, entry.VacancyID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := r.Append(ctx, &entry); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return nil
}
