//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-autoapply/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVacancyIDs = []string{"demo-1001", "demo-1002", "xyz", "nonexistent"}

func getTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Skipf("database not available: %v", err)
	}
	require.NoError(t, db.Initialize(ctx))

	_, _ = db.pool.Exec(ctx, "DELETE FROM applications WHERE vacancy_id = ANY($1)", testVacancyIDs)
	return db
}

func getTestRedis(t *testing.T) *RedisLog {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}

	ctx := context.Background()
	log, err := ConnectRedis(ctx, url)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	log.client.Del(ctx, redisVacancySetKey, redisEntryListKey)
	return log
}

func backends(t *testing.T) map[string]func(*testing.T) ApplicationLog {
	return map[string]func(*testing.T) ApplicationLog{
		"postgres": func(t *testing.T) ApplicationLog { return getTestDB(t) },
		"redis":    func(t *testing.T) ApplicationLog { return getTestRedis(t) },
	}
}

func TestIntegration_ExistsAfterSeedAndAppend(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			log := open(t)
			defer log.Close()
			ctx := context.Background()

			require.NoError(t, log.Initialize(ctx))
			require.NoError(t, log.SeedDemo(ctx))

			ok, err := log.Exists(ctx, "demo-1001")
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = log.Exists(ctx, "nonexistent")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, log.Append(ctx, &types.ApplicationLogEntry{
				VacancyID:   "xyz",
				ProfileName: "Backend",
				Status:      types.StatusError,
			}))

			ok, err = log.Exists(ctx, "xyz")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestIntegration_InitializeIsIdempotent(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			log := open(t)
			defer log.Close()
			ctx := context.Background()

			require.NoError(t, log.Append(ctx, &types.ApplicationLogEntry{VacancyID: "xyz", ProfileName: "p", Status: "applied"}))
			require.NoError(t, log.Initialize(ctx))
			require.NoError(t, log.Initialize(ctx))

			ok, err := log.Exists(ctx, "xyz")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestIntegration_AppendKeepsDuplicates(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			log := open(t)
			defer log.Close()
			ctx := context.Background()
			runID := uuid.New()

			snippet := "Dear team..."
			require.NoError(t, log.Append(ctx, &types.ApplicationLogEntry{RunID: runID, VacancyID: "xyz", ProfileName: "p", Status: "error"}))
			require.NoError(t, log.Append(ctx, &types.ApplicationLogEntry{RunID: runID, VacancyID: "xyz", ProfileName: "p", Status: "applied", CoverLetterSnippet: &snippet}))

			entries, err := log.List(ctx, 0)
			require.NoError(t, err)

			var mine []types.ApplicationLogEntry
			for _, e := range entries {
				if e.VacancyID == "xyz" {
					mine = append(mine, e)
				}
			}
			require.Len(t, mine, 2)
			assert.Equal(t, runID, mine[0].RunID)
			assert.False(t, mine[0].AppliedAt.IsZero())
		})
	}
}

func TestIntegration_RedisListNewestFirst(t *testing.T) {
	log := getTestRedis(t)
	defer log.Close()
	ctx := context.Background()

	for _, id := range []string{"demo-1001", "demo-1002", "xyz"} {
		require.NoError(t, log.Append(ctx, &types.ApplicationLogEntry{VacancyID: id, ProfileName: "p", Status: "dry_run"}))
	}

	entries, err := log.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "xyz", entries[0].VacancyID)
	assert.Equal(t, "demo-1002", entries[1].VacancyID)
}
