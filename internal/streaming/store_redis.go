// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package streaming

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/constants"
)

const recentKeyPrefix = "streaming:recent:"

// RedisRecentStore keeps the recently-played projection in a per-user
// sorted set scored by play time and trimmed to a fixed size.
type RedisRecentStore struct {
	client *redis.Client
	limit  int
}

// NewRedisRecentStore creates the Redis-backed projection store.
func NewRedisRecentStore(client *redis.Client) *RedisRecentStore {
	return &RedisRecentStore{client: client, limit: constants.RecentlyPlayedLimit}
}

func (store *RedisRecentStore) Add(ctx context.Context, userID, songID string, playedAt time.Time) error {
	key := recentKeyPrefix + userID

	pipe := store.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(playedAt.Unix()), Member: songID})
	pipe.ZRemRangeByRank(ctx, key, 0, int64(-store.limit-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Internal(fmt.Errorf("redis_recent_add_failed: %w", err))
	}
	return nil
}

func (store *RedisRecentStore) List(ctx context.Context, userID string) ([]RecentPlay, error) {
	key := recentKeyPrefix + userID

	entries, err := store.client.ZRevRangeWithScores(ctx, key, 0, int64(store.limit-1)).Result()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("redis_recent_list_failed: %w", err))
	}

	plays := make([]RecentPlay, 0, len(entries))
	for _, entry := range entries {
		songID, ok := entry.Member.(string)
		if !ok {
			continue
		}
		plays = append(plays, RecentPlay{
			SongID:   songID,
			PlayedAt: time.Unix(int64(entry.Score), 0),
		})
	}
	return plays, nil
}
