// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/melodiahq/melodia/internal/platform/apperr"
)

// Redis key prefixes for the two volatile token namespaces.
const (
	resetTokenPrefix  = "auth:reset_token:"
	verifyTokenPrefix = "auth:verify_token:"
)

// RedisTokenStore implements TokenStore on a single Redis key namespace.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
}

// NewResetTokenStore creates a Redis-backed store for password reset tokens.
func NewResetTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: resetTokenPrefix}
}

// NewVerificationTokenStore creates a Redis-backed store for email
// verification tokens.
func NewVerificationTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: verifyTokenPrefix}
}

func (store *RedisTokenStore) Set(ctx context.Context, token string, userID string, ttl time.Duration) error {
	if err := store.client.Set(ctx, store.prefix+token, userID, ttl).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("redis_token_set_failed: %w", err))
	}
	return nil
}

func (store *RedisTokenStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := store.client.Get(ctx, store.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Token")
		}
		return "", apperr.Internal(fmt.Errorf("redis_token_get_failed: %w", err))
	}
	return userID, nil
}

func (store *RedisTokenStore) Delete(ctx context.Context, token string) error {
	if err := store.client.Del(ctx, store.prefix+token).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("redis_token_delete_failed: %w", err))
	}
	return nil
}
