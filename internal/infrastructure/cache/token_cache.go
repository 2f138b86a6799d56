package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-records/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "auth_token"

type redisTokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTokenCache caches token id to Actor id lookups for ttl.
func NewRedisTokenCache(client *redis.Client, ttl time.Duration) repository.TokenCache {
	return &redisTokenCache{client: client, ttl: ttl}
}

func tokenKey(tokenID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", tokenKeyPrefix, tokenID.String())
}

func (c *redisTokenCache) Get(ctx context.Context, tokenID uuid.UUID) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, tokenKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		// drop the unreadable entry so the next lookup goes to the database
		c.client.Del(ctx, tokenKey(tokenID))
		return uuid.Nil, false, nil
	}
	return userID, true, nil
}

func (c *redisTokenCache) Set(ctx context.Context, tokenID, userID uuid.UUID, expiresAt *time.Time) error {
	ttl, ok := entryTTL(c.ttl, expiresAt, time.Now())
	if !ok {
		return nil
	}
	return c.client.Set(ctx, tokenKey(tokenID), userID.String(), ttl).Err()
}

// entryTTL caps ttl at the token's remaining lifetime. ok is false when the
// token has already expired. A zero result keeps the entry until evicted.
func entryTTL(ttl time.Duration, expiresAt *time.Time, now time.Time) (time.Duration, bool) {
	if expiresAt == nil {
		return ttl, true
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0, false
	}
	if ttl <= 0 || remaining < ttl {
		return remaining, true
	}
	return ttl, true
}

func (c *redisTokenCache) Delete(ctx context.Context, tokenID uuid.UUID) error {
	return c.client.Del(ctx, tokenKey(tokenID)).Err()
}

type nopTokenCache struct{}

// NewNopTokenCache is used when Redis is disabled; every lookup misses.
func NewNopTokenCache() repository.TokenCache {
	return nopTokenCache{}
}

func (nopTokenCache) Get(context.Context, uuid.UUID) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

func (nopTokenCache) Set(context.Context, uuid.UUID, uuid.UUID, *time.Time) error {
	return nil
}

func (nopTokenCache) Delete(context.Context, uuid.UUID) error {
	return nil
}
