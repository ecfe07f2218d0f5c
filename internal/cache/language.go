// Package cache keeps per-user language codes in Redis so repeated language
// lookups skip the database.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "lang:"
	scanBatch     = 100
)

type LanguageCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewLanguageCache stores entries for ttl; a zero ttl keeps them until
// invalidated.
func NewLanguageCache(rdb *redis.Client, ttl time.Duration) *LanguageCache {
	return &LanguageCache{rdb: rdb, ttl: ttl, prefix: DefaultPrefix}
}

func (c *LanguageCache) key(telegramID int64) string {
	return c.prefix + strconv.FormatInt(telegramID, 10)
}

// Get returns the cached language and whether there was an entry.
func (c *LanguageCache) Get(ctx context.Context, telegramID int64) (string, bool, error) {
	lang, err := c.rdb.Get(ctx, c.key(telegramID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", c.key(telegramID), err)
	}
	return lang, true, nil
}

func (c *LanguageCache) Set(ctx context.Context, telegramID int64, lang string) error {
	if err := c.rdb.Set(ctx, c.key(telegramID), lang, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key(telegramID), err)
	}
	return nil
}

func (c *LanguageCache) Invalidate(ctx context.Context, telegramIDs ...int64) error {
	if len(telegramIDs) == 0 {
		return nil
	}
	keys := make([]string, len(telegramIDs))
	for i, id := range telegramIDs {
		keys[i] = c.key(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Reset removes every entry under the cache prefix.
func (c *LanguageCache) Reset(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}
