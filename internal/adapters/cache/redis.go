package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// JSONCache stores values as JSON under a key prefix. Cache faults are
// logged and reported as misses; callers always fall back to the store.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) key(k string) string {
	return c.prefix + ":" + k
}

// Get decodes the cached value into dst and reports whether it was a hit.
func (c *JSONCache) Get(ctx context.Context, k string, dst any) bool {
	val, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] Redis read error for %s: %v", c.key(k), err)
		}
		return false
	}

	if err := json.Unmarshal(val, dst); err != nil {
		log.Printf("[CACHE] Corrupted data under %s, cleaning up key", c.key(k))
		c.Del(ctx, k)
		return false
	}
	return true
}

func (c *JSONCache) Set(ctx context.Context, k string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[CACHE] Cannot encode value for %s: %v", c.key(k), err)
		return
	}
	if err := c.rdb.Set(ctx, c.key(k), data, c.ttl).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

func (c *JSONCache) Del(ctx context.Context, keys ...string) {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate %v: %v", full, err)
	}
}
