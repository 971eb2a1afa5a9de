// Package cache stores provider forecasts in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

// RedisForecastCache implements weather.ForecastCache on a Redis client.
type RedisForecastCache struct {
	rdb redis.Cmdable
}

var _ weather.ForecastCache = (*RedisForecastCache)(nil)

// NewRedisForecastCache wraps an existing client.
func NewRedisForecastCache(rdb redis.Cmdable) *RedisForecastCache {
	return &RedisForecastCache{rdb: rdb}
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// Get returns ok=false on a miss.
func (c *RedisForecastCache) Get(ctx context.Context, key string) ([]weather.DailyReading, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var readings []weather.DailyReading
	if err := json.Unmarshal(raw, &readings); err != nil {
		return nil, false, fmt.Errorf("decode cached forecast %s: %w", key, err)
	}
	return readings, true, nil
}

func (c *RedisForecastCache) Set(ctx context.Context, key string, readings []weather.DailyReading, ttl time.Duration) error {
	raw, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
