package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

func TestRedisForecastCache_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewRedisForecastCache(rdb)

	_, ok, err := c.Get(context.Background(), "forecast:test")
	assert.Error(t, err)
	assert.False(t, ok)

	err = c.Set(context.Background(), "forecast:test", nil, time.Minute)
	assert.Error(t, err)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

// Runs against a real server when REDIS_ADDR is set.
func TestRedisForecastCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	rdb, err := Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer rdb.Close()
	c := NewRedisForecastCache(rdb)

	key := "forecast:test:" + time.Now().Format(time.RFC3339Nano)
	defer rdb.Del(ctx, key)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []weather.DailyReading{{
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TempMaxC:  12.5,
		TempMinC:  3,
		Condition: weather.ConditionRain,
	}}
	require.NoError(t, c.Set(ctx, key, in, time.Minute))

	out, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
