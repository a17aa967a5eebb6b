package ratelimiter

import (
	"context"
	"os"
	"passreset/internal/core/domain/logging"
	ratelimiter "passreset/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

func now() time.Time {
	return NOW
}

func TestRedisFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	log := logging.NewFakeLogger()
	limiter := NewRedis(client, log, now)

	result := limiter.CheckLimit(
		context.Background(),
		ratelimiter.Key("test", "john.doe@example.com"),
		ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour},
	)

	assert.True(t, result.IsAllowed)
	assert.Equal(t, 1, log.CountByLevel(logging.ERROR))
}

func TestRedisDeniesOnCancelledContext(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	limiter := NewRedis(client, logging.NewFakeLogger(), now)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := limiter.CheckLimit(ctx, "test", ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour})

	assert.False(t, result.IsAllowed)
}

func TestRedisCountsCalls(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opt, err := redis.ParseURL(url)
	require.Nil(t, err)
	client := redis.NewClient(opt)
	defer client.Close()
	limiter := NewRedis(client, logging.NewFakeLogger(), now)
	key := ratelimiter.Key("test", uuid.NewString())
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Hour}

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
	}
	assert.False(t, limiter.CheckLimit(context.Background(), key, limit).IsAllowed)

	otherKey := ratelimiter.Key("test", uuid.NewString())
	assert.True(t, limiter.CheckLimit(context.Background(), otherKey, limit).IsAllowed)
}

func TestNewRedisPanicsOnNilArguments(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	assert.Panics(t, func() { NewRedis(nil, logging.NewFakeLogger(), now) })
	assert.Panics(t, func() { NewRedis(client, nil, now) })
	assert.Panics(t, func() { NewRedis(client, logging.NewFakeLogger(), nil) })
}
