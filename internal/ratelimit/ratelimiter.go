package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultWindow is the sliding window length used by NewRedisLimiter.
const DefaultWindow = time.Minute

const keyPrefix = "studyai:ratelimit:"

// ErrNilClient is returned by NewRedisLimiter when no client is given.
var ErrNilClient = errors.New("redis client cannot be nil")

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NoopLimiter allows every request.
type NoopLimiter struct{}

// Allow always returns true.
func (NoopLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

// RedisLimiter implements a sliding-window limit on Redis sorted sets.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter allows up to limit requests per key within window.
// A non-positive limit disables limiting.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) (*RedisLimiter, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisLimiter{client: client, limit: limit, window: window, now: time.Now}, nil
}

// NewClient parses a redis:// URL into a client.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Allow records the request and reports whether key is still within its limit.
// Denied requests are recorded too, so a client that keeps retrying stays limited.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	now := l.now()
	redisKey := keyPrefix + key

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-l.window).UnixMilli(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, redisKey, 2*l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return countCmd.Val() < int64(l.limit), nil
}

// Usage returns the number of requests recorded for key in the current window.
func (l *RedisLimiter) Usage(ctx context.Context, key string) (int64, error) {
	redisKey := keyPrefix + key
	windowStart := l.now().Add(-l.window).UnixMilli()

	if err := l.client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10)).Err(); err != nil {
		return 0, fmt.Errorf("failed to clean old entries: %w", err)
	}
	count, err := l.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get current usage: %w", err)
	}
	return count, nil
}

// Reset clears the window for key.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, keyPrefix+key).Err()
}
