package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/spendwise/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow trims the sorted set to the window, then admits the hit if
// there is room. Scores are unix milliseconds.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	return {0, count, tonumber(oldest[2])}
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count + 1, 0}
`)

// RedisLimiter shares sliding windows across processes through Redis sorted sets.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiterFromURL parses a redis:// URL and builds a limiter on it.
func NewRedisLimiterFromURL(url, prefix string, limit int, window time.Duration) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisLimiter(redis.NewClient(opt), prefix, limit, window), nil
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow implements ratelimit.Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	now := l.now().UnixMilli()
	res, err := slidingWindow.Run(
		ctx,
		l.client,
		[]string{l.prefix + "ratelimit:" + key},
		now,
		l.window.Milliseconds(),
		l.limit,
		fmt.Sprintf("%d-%s", now, uuid.NewString()),
	).Int64Slice()
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("rate limit script: %w", err)
	}
	if res[0] == 0 {
		retry := time.Duration(res[2]+l.window.Milliseconds()-now) * time.Millisecond
		return ratelimit.Result{Allowed: false, RetryAfter: retry}, nil
	}
	return ratelimit.Result{Allowed: true, Remaining: l.limit - int(res[1])}, nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
