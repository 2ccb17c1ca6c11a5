package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/backend/internal/infrastructure/logger"
	"github.com/ideagen/backend/internal/interfaces/http/dto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter decides whether a request identified by key may proceed
type Limiter interface {
	// Allow consumes one request from key's budget and returns the remaining budget
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
	// Limit is the number of requests allowed per window
	Limit() int
}

// RateLimiter is an in-memory fixed window limiter for single-instance deployments
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	tokens    int
	lastReset time.Time
}

const (
	// DefaultRateLimit replaces a non-positive limit
	DefaultRateLimit = 100
	// DefaultRateWindow replaces a non-positive window
	DefaultRateWindow = time.Minute
)

// NewRateLimiter creates a new rate limiter and starts its cleanup loop; call Close to stop it.
// Non-positive arguments fall back to DefaultRateLimit and DefaultRateWindow.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.cleanup(window * 2)
	return rl
}

// cleanup removes clients idle for more than two windows
func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, c := range rl.clients {
				if now.Sub(c.lastReset) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the cleanup loop
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit returns the number of requests allowed per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// Allow checks if a request from the given key should be allowed
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, exists := rl.clients[key]
	if !exists || now.Sub(c.lastReset) >= rl.window {
		rl.clients[key] = &client{tokens: rl.limit - 1, lastReset: now}
		return true, rl.limit - 1, nil
	}

	if c.tokens > 0 {
		c.tokens--
		return true, c.tokens, nil
	}
	return false, 0, nil
}

// RedisRateLimiter is a fixed window limiter shared by every instance using the same Redis
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisRateLimiter creates a Redis-backed limiter
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) (*RedisRateLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be greater than 0")
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ideagen:ratelimit:",
		now:    time.Now,
	}, nil
}

// Limit returns the number of requests allowed per window
func (r *RedisRateLimiter) Limit() int {
	return r.limit
}

// Allow counts the request in the current window's key, which expires with the window
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	slot := r.now().UnixNano() / int64(r.window)
	redisKey := r.prefix + key + ":" + strconv.FormatInt(slot, 10)

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit increment: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	remaining := max(r.limit-int(count), 0)
	return count <= int64(r.limit), remaining, nil
}

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor.
// Limiter errors are logged and the request is let through.
func RateLimitByKey(limiter Limiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, err := limiter.Allow(c.Request.Context(), keyFunc(c))
		if err != nil {
			logger.GetGinLogger(c).Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
