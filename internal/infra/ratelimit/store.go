// Package ratelimit provides the stores behind the auth route limiter.
package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"identity/config"
	"identity/internal/errors"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const keyPrefix = "identity:ratelimit:"

// Params defines the dependencies of the limiter store.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewStore returns a Redis-backed fixed-window store when an address is
// configured, otherwise a per-process token bucket store.
func NewStore(params Params) (middleware.RateLimiterStore, error) {
	cfg := params.Config.RateLimit
	if cfg.Redis.Addr == "" {
		params.Logger.Info("Rate limiter using in-process store")

		return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.Max) / cfg.Window.Seconds()),
			Burst:     cfg.Max,
			ExpiresIn: cfg.Window,
		}), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "could not connect to Redis")
			}
			params.Logger.Info("Rate limiter using Redis store", slog.String("addr", cfg.Redis.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return NewRedisStore(client, cfg.Window, cfg.Max, params.Logger), nil
}

// RedisStore counts requests per identifier in fixed windows shared by every replica.
type RedisStore struct {
	client  redis.UniversalClient
	window  time.Duration
	max     int64
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewRedisStore builds a fixed-window store allowing max requests per window.
func NewRedisStore(client redis.UniversalClient, window time.Duration, limit int, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client:  client,
		window:  window,
		max:     int64(limit),
		timeout: 500 * time.Millisecond,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow implements middleware.RateLimiterStore. Redis failures let the request through.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	count, err := s.hit(ctx, identifier)
	if err != nil {
		s.logger.Warn("Rate limiter store unavailable", slog.Any("error", err))

		return true, nil
	}

	return count <= s.max, nil
}

func (s *RedisStore) hit(ctx context.Context, identifier string) (int64, error) {
	windowStart := s.now().Truncate(s.window)
	key := keyPrefix + identifier + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)

		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count request")
	}

	return incr.Val(), nil
}
