package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

type redisOptions struct {
	log      *zap.Logger
	poolSize int
	timeout  time.Duration
}

type RedisOption func(*redisOptions)

func WithRedisLogger(l *zap.Logger) RedisOption {
	return func(o *redisOptions) { o.log = l }
}

func WithPoolSize(n int) RedisOption {
	return func(o *redisOptions) { o.poolSize = n }
}

// WithTimeout bounds every read and write on the connection.
func WithTimeout(d time.Duration) RedisOption {
	return func(o *redisOptions) { o.timeout = d }
}

// OpenRedis connects and pings; the caller owns the returned client.
func OpenRedis(ctx context.Context, addr string, db int, opts ...RedisOption) (*redis.Client, error) {
	o := redisOptions{log: zap.NewNop(), timeout: 3 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	r := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		PoolSize:     o.poolSize,
		ReadTimeout:  o.timeout,
		WriteTimeout: o.timeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(pingCtx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	o.log.Named("redis").Info("redis: connected", zap.String("addr", addr), zap.Int("db", db))
	return r, nil
}
