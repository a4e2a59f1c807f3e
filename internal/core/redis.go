// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/hbnb/internal/config"
)

// Redis wraps the shared client. Keys written through Key are namespaced
// under the configured prefix so several deployments can share one
// instance.
type Redis struct {
	Client      *redis.Client
	prefix      string
	pingTimeout time.Duration
}

// RedisOptions turns the connection URL and pool settings into client
// options without dialing.
func RedisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.PoolTimeout > 0 {
		opts.PoolTimeout = cfg.PoolTimeout
	}
	if cfg.ConnMaxIdleTime > 0 {
		opts.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}

	return opts, nil
}

// OpenRedis builds the client without dialing.
func OpenRedis(cfg config.RedisConfig) (*Redis, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	return &Redis{
		Client:      redis.NewClient(opts),
		prefix:      cfg.KeyPrefix,
		pingTimeout: cfg.PingTimeout,
	}, nil
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	r, err := OpenRedis(cfg)
	if err != nil {
		return nil, err
	}

	if err := r.Ping(ctx); err != nil {
		_ = r.Client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", r.Client.Options().Addr, err)
	}

	return r, nil
}

// Key joins parts with ":" under the configured prefix.
func (r *Redis) Key(parts ...string) string {
	return r.prefix + strings.Join(parts, ":")
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.pingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.pingTimeout)
		defer cancel()
	}

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
