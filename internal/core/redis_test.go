// AngelaMos | 2026
// redis_test.go

package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hbnb/internal/config"
	"github.com/carterperez-dev/hbnb/internal/core"
)

func TestRedisOptionsAppliesPoolSettings(t *testing.T) {
	opts, err := core.RedisOptions(config.RedisConfig{
		URL:             "redis://:secret@cache.internal:6380/2",
		PoolSize:        16,
		MinIdleConns:    4,
		PoolTimeout:     2 * time.Second,
		ConnMaxIdleTime: 90 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 16, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, 2*time.Second, opts.PoolTimeout)
	assert.Equal(t, 90*time.Second, opts.ConnMaxIdleTime)
}

func TestRedisOptionsKeepsClientDefaultsForZeroValues(t *testing.T) {
	opts, err := core.RedisOptions(config.RedisConfig{URL: "redis://localhost:6379/0"})
	require.NoError(t, err)

	assert.Zero(t, opts.PoolSize)
	assert.Zero(t, opts.PoolTimeout)
}

func TestRedisOptionsRejectsBadURL(t *testing.T) {
	_, err := core.RedisOptions(config.RedisConfig{URL: "http://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestNewRedisFailsWithinPingTimeout(t *testing.T) {
	start := time.Now()
	_, err := core.NewRedis(context.Background(), config.RedisConfig{
		URL:         "redis://127.0.0.1:1/0",
		PingTimeout: 200 * time.Millisecond,
		KeyPrefix:   "hbnb:",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis 127.0.0.1:1")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRedisKeyUsesPrefix(t *testing.T) {
	r, err := core.OpenRedis(config.RedisConfig{
		URL:       "redis://localhost:6379/0",
		KeyPrefix: "hbnb:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	assert.Equal(t, "hbnb:blacklist:abc", r.Key("blacklist", "abc"))

	bare, err := core.OpenRedis(config.RedisConfig{URL: "redis://localhost:6379/0"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bare.Close() })

	assert.Equal(t, "blacklist:abc", bare.Key("blacklist", "abc"))
}
