package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

func memoryConfig(maxSize int) config.CacheConfig {
	return config.CacheConfig{
		Enabled: true,
		Driver:  "memory",
		MaxSize: maxSize,
		TTL:     time.Minute,
	}
}

func TestManagerGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memoryConfig(10))
	defer m.Close()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	stats := m.GetStats()
	assert.EqualValues(t, 1, stats["hits"])
	assert.EqualValues(t, 2, stats["misses"])
}

func TestManagerExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memoryConfig(10))
	defer m.Close()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memoryConfig(2))
	defer m.Close()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", []byte("3"), 0))

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestRedisService(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	svc, err := NewService(ctx, config.CacheConfig{
		Enabled: true,
		Driver:  "redis",
		TTL:     time.Minute,
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Get(ctx, "recipes:catalog")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, "recipes:catalog", []byte(`[]`), 0))
	assert.True(t, mr.Exists(keyPrefix+"recipes:catalog"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"recipes:catalog"))

	got, err := svc.Get(ctx, "recipes:catalog")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	mr.FastForward(2 * time.Minute)
	_, err = svc.Get(ctx, "recipes:catalog")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, "x", []byte("1"), time.Hour))
	require.NoError(t, svc.Delete(ctx, "x"))
	assert.False(t, mr.Exists(keyPrefix+"x"))
}

func TestRedisServiceUnreachable(t *testing.T) {
	_, err := NewService(context.Background(), config.CacheConfig{
		Redis: config.RedisConfig{Addr: "127.0.0.1:1"},
	})
	assert.Error(t, err)
}

func TestRedisServiceWithClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewServiceWithClient(client, time.Minute)
	defer svc.Close()

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestNewSelectsDriver(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	_, err = c.Get(ctx, "anything")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	c, err = New(ctx, memoryConfig(5))
	require.NoError(t, err)
	assert.IsType(t, &CacheManager{}, c)
	require.NoError(t, c.Close())

	_, err = New(ctx, config.CacheConfig{Enabled: true, Driver: "memcached"})
	assert.Error(t, err)
}
