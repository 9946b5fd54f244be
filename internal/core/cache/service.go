package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

// keyPrefix Redis 鍵前綴
const keyPrefix = "ayura:"

// Service Redis 緩存服務
type Service struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewService 創建 Redis 緩存服務並測試連線
func NewService(ctx context.Context, cfg config.CacheConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewServiceWithClient(client, cfg.TTL), nil
}

// NewServiceWithClient 以既有 client 建立服務
func NewServiceWithClient(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, defaultTTL: defaultTTL}
}

// Get 獲取緩存
func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss("redis", key)
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return data, nil
}

// Set 設置緩存，ttl <= 0 時使用預設存活時間
func (s *Service) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete 刪除緩存
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Ping 檢查 Redis 連線
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *Service) Close() error {
	return s.client.Close()
}
