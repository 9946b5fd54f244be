package cache

import (
	"context"
	"fmt"
	"time"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

// Cache 以位元組儲存的鍵值緩存，找不到時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// noop 停用快取時使用，永遠未命中
type noop struct{}

func (noop) Get(context.Context, string) ([]byte, error) { return nil, common.ErrCacheMiss }
func (noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noop) Delete(context.Context, string) error { return nil }
func (noop) Close() error { return nil }

// New 依設定建立快取
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return noop{}, nil
	}

	switch cfg.Driver {
	case "redis":
		return NewService(ctx, cfg)
	case "memory", "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
