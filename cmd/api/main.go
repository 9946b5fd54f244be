package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ayura/internal/api"
	"ayura/internal/core/cache"
	"ayura/internal/infrastructure/config"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// startupTimeout 連線儲存與快取的逾時
const startupTimeout = 15 * time.Second

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("config loaded",
		zap.String("env", cfg.App.Env),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, err := storage.Open(startCtx, cfg.Storage)
	if err != nil {
		cancel()
		common.LogFatal("Failed to open storage", zap.Error(err))
	}
	catalogCache, err := cache.New(startCtx, cfg.Cache)
	cancel()
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}

	services := api.BuildServices(cfg, store, catalogCache)
	router := api.SetupRouter(cfg, services)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.Bool("debug", cfg.App.Debug),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}
	services.Close()
	if err := catalogCache.Close(); err != nil {
		common.LogWarn("cache close failed", zap.Error(err))
	}
	if err := store.Close(ctx); err != nil {
		common.LogWarn("storage close failed", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
