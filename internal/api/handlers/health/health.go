package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ayura/internal/core/ai"
	"ayura/internal/pkg/common"
)

// pingTimeout 就緒檢查的儲存連線逾時
const pingTimeout = 2 * time.Second

// Pinger 可檢查連線的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueReporter 回報模型請求隊列狀態
type QueueReporter interface {
	Status() ai.QueueStatus
}

// CacheReporter 回報食譜快取統計
type CacheReporter interface {
	GetStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Storage   string                 `json:"storage"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *ai.QueueStatus        `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version string
	driver  string
	store   Pinger
	queue   QueueReporter
	cache   CacheReporter
}

// NewHandler 創建健康檢查處理器
func NewHandler(version, driver string, store Pinger) *Handler {
	return &Handler{version: version, driver: driver, store: store}
}

// WithQueue 在健康檢查中附上隊列狀態
func (h *Handler) WithQueue(q QueueReporter) *Handler {
	h.queue = q
	return h
}

// WithCache 在健康檢查中附上快取統計
func (h *Handler) WithCache(c CacheReporter) *Handler {
	h.cache = c
	return h
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Storage:   h.driver,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.queue != nil {
		status := h.queue.Status()
		resp.Queue = &status
	}
	if h.cache != nil {
		resp.Cache = h.cache.GetStats()
	}

	c.JSON(http.StatusOK, resp)
}

// ReadinessCheck 就緒檢查：儲存可連線
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		common.LogWarn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, common.ErrServiceUnavailable.Response())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
