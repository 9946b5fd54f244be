package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ayura/internal/pkg/common"
)

// DefaultDedupWindow 未設定時的去重時間窗
const DefaultDedupWindow = time.Second

// Deduplicator 拒絕時間窗內重複送出的寫入請求
type Deduplicator struct {
	mu        sync.Mutex
	requests  map[string]time.Time
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewDeduplicator 創建去重器
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &Deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		now:      time.Now,
	}
}

// seen 記錄指紋，時間窗內已出現過時回傳 true
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.lastSweep) > 10*d.window {
		for k, t := range d.requests {
			if now.Sub(t) > d.window {
				delete(d.requests, k)
			}
		}
		d.lastSweep = now
	}

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// forget 移除指紋，失敗的請求可立即重試
func (d *Deduplicator) forget(fingerprint string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.requests, fingerprint)
}

// Deduplication 請求去重中間件，指紋為使用者 + 方法 + 路徑 + 請求體哈希
func Deduplication(window time.Duration) gin.HandlerFunc {
	d := NewDeduplicator(window)
	return d.Handler()
}

// Handler 以 gin 中間件形式套用去重
func (d *Deduplicator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					abort(c, common.ErrTooLarge)
					return
				}
				common.LogError("Failed to read request body", zap.Error(err))
				abort(c, common.InvalidInput("unreadable request body"))
				return
			}
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		fingerprint := UserID(c) + "|" + c.Request.Method + ":" + c.Request.URL.Path + ":" + bodyHash
		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("user_id", UserID(c)),
			)
			abort(c, common.WrapError(common.ErrTooManyRequests, "duplicate request", nil))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			d.forget(fingerprint)
		}
	}
}
