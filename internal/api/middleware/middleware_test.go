package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayura/internal/core/auth"
	"ayura/internal/pkg/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "role": Role(c)})
	}
	r.GET("/ping", handler)
	r.POST("/ping", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		handler(c)
	})
	return r
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, common.ErrCodeInternalError, decodeError(t, w).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	w := do(r, http.MethodPost, "/ping", "0123456789", nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, common.ErrCodeTooLarge, decodeError(t, w).Code)

	w = do(r, http.MethodPost, "/ping", "small", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	// one token every 30s
	now = now.Add(31 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.Equal(t, 30, rl.RetryAfter())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(NewRateLimiter(1, time.Minute, 1).Handler())

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "", nil).Code)

	w := do(r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, common.ErrCodeTooManyRequests, decodeError(t, w).Code)
}

func TestDeduplication(t *testing.T) {
	d := NewDeduplicator(time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	r := newEngine(d.Handler())

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/ping", `{"a":1}`, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/ping", `{"a":1}`, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/ping", `{"a":2}`, nil).Code)

	// reads are never deduplicated
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "", nil).Code)

	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/ping", `{"a":1}`, nil).Code)
}

func TestDeduplicationAllowsRetryAfterFailure(t *testing.T) {
	d := NewDeduplicator(time.Minute)
	failures := 1
	r := gin.New()
	r.Use(d.Handler())
	r.POST("/match", func(c *gin.Context) {
		if failures > 0 {
			failures--
			c.JSON(http.StatusBadGateway, common.ErrUpstreamFetch.Response())
			return
		}
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusBadGateway, do(r, http.MethodPost, "/match", `{"a":1}`, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/match", `{"a":1}`, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/match", `{"a":1}`, nil).Code)
}

func TestDeduplicationRestoresBody(t *testing.T) {
	r := gin.New()
	r.Use(Deduplication(time.Second))
	r.POST("/echo", func(c *gin.Context) {
		body, err := c.GetRawData()
		require.NoError(t, err)
		c.String(http.StatusOK, string(body))
	})

	w := do(r, http.MethodPost, "/echo", "hello", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Issue("u1", common.RolePatient)
	require.NoError(t, err)
	r := newEngine(Auth(tokens))

	w := do(r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, common.ErrCodeUnauthorized, decodeError(t, w).Code)

	w = do(r, http.MethodGet, "/ping", "", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/ping", "", map[string]string{"Authorization": "Basic " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/ping", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1","role":"patient"}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Issue("u2", common.RoleDoctor)
	require.NoError(t, err)
	r := newEngine(OptionalAuth(tokens))

	w := do(r, http.MethodGet, "/ping", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"","role":""}`, w.Body.String())

	w = do(r, http.MethodGet, "/ping", "", map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"","role":""}`, w.Body.String())

	w = do(r, http.MethodGet, "/ping", "", map[string]string{"Authorization": "bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u2","role":"doctor"}`, w.Body.String())
}
