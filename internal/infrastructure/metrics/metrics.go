package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP 指標
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ayura_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ayura_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 業務指標
	quizSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ayura_quiz_submissions_total",
			Help: "Quiz submissions by dominant dosha",
		},
		[]string{"dominant"},
	)
	catalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ayura_recipe_catalog_fetches_total",
			Help: "Recipe catalog loads by source and outcome",
		},
		[]string{"source", "status"},
	)
	catalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ayura_recipe_catalog_fetch_duration_seconds",
			Help:    "Upstream recipe catalog fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	recipeMatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ayura_recipe_match_requests_total",
			Help: "Pantry to recipe match requests served",
		},
	)
	chatRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ayura_chat_replies_total",
			Help: "Chat replies by answer source",
		},
		[]string{"source"},
	)
	usersRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ayura_users_registered_total",
			Help: "Registered users by role",
		},
		[]string{"role"},
	)
)

// ObserveHTTPRequest 記錄單次 HTTP 請求
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// QuizSubmitted 記錄問卷提交
func QuizSubmitted(dominant string) {
	quizSubmissionsTotal.WithLabelValues(dominant).Inc()
}

// CatalogFetched 記錄食譜目錄載入；source 為 cache 或 upstream
func CatalogFetched(source string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	catalogFetchesTotal.WithLabelValues(source, status).Inc()
}

// ObserveCatalogFetch 記錄上游請求耗時
func ObserveCatalogFetch(duration time.Duration) {
	catalogFetchDuration.Observe(duration.Seconds())
}

// RecipeMatched 記錄食譜比對請求
func RecipeMatched() {
	recipeMatchesTotal.Inc()
}

// ChatReplied 記錄聊天回覆來源
func ChatReplied(source string) {
	chatRepliesTotal.WithLabelValues(source).Inc()
}

// UserRegistered 記錄註冊
func UserRegistered(role string) {
	usersRegisteredTotal.WithLabelValues(role).Inc()
}

// Handler Prometheus 指標端點
func Handler() http.Handler {
	return promhttp.Handler()
}
