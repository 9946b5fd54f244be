package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authHandler "ayura/internal/api/handlers/auth"
	chatHandler "ayura/internal/api/handlers/chat"
	foodHandler "ayura/internal/api/handlers/food"
	"ayura/internal/api/handlers/health"
	mealsHandler "ayura/internal/api/handlers/meals"
	profileHandler "ayura/internal/api/handlers/profile"
	quizHandler "ayura/internal/api/handlers/quiz"
	recipeHandler "ayura/internal/api/handlers/recipe"
	wellnessHandler "ayura/internal/api/handlers/wellness"
	"ayura/internal/api/middleware"
	"ayura/internal/core/ai"
	"ayura/internal/core/auth"
	"ayura/internal/core/cache"
	"ayura/internal/core/chat"
	"ayura/internal/core/meals"
	"ayura/internal/core/pantry"
	"ayura/internal/core/quiz"
	"ayura/internal/core/recipe"
	"ayura/internal/core/user"
	"ayura/internal/core/wellness"
	"ayura/internal/infrastructure/config"
	"ayura/internal/infrastructure/metrics"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// 請求逾時
const timeoutDuration = 30 * time.Second

// Services 路由使用的服務
type Services struct {
	Store    storage.Store
	Cache    cache.Cache
	Auth     *auth.Service
	Users    *user.Service
	Quiz     *quiz.Service
	Pantry   *pantry.Service
	Recipes  *recipe.Service
	Wellness *wellness.Service
	Meals    *meals.Service
	Chat     *chat.Service
	// Queue 僅在啟用模型時存在
	Queue    *ai.Queue
}

// NewServices 以指定的食譜來源與對話模型組裝服務，completer 可為 nil
func NewServices(cfg *config.Config, store storage.Store, c cache.Cache, source recipe.CatalogSource, completer ai.Completer) *Services {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	return &Services{
		Store:    store,
		Cache:    c,
		Auth:     auth.NewService(store, tokens, cfg.Auth),
		Users:    user.NewService(store),
		Quiz:     quiz.NewService(store),
		Pantry:   pantry.NewService(store),
		Recipes:  recipe.NewService(source, c, cfg.Recipes.CacheTTL),
		Wellness: wellness.NewService(store),
		Meals:    meals.NewService(store),
		Chat:     chat.NewService(store, completer),
	}
}

// BuildServices 依設定建立外部客戶端並組裝服務
func BuildServices(cfg *config.Config, store storage.Store, c cache.Cache) *Services {
	source := recipe.NewCatalogClient(cfg.Recipes)
	if !cfg.OpenRouter.Enabled || cfg.OpenRouter.APIKey == "" {
		if cfg.OpenRouter.Enabled {
			common.LogWarn("openrouter enabled without api key, chat uses rule answers")
		}
		return NewServices(cfg, store, c, source, nil)
	}

	queue := ai.NewQueue(ai.NewOpenRouterClient(cfg.OpenRouter), cfg.OpenRouter.Workers, cfg.OpenRouter.QueueSize)
	svc := NewServices(cfg, store, c, source, queue)
	svc.Queue = queue
	return svc
}

// Close 停止背景 worker
func (s *Services) Close() {
	if s.Queue != nil {
		s.Queue.Close()
	}
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(requestid.New())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	if cfg.BodyLimit > 0 {
		router.Use(middleware.BodySizeLimit(cfg.BodyLimit))
	}
	router.Use(middleware.Timeout(timeoutDuration))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, cfg.Storage.Driver, svc.Store)
	if svc.Queue != nil {
		healthHandler.WithQueue(svc.Queue)
	}
	if stats, ok := svc.Cache.(health.CacheReporter); ok {
		healthHandler.WithCache(stats)
	}
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	tokens := svc.Auth.Tokens()
	requireAuth := middleware.Auth(tokens)
	dedup := middleware.Deduplication(cfg.DedupWindow)

	auths := authHandler.NewHandler(svc.Auth)
	profiles := profileHandler.NewHandler(svc.Users)
	quizzes := quizHandler.NewHandler(svc.Quiz)
	recipes := recipeHandler.NewHandler(svc.Recipes, svc.Pantry)
	logs := wellnessHandler.NewHandler(svc.Wellness)
	mealList := mealsHandler.NewHandler(svc.Meals)
	chats := chatHandler.NewHandler(svc.Chat)

	// API 路由組
	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", auths.HandleSignup)
			authGroup.POST("/login", auths.HandleLogin)
		}

		profileGroup := v1.Group("/profile", requireAuth)
		{
			profileGroup.GET("", profiles.HandleGet)
			profileGroup.PUT("", dedup, profiles.HandleUpdate)
		}

		quizGroup := v1.Group("/quiz")
		{
			quizGroup.GET("/questions", quizzes.HandleQuestions)
			quizGroup.POST("/submit", requireAuth, dedup, quizzes.HandleSubmit)
			quizGroup.GET("/result", requireAuth, quizzes.HandleResult)
			quizGroup.GET("/history", requireAuth, quizzes.HandleHistory)
		}

		v1.POST("/recipes/match", recipes.HandleMatch)

		pantryGroup := v1.Group("/pantry", requireAuth)
		{
			pantryGroup.GET("", recipes.HandleGetPantry)
			pantryGroup.DELETE("", recipes.HandleClearPantry)
			pantryGroup.POST("/items", dedup, recipes.HandleAddItems)
			pantryGroup.DELETE("/items/:item", recipes.HandleRemoveItem)
			pantryGroup.GET("/suggestions", recipes.HandleSuggestions)
			pantryGroup.POST("/match", recipes.HandleMatchPantry)
		}

		v1.GET("/food/compatibility", foodHandler.HandleCompatibility)

		logGroup := v1.Group("/logs", requireAuth)
		{
			logGroup.POST("", dedup, logs.HandleSave)
			logGroup.GET("", logs.HandleList)
			logGroup.GET("/stats", logs.HandleStats)
		}

		v1.GET("/meals", middleware.OptionalAuth(tokens), mealList.HandleList)

		chatGroup := v1.Group("/chat", requireAuth)
		{
			chatGroup.POST("", dedup, chats.HandleSend)
			chatGroup.GET("", chats.HandleHistory)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.WrapError(common.ErrNotFound, "route not found", nil).Response())
	})

	common.LogInfo("Router setup completed successfully",
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", cfg.BodyLimit),
		zap.Duration("timeout", timeoutDuration),
	)

	return router
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}
