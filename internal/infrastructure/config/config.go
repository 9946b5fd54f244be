package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret 開發用預設密鑰，production 環境禁止使用
const DefaultJWTSecret = "ayura-dev-secret-change-me"

// Config 應用配置
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Cache       CacheConfig      `mapstructure:"cache"`
	Recipes     RecipesConfig    `mapstructure:"recipes"`
	Auth        AuthConfig       `mapstructure:"auth"`
	OpenRouter  OpenRouterConfig `mapstructure:"openrouter"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	BodyLimit   int64            `mapstructure:"body_limit"`
	LogLevel    string           `mapstructure:"log_level"`
	LogFile     string           `mapstructure:"log_file"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// StorageConfig 文件儲存設定
type StorageConfig struct {
	Driver string      `mapstructure:"driver"` // mongo | memory
	Mongo  MongoConfig `mapstructure:"mongo"`
}

// MongoConfig MongoDB 連線設定
type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Driver          string        `mapstructure:"driver"` // memory | redis
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecipesConfig 外部食譜目錄設定
type RecipesConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryCount   int           `mapstructure:"retry_count"`
	RetryWait    time.Duration `mapstructure:"retry_wait"`
	RetryMaxWait time.Duration `mapstructure:"retry_max_wait"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// AuthConfig 認證設定
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BaseURL   string        `mapstructure:"base_url"`
	Workers   int           `mapstructure:"workers"`
	QueueSize int           `mapstructure:"queue_size"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"`
}

// IsProduction 是否為正式環境
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string][]string{
		"app.env":                {"APP_ENV"},
		"server.port":            {"APP_SERVER_PORT", "PORT"},
		"storage.driver":         {"APP_STORAGE_DRIVER", "STORAGE_DRIVER"},
		"storage.mongo.uri":      {"APP_STORAGE_MONGO_URI", "MONGODB_URI"},
		"storage.mongo.database": {"APP_STORAGE_MONGO_DATABASE", "MONGODB_DB"},
		"cache.enabled":          {"APP_CACHE_ENABLED", "CACHE_ENABLED"},
		"cache.driver":           {"APP_CACHE_DRIVER", "CACHE_DRIVER"},
		"cache.redis.addr":       {"APP_CACHE_REDIS_ADDR", "REDIS_ADDR"},
		"cache.redis.password":   {"APP_CACHE_REDIS_PASSWORD", "REDIS_PASSWORD"},
		"recipes.base_url":       {"APP_RECIPES_BASE_URL", "RECIPE_API_BASE"},
		"recipes.api_key":        {"APP_RECIPES_API_KEY", "RECIPE_API_KEY"},
		"auth.jwt_secret":        {"APP_AUTH_JWT_SECRET", "JWT_SECRET"},
		"openrouter.enabled":     {"APP_OPENROUTER_ENABLED", "OPENROUTER_ENABLED"},
		"openrouter.api_key":     {"APP_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
		"openrouter.model":       {"APP_OPENROUTER_MODEL", "OPENROUTER_MODEL"},
		"rate_limit.enabled":     {"APP_RATE_LIMIT_ENABLED", "RATE_LIMIT_ENABLED"},
		"rate_limit.requests":    {"APP_RATE_LIMIT_REQUESTS", "RATE_LIMIT_REQUESTS"},
		"rate_limit.window":      {"APP_RATE_LIMIT_WINDOW", "RATE_LIMIT_WINDOW"},
		"dedup_window":           {"APP_DEDUP_WINDOW", "DEDUP_WINDOW"},
		"log_level":              {"APP_LOG_LEVEL", "LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	// 設定設定檔名稱和路徑
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 尚未初始化，改用 fmt.Println
	fmt.Println("Loading configuration",
		"env:", v.GetString("app.env"),
		"storage:", v.GetString("storage.driver"),
		"recipes_api_key:", maskAPIKey(v.GetString("recipes.api_key")),
	)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "ayura")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// 儲存設定
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo.database", "ayura")
	v.SetDefault("storage.mongo.timeout", "10s")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)

	// 食譜目錄設定
	v.SetDefault("recipes.base_url", "https://cosylab.iiitd.edu.in/recipe2-api/recipe/recipesinfo")
	v.SetDefault("recipes.timeout", "15s")
	v.SetDefault("recipes.retry_count", 2)
	v.SetDefault("recipes.retry_wait", "200ms")
	v.SetDefault("recipes.retry_max_wait", "2s")
	v.SetDefault("recipes.cache_ttl", "10m")

	// 認證設定
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl", "168h")
	v.SetDefault("auth.bcrypt_cost", 10)

	// OpenRouter 設定
	v.SetDefault("openrouter.enabled", false)
	v.SetDefault("openrouter.model", "meta-llama/llama-3.1-8b-instruct:free")
	v.SetDefault("openrouter.max_tokens", 400)
	v.SetDefault("openrouter.timeout", "30s")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.workers", 2)
	v.SetDefault("openrouter.queue_size", 20)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("body_limit", 1<<20) // 1MB
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/app.log")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證儲存設定
	switch config.Storage.Driver {
	case "memory":
	case "mongo":
		if config.Storage.Mongo.URI == "" {
			return fmt.Errorf("mongo uri is required")
		}
		if config.Storage.Mongo.Database == "" {
			return fmt.Errorf("mongo database is required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Driver != "memory" && config.Cache.Driver != "redis" {
			return fmt.Errorf("unknown cache driver %q", config.Cache.Driver)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證食譜目錄設定
	if config.Recipes.BaseURL == "" {
		return fmt.Errorf("recipes base url is required")
	}
	if config.Recipes.RetryCount < 0 {
		return fmt.Errorf("invalid recipes retry count")
	}

	// 驗證認證設定
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if config.IsProduction() && config.Auth.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("default jwt secret is not allowed in production")
	}
	if config.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl")
	}
	if config.Auth.BcryptCost < 4 || config.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost")
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit")
		}
	}

	if config.BodyLimit <= 0 {
		return fmt.Errorf("invalid body limit")
	}

	return nil
}
