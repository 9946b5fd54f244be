package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"ayura/internal/core/cache"
	"ayura/internal/core/pantry"
	"ayura/internal/infrastructure/metrics"
	"ayura/internal/pkg/common"
)

// catalogCacheKey 食譜目錄快取鍵
const catalogCacheKey = "recipes:catalog"

// MatchRequest 比對請求
type MatchRequest struct {
	PantryItems []string
	Options     pantry.MatchOptions
	// Limit 只回傳前 N 筆，<= 0 表示全部
	Limit int
}

// MatchResult 比對結果與統計
type MatchResult struct {
	Recipes      []pantry.RecipeMatch `json:"recipes"`
	TotalRecipes int                  `json:"totalRecipes"`
	PantryCount  int                  `json:"pantryCount"`
	MatchedCount int                  `json:"matchedCount"`
	BestMatch    int                  `json:"bestMatch"`
	AverageMatch int                  `json:"averageMatch"`
}

// Service 食譜比對服務
type Service struct {
	source   CatalogSource
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService 創建食譜比對服務
func NewService(source CatalogSource, c cache.Cache, cacheTTL time.Duration) *Service {
	return &Service{
		source:   source,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Match 以食材庫比對食譜目錄
func (s *Service) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	items := pantry.NewInventory(req.PantryItems...).Items()
	if len(items) == 0 {
		return nil, common.InvalidInput("pantry items are required")
	}

	recipes, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	matches := pantry.Match(items, recipes, req.Options)
	result := &MatchResult{
		TotalRecipes: len(recipes),
		PantryCount:  len(items),
		MatchedCount: len(matches),
	}

	if len(matches) > 0 {
		sum := 0
		for _, m := range matches {
			sum += m.MatchPercentage
			if m.MatchPercentage > result.BestMatch {
				result.BestMatch = m.MatchPercentage
			}
		}
		result.AverageMatch = common.RoundPercent(sum, len(matches)*100)
	}

	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}
	result.Recipes = matches

	metrics.RecipeMatched()
	common.LogInfo("recipes matched",
		zap.Int("pantry_count", result.PantryCount),
		zap.Int("total_recipes", result.TotalRecipes),
		zap.Int("matched", result.MatchedCount),
	)
	return result, nil
}

// Catalog 取得食譜目錄，優先使用快取
func (s *Service) Catalog(ctx context.Context) ([]common.Recipe, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var recipes []common.Recipe
			if err := json.Unmarshal(data, &recipes); err == nil {
				metrics.CatalogFetched("cache", nil)
				return recipes, nil
			}
			common.LogWarn("discarding unreadable cached catalog")
		} else if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("catalog cache lookup failed", zap.Error(err))
		}
	}

	recipes, err := s.source.FetchRecipes(ctx)
	metrics.CatalogFetched("upstream", err)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		data, err := json.Marshal(recipes)
		if err == nil {
			err = s.cache.Set(ctx, catalogCacheKey, data, s.cacheTTL)
		}
		if err != nil {
			common.LogWarn("failed to cache recipe catalog", zap.Error(err))
		}
	}

	return recipes, nil
}
