package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"ayura/internal/infrastructure/config"
	"ayura/internal/infrastructure/metrics"
	"ayura/internal/pkg/common"
)

// CatalogSource 食譜目錄來源
type CatalogSource interface {
	FetchRecipes(ctx context.Context) ([]common.Recipe, error)
}

// CatalogClient 以 HTTP 取得外部食譜目錄
type CatalogClient struct {
	client *resty.Client
	url    string
}

// NewCatalogClient 創建食譜目錄客戶端
//
// 傳輸錯誤與 5xx 回應會以指數退避重試 retry_count 次。
func NewCatalogClient(cfg config.RecipesConfig) *CatalogClient {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() >= http.StatusInternalServerError
		})

	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &CatalogClient{
		client: client,
		url:    cfg.BaseURL,
	}
}

// FetchRecipes 取得食譜目錄
func (c *CatalogClient) FetchRecipes(ctx context.Context) ([]common.Recipe, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.url)

	attempts := 1
	if resp != nil && resp.Request != nil {
		attempts = resp.Request.Attempt
	}
	duration := time.Since(start)
	metrics.ObserveCatalogFetch(duration)

	if err != nil {
		common.LogUpstreamCall("recipes", duration, attempts, err)
		return nil, common.WrapError(common.ErrUpstreamFetch, "recipe source unavailable", err)
	}

	if resp.IsError() {
		err := fmt.Errorf("recipe source returned status %d", resp.StatusCode())
		common.LogUpstreamCall("recipes", duration, attempts, err)
		return nil, common.WrapError(common.ErrUpstreamFetch, "recipe source unavailable", err)
	}

	recipes, err := decodeCatalog(resp.Body())
	if err != nil {
		common.LogUpstreamCall("recipes", duration, attempts, err)
		return nil, common.WrapError(common.ErrUpstreamFetch, "unexpected recipe source response", err)
	}

	common.LogUpstreamCall("recipes", duration, attempts, nil)
	common.LogDebug("recipe catalog fetched", zap.Int("count", len(recipes)))
	return recipes, nil
}

// decodeCatalog 接受陣列，或含 recipes / data 陣列的物件
func decodeCatalog(body []byte) ([]common.Recipe, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	switch body[0] {
	case '[':
		var recipes []common.Recipe
		if err := common.ParseJSONBytes(body, &recipes); err != nil {
			return nil, fmt.Errorf("failed to parse recipe list: %w", err)
		}
		return recipes, nil
	case '{':
		var envelope struct {
			Recipes json.RawMessage `json:"recipes"`
			Data    json.RawMessage `json:"data"`
		}
		if err := common.ParseJSONBytes(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse recipe envelope: %w", err)
		}
		for _, raw := range []json.RawMessage{envelope.Recipes, envelope.Data} {
			raw = bytes.TrimSpace(raw)
			if len(raw) == 0 || raw[0] != '[' {
				continue
			}
			var recipes []common.Recipe
			if err := common.ParseJSONBytes(raw, &recipes); err != nil {
				return nil, fmt.Errorf("failed to parse recipe list: %w", err)
			}
			return recipes, nil
		}
		return nil, fmt.Errorf("response object has no recipe list")
	default:
		return nil, fmt.Errorf("unexpected response shape")
	}
}
