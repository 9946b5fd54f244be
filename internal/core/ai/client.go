package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

// Completer 產生對話回覆
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// OpenRouterClient OpenRouter chat completions 客戶端
type OpenRouterClient struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewOpenRouterClient 創建 OpenRouter 客戶端
func NewOpenRouterClient(cfg config.OpenRouterConfig) *OpenRouterClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "Ayura")

	return &OpenRouterClient{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete 送出 system + user 兩則訊息並回傳第一個回覆
func (c *OpenRouterClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.maxTokens,
	}

	start := time.Now()
	var result Response
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/chat/completions")
	duration := time.Since(start)

	if err != nil {
		common.LogUpstreamCall("openrouter", duration, 1, err)
		return "", common.WrapError(common.ErrUpstreamFetch, "assistant unavailable", err)
	}
	if resp.IsError() {
		err := fmt.Errorf("openrouter returned status %d", resp.StatusCode())
		common.LogUpstreamCall("openrouter", duration, 1, err)
		return "", common.WrapError(common.ErrUpstreamFetch, "assistant unavailable", err)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		err := fmt.Errorf("no choices in openrouter response")
		common.LogUpstreamCall("openrouter", duration, 1, err)
		return "", common.WrapError(common.ErrUpstreamFetch, "assistant unavailable", err)
	}

	common.LogUpstreamCall("openrouter", duration, 1, nil)
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
