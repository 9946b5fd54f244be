package chat

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"ayura/internal/core/ai"
	"ayura/internal/core/dosha"
	"ayura/internal/infrastructure/metrics"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

const (
	// HistoryLimit 歷史紀錄筆數
	HistoryLimit = 50
	// MaxMessageLength 單則訊息上限（字元）
	MaxMessageLength = 2000

	// persistTimeout 保存對話的逾時
	persistTimeout = 5 * time.Second

	SourceRules = "rules"
	SourceAI    = "ai"
)

// Repository 對話需要的儲存能力
type Repository interface {
	storage.UserRepository
	storage.ChatRepository
}

// RecentMetrics 用戶端提供的近期狀態，皆為選填
type RecentMetrics struct {
	RecentSleep     *float64 `json:"recentSleep"`
	RecentStress    *int     `json:"recentStress"`
	RecentDigestion *int     `json:"recentDigestion"`
}

// Context 產生回覆所需的使用者狀態
type Context struct {
	Dosha       dosha.Dosha
	HealthGoals []string
	Recent      RecentMetrics
}

// Reply 一次對話的回覆
type Reply struct {
	ID          string    `json:"id"`
	UserMessage string    `json:"userMessage"`
	AIResponse  string    `json:"aiResponse"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service 對話助理
type Service struct {
	repo      Repository
	completer ai.Completer
	now       func() time.Time
}

// NewService completer 為 nil 時只使用規則回覆
func NewService(repo Repository, completer ai.Completer) *Service {
	return &Service{repo: repo, completer: completer, now: time.Now}
}

// Send 產生回覆並保存
func (s *Service) Send(ctx context.Context, userID, message string, recent RecentMetrics) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, common.InvalidInput("message is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, common.InvalidInput(fmt.Sprintf("message must be at most %d characters", MaxMessageLength))
	}
	if err := validateRecent(recent); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cc := Context{
		Dosha:       dosha.Dosha(user.Dosha),
		HealthGoals: user.HealthGoals,
		Recent:      recent,
	}

	answer, source := RuleReply(message, cc), SourceRules
	if s.completer != nil {
		reply, err := s.completer.Complete(ctx, systemPrompt(cc), message)
		if err != nil {
			common.LogWarn("assistant fallback to rules",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			answer, source = reply, SourceAI
		}
	}

	msg := &common.ChatMessage{
		ID:          common.GenerateUUID(),
		UserID:      userID,
		UserMessage: message,
		AIResponse:  answer,
		Source:      source,
		CreatedAt:   s.now().UTC(),
	}
	// 模型逾時後請求 context 已失效，保存時改用獨立的逾時
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.repo.InsertChatMessage(saveCtx, msg); err != nil {
		return nil, err
	}
	metrics.ChatReplied(source)

	return &Reply{
		ID:          msg.ID,
		UserMessage: msg.UserMessage,
		AIResponse:  msg.AIResponse,
		Source:      msg.Source,
		CreatedAt:   msg.CreatedAt,
	}, nil
}

// History 最近的對話，由舊到新
func (s *Service) History(ctx context.Context, userID string) ([]common.ChatMessage, error) {
	msgs, err := s.repo.ListChatMessages(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []common.ChatMessage{}
	}
	return msgs, nil
}

func validateRecent(r RecentMetrics) error {
	if r.RecentSleep != nil && (*r.RecentSleep < 0 || *r.RecentSleep > 24) {
		return common.InvalidInput("recentSleep must be between 0 and 24")
	}
	if r.RecentStress != nil && (*r.RecentStress < 0 || *r.RecentStress > 10) {
		return common.InvalidInput("recentStress must be between 0 and 10")
	}
	if r.RecentDigestion != nil && (*r.RecentDigestion < 0 || *r.RecentDigestion > 10) {
		return common.InvalidInput("recentDigestion must be between 0 and 10")
	}
	return nil
}

func systemPrompt(cc Context) string {
	var b strings.Builder
	b.WriteString("You are Ayura, a friendly Ayurvedic wellness companion. ")
	b.WriteString("Give short, practical lifestyle and food suggestions. Do not diagnose or prescribe medication.\n")
	if cc.Dosha.Valid() {
		fmt.Fprintf(&b, "The user's dominant dosha is %s.\n", cc.Dosha)
	} else {
		b.WriteString("The user has not taken the dosha quiz yet.\n")
	}
	if len(cc.HealthGoals) > 0 {
		fmt.Fprintf(&b, "Health goals: %s.\n", common.StringSliceToString(cc.HealthGoals))
	}
	if cc.Recent.RecentSleep != nil {
		fmt.Fprintf(&b, "Recent sleep: %.1f hours.\n", *cc.Recent.RecentSleep)
	}
	if cc.Recent.RecentStress != nil {
		fmt.Fprintf(&b, "Recent stress: %d/10.\n", *cc.Recent.RecentStress)
	}
	if cc.Recent.RecentDigestion != nil {
		fmt.Fprintf(&b, "Recent digestion: %d/10.\n", *cc.Recent.RecentDigestion)
	}
	return b.String()
}
