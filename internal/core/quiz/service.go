package quiz

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ayura/internal/core/dosha"
	"ayura/internal/infrastructure/metrics"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// HistoryLimit 歷史紀錄預設筆數
const HistoryLimit = 20

// Repository 問卷提交需要的儲存能力
type Repository interface {
	storage.UserRepository
	storage.QuizRepository
}

// Submission 提交結果
type Submission struct {
	Result  dosha.Result  `json:"doshaResult"`
	Profile dosha.Profile `json:"profile"`
}

// CurrentResult 使用者目前體質
type CurrentResult struct {
	QuizCompleted bool           `json:"quizCompleted"`
	Dominant      string         `json:"dominant,omitempty"`
	Percentages   map[string]int `json:"percentages,omitempty"`
	Profile       *dosha.Profile `json:"profile,omitempty"`
}

// Service 問卷服務
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService 創建問卷服務
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Questions 回傳問卷題目
func (s *Service) Questions() []dosha.Question {
	return dosha.Questions()
}

// Submit 計分、寫入提交紀錄並覆寫使用者體質
func (s *Service) Submit(ctx context.Context, userID string, answers []dosha.QuizAnswer) (*Submission, error) {
	result, err := dosha.Score(answers)
	if err != nil {
		return nil, err
	}

	// 確認使用者存在，避免留下無主的提交紀錄
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	stored := common.DoshaResult{
		Dominant:    string(result.Dominant),
		Percentages: result.PercentageMap(),
	}

	records := make([]common.QuizAnswerRecord, len(answers))
	for i, a := range answers {
		records[i] = common.QuizAnswerRecord{Dosha: string(a.Category), Points: a.Weight}
	}

	resp := &common.QuizResponse{
		ID:          common.GenerateUUID(),
		UserID:      userID,
		Answers:     records,
		DoshaResult: stored,
		CompletedAt: s.now().UTC(),
	}
	if err := s.repo.InsertQuizResponse(ctx, resp); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateUserDosha(ctx, userID, stored); err != nil {
		return nil, err
	}

	metrics.QuizSubmitted(stored.Dominant)
	common.LogInfo("quiz submitted",
		zap.String("user_id", userID),
		zap.String("dominant", stored.Dominant),
	)

	profile, _ := dosha.ProfileFor(result.Dominant)
	return &Submission{Result: result, Profile: profile}, nil
}

// Current 取得使用者目前的體質結果
func (s *Service) Current(ctx context.Context, userID string) (*CurrentResult, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &CurrentResult{QuizCompleted: user.QuizCompleted}
	if !user.QuizCompleted || user.Dosha == "" {
		return out, nil
	}
	out.Dominant = user.Dosha
	out.Percentages = user.DoshaPercentages
	if p, ok := dosha.ProfileFor(dosha.Dosha(user.Dosha)); ok {
		out.Profile = &p
	}
	return out, nil
}

// History 最近的提交紀錄，由新到舊
func (s *Service) History(ctx context.Context, userID string, limit int) ([]common.QuizResponse, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	return s.repo.ListQuizResponses(ctx, userID, limit)
}
