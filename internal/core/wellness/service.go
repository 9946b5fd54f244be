package wellness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

const dateLayout = "2006-01-02"

// 統計區間
var ranges = map[string]int{
	"7days":  7,
	"30days": 30,
	"90days": 90,
}

// DefaultRange 未指定時的統計區間
const DefaultRange = "7days"

// 趨勢
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// trendThreshold 前後半段平均差距低於此值視為持平
const trendThreshold = 0.5

// Averages 各指標平均，四捨五入到小數一位
type Averages struct {
	SleepHours   float64 `json:"sleepHours"`
	SleepQuality float64 `json:"sleepQuality"`
	Stress       float64 `json:"stress"`
	Digestion    float64 `json:"digestion"`
	Energy       float64 `json:"energy"`
}

// Trends 各指標趨勢
type Trends struct {
	Sleep     string `json:"sleep"`
	Stress    string `json:"stress"`
	Digestion string `json:"digestion"`
	Energy    string `json:"energy"`
}

// Insights 區間摘要
type Insights struct {
	Count    int      `json:"count"`
	Averages Averages `json:"averages"`
	Trends   Trends   `json:"trends"`
}

// Stats 區間統計
type Stats struct {
	Range    string               `json:"range"`
	From     string               `json:"from"`
	To       string               `json:"to"`
	Logs     []common.WellnessLog `json:"logs"`
	Insights Insights             `json:"insights"`
}

// Service 健康紀錄服務
type Service struct {
	repo     storage.WellnessRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewService 創建健康紀錄服務
func NewService(repo storage.WellnessRepository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// Save 驗證後依 userId + date 新增或覆寫
func (s *Service) Save(ctx context.Context, userID string, entry common.WellnessLog) (*common.WellnessLog, error) {
	entry.Date = strings.TrimSpace(entry.Date)
	if err := s.validate.Struct(entry); err != nil {
		return nil, validationError(err)
	}

	now := s.now().UTC()
	entry.UserID = userID
	entry.ID = ""
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Mood == nil {
		entry.Mood = []string{}
	}

	saved, err := s.repo.UpsertLog(ctx, &entry)
	if err != nil {
		return nil, err
	}
	common.LogInfo("wellness log saved",
		zap.String("user_id", userID),
		zap.String("date", saved.Date),
	)
	return saved, nil
}

// Get 取得指定日期的紀錄
func (s *Service) Get(ctx context.Context, userID, date string) (*common.WellnessLog, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, common.InvalidInput("date must be formatted as YYYY-MM-DD")
	}
	return s.repo.GetLog(ctx, userID, date)
}

// List 所有紀錄，由新到舊
func (s *Service) List(ctx context.Context, userID string) ([]common.WellnessLog, error) {
	logs, err := s.repo.ListLogs(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// Stats 區間內的紀錄（由舊到新）與摘要
func (s *Service) Stats(ctx context.Context, userID, rangeName string) (*Stats, error) {
	if rangeName == "" {
		rangeName = DefaultRange
	}
	days, ok := ranges[rangeName]
	if !ok {
		return nil, common.InvalidInput("range must be one of 7days, 30days, 90days")
	}

	today := s.now().UTC()
	from := today.AddDate(0, 0, -(days - 1)).Format(dateLayout)
	to := today.Format(dateLayout)

	logs, err := s.repo.ListLogs(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []common.WellnessLog{}
	}

	return &Stats{
		Range:    rangeName,
		From:     from,
		To:       to,
		Logs:     logs,
		Insights: Summarize(logs),
	}, nil
}

// Summarize 計算平均與趨勢，logs 需由舊到新
func Summarize(logs []common.WellnessLog) Insights {
	out := Insights{
		Count: len(logs),
		Trends: Trends{
			Sleep:     TrendStable,
			Stress:    TrendStable,
			Digestion: TrendStable,
			Energy:    TrendStable,
		},
	}
	if len(logs) == 0 {
		return out
	}

	sleepHours := func(l common.WellnessLog) float64 { return l.Sleep.Hours }
	sleepQuality := func(l common.WellnessLog) float64 { return float64(l.Sleep.Quality) }
	stress := func(l common.WellnessLog) float64 { return float64(l.Stress) }
	digestion := func(l common.WellnessLog) float64 { return float64(l.Digestion) }
	energy := func(l common.WellnessLog) float64 { return float64(l.Energy) }

	out.Averages = Averages{
		SleepHours:   round1(mean(logs, sleepHours)),
		SleepQuality: round1(mean(logs, sleepQuality)),
		Stress:       round1(mean(logs, stress)),
		Digestion:    round1(mean(logs, digestion)),
		Energy:       round1(mean(logs, energy)),
	}

	if len(logs) < 2 {
		return out
	}
	first, second := logs[:len(logs)/2], logs[len(logs)/2:]
	out.Trends = Trends{
		Sleep:     trend(mean(first, sleepQuality), mean(second, sleepQuality), false),
		Stress:    trend(mean(first, stress), mean(second, stress), true),
		Digestion: trend(mean(first, digestion), mean(second, digestion), false),
		Energy:    trend(mean(first, energy), mean(second, energy), false),
	}
	return out
}

func mean(logs []common.WellnessLog, field func(common.WellnessLog) float64) float64 {
	if len(logs) == 0 {
		return 0
	}
	var sum float64
	for _, l := range logs {
		sum += field(l)
	}
	return sum / float64(len(logs))
}

// trend lowerIsBetter 用於壓力指標
func trend(before, after float64, lowerIsBetter bool) string {
	delta := after - before
	if lowerIsBetter {
		delta = -delta
	}
	switch {
	case delta >= trendThreshold:
		return TrendImproving
	case delta <= -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// validationError 將 validator 的錯誤轉為對外訊息
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return common.InvalidInput("invalid log entry")
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fieldName(fe.Namespace()), fe.Tag()))
	}
	return common.InvalidInput(strings.Join(parts, "; "))
}

// fieldName WellnessLog.Sleep.Hours -> sleep.hours
func fieldName(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	segs := strings.Split(ns, ".")
	for i, s := range segs {
		if s != "" {
			segs[i] = strings.ToLower(s[:1]) + s[1:]
		}
	}
	return strings.Join(segs, ".")
}
