package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ayura/internal/pkg/common"
)

// MemoryStore 記憶體儲存，重啟後資料消失
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]*common.User
	emails map[string]string
	quiz   []common.QuizResponse
	pantry map[string]common.Pantry
	logs   map[string]map[string]common.WellnessLog // userID -> date -> log
	chats  []common.ChatMessage
	closed bool
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*common.User),
		emails: make(map[string]string),
		pantry: make(map[string]common.Pantry),
		logs:   make(map[string]map[string]common.WellnessLog),
	}
}

func copyUser(u *common.User) *common.User {
	c := *u
	if u.DoshaPercentages != nil {
		c.DoshaPercentages = make(map[string]int, len(u.DoshaPercentages))
		for k, v := range u.DoshaPercentages {
			c.DoshaPercentages[k] = v
		}
	}
	c.HealthGoals = append([]string(nil), u.HealthGoals...)
	c.DietaryRestrictions = append([]string(nil), u.DietaryRestrictions...)
	c.CurrentHealthIssues = append([]string(nil), u.CurrentHealthIssues...)
	if u.Doctor != nil {
		d := *u.Doctor
		c.Doctor = &d
	}
	return &c
}

func copyQuizResponse(r common.QuizResponse) common.QuizResponse {
	c := r
	c.Answers = append([]common.QuizAnswerRecord(nil), r.Answers...)
	if r.DoshaResult.Percentages != nil {
		c.DoshaResult.Percentages = make(map[string]int, len(r.DoshaResult.Percentages))
		for k, v := range r.DoshaResult.Percentages {
			c.DoshaResult.Percentages[k] = v
		}
	}
	return c
}

func copyLog(l common.WellnessLog) common.WellnessLog {
	c := l
	c.Mood = append([]string{}, l.Mood...)
	return c
}

func (s *MemoryStore) CreateUser(_ context.Context, user *common.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := s.emails[email]; ok {
		return common.WrapError(common.ErrConflict, "email already registered", nil)
	}
	if user.ID == "" {
		user.ID = common.GenerateUUID()
	}
	s.users[user.ID] = copyUser(user)
	s.emails[email] = user.ID
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*common.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.WrapError(common.ErrNotFound, "user not found", nil)
	}
	return copyUser(u), nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*common.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, common.WrapError(common.ErrNotFound, "user not found", nil)
	}
	return copyUser(s.users[id]), nil
}

func (s *MemoryStore) UpdateUserDosha(_ context.Context, id string, result common.DoshaResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, "user not found", nil)
	}
	u.Dosha = result.Dominant
	u.DoshaPercentages = make(map[string]int, len(result.Percentages))
	for k, v := range result.Percentages {
		u.DoshaPercentages[k] = v
	}
	u.QuizCompleted = true
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) UpdateUserProfile(_ context.Context, id string, profile common.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return common.WrapError(common.ErrNotFound, "user not found", nil)
	}
	u.Profile = profile
	u.ProfileCompleted = true
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) InsertQuizResponse(_ context.Context, resp *common.QuizResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.ID == "" {
		resp.ID = common.GenerateUUID()
	}
	s.quiz = append(s.quiz, copyQuizResponse(*resp))
	return nil
}

func (s *MemoryStore) ListQuizResponses(_ context.Context, userID string, limit int) ([]common.QuizResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.QuizResponse, 0)
	for i := len(s.quiz) - 1; i >= 0; i-- {
		if s.quiz[i].UserID != userID {
			continue
		}
		out = append(out, copyQuizResponse(s.quiz[i]))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) GetPantry(_ context.Context, userID string) (*common.Pantry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pantry[userID]
	if !ok {
		return &common.Pantry{UserID: userID, Items: []string{}}, nil
	}
	p.Items = append([]string{}, p.Items...)
	return &p, nil
}

func (s *MemoryStore) SavePantry(_ context.Context, pantry *common.Pantry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *pantry
	p.Items = append([]string{}, pantry.Items...)
	s.pantry[pantry.UserID] = p
	return nil
}

func (s *MemoryStore) DeletePantry(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pantry, userID)
	return nil
}

func (s *MemoryStore) UpsertLog(_ context.Context, log *common.WellnessLog) (*common.WellnessLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.logs[log.UserID]
	if !ok {
		byDate = make(map[string]common.WellnessLog)
		s.logs[log.UserID] = byDate
	}

	c := copyLog(*log)
	if existing, ok := byDate[log.Date]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else if c.ID == "" {
		c.ID = common.GenerateUUID()
	}
	byDate[log.Date] = c

	out := copyLog(c)
	return &out, nil
}

func (s *MemoryStore) GetLog(_ context.Context, userID, date string) (*common.WellnessLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.logs[userID][date]
	if !ok {
		return nil, common.WrapError(common.ErrNotFound, "log not found", nil)
	}
	l = copyLog(l)
	return &l, nil
}

func (s *MemoryStore) ListLogs(_ context.Context, userID, from, to string) ([]common.WellnessLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.WellnessLog, 0)
	for date, l := range s.logs[userID] {
		// YYYY-MM-DD 可直接以字串比較
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		out = append(out, copyLog(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemoryStore) InsertChatMessage(_ context.Context, msg *common.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = common.GenerateUUID()
	}
	s.chats = append(s.chats, *msg)
	return nil
}

func (s *MemoryStore) ListChatMessages(_ context.Context, userID string, limit int) ([]common.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.ChatMessage, 0)
	for i := len(s.chats) - 1; i >= 0; i-- {
		if s.chats[i].UserID != userID {
			continue
		}
		out = append(out, s.chats[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	// 反轉為由舊到新
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return common.WrapError(common.ErrPersistence, "store is closed", nil)
	}
	return nil
}

func (s *MemoryStore) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
