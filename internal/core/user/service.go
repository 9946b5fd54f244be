package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// 檔案欄位上限
const (
	maxListItems  = 20
	maxFieldChars = 200
	maxAge        = 130
)

// Service 使用者檔案服務
type Service struct {
	users storage.UserRepository
}

// NewService 創建使用者檔案服務
func NewService(users storage.UserRepository) *Service {
	return &Service{users: users}
}

// Get 取得使用者
func (s *Service) Get(ctx context.Context, userID string) (*common.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateProfile 覆寫健康檔案並標記 profileCompleted
func (s *Service) UpdateProfile(ctx context.Context, userID string, profile common.Profile) (*common.User, error) {
	cleaned, err := cleanProfile(profile)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateUserProfile(ctx, userID, cleaned); err != nil {
		return nil, err
	}

	common.LogInfo("profile updated", zap.String("user_id", userID))
	return s.users.GetUserByID(ctx, userID)
}

func cleanProfile(p common.Profile) (common.Profile, error) {
	if p.Age < 0 || p.Age > maxAge {
		return p, common.InvalidInput("age is out of range")
	}

	p.Gender = strings.TrimSpace(p.Gender)
	p.Location = strings.TrimSpace(p.Location)
	p.ProfilePicture = strings.TrimSpace(p.ProfilePicture)
	if len(p.Gender) > maxFieldChars || len(p.Location) > maxFieldChars {
		return p, common.InvalidInput("profile field is too long")
	}

	var err error
	if p.HealthGoals, err = cleanList(p.HealthGoals); err != nil {
		return p, err
	}
	if p.DietaryRestrictions, err = cleanList(p.DietaryRestrictions); err != nil {
		return p, err
	}
	if p.CurrentHealthIssues, err = cleanList(p.CurrentHealthIssues); err != nil {
		return p, err
	}
	return p, nil
}

// cleanList 去除空白項與重複項
func cleanList(items []string) ([]string, error) {
	if len(items) > maxListItems {
		return nil, common.InvalidInput("too many list items")
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if len(item) > maxFieldChars {
			return nil, common.InvalidInput("list item is too long")
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}
