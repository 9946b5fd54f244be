package meals

import (
	"context"
	"slices"
	"strings"

	"ayura/internal/core/dosha"
	"ayura/internal/core/pantry"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// All 不套用該篩選條件
const All = "all"

// Filter 查詢條件，空字串或 all 表示不篩選
type Filter struct {
	MealType   string `form:"mealType"`
	Difficulty string `form:"difficulty"`
	Search     string `form:"search"`
	Dosha      string `form:"dosha"`
}

// Result 查詢結果
type Result struct {
	Meals []Meal `json:"recipes"`
	Total int    `json:"total"`
	Dosha string `json:"dosha,omitempty"`
}

// Service 餐點推薦
type Service struct {
	users storage.UserRepository
}

// NewService users 可為 nil，此時不會套用使用者體質
func NewService(users storage.UserRepository) *Service {
	return &Service{users: users}
}

// List 篩選餐點；未指定 dosha 且 userID 非空時使用使用者已儲存的體質
func (s *Service) List(ctx context.Context, userID string, f Filter) (*Result, error) {
	f.MealType = strings.ToLower(strings.TrimSpace(f.MealType))
	f.Difficulty = strings.ToLower(strings.TrimSpace(f.Difficulty))
	f.Dosha = strings.ToLower(strings.TrimSpace(f.Dosha))

	if f.MealType != "" && f.MealType != All && !slices.Contains(mealTypes, f.MealType) {
		return nil, common.InvalidInput("mealType must be one of all, breakfast, lunch, dinner, snack")
	}
	if f.Difficulty != "" && f.Difficulty != All && !slices.Contains(difficulties, f.Difficulty) {
		return nil, common.InvalidInput("difficulty must be one of all, easy, medium, hard")
	}
	if f.Dosha != "" && f.Dosha != All && !dosha.Dosha(f.Dosha).Valid() {
		return nil, common.InvalidInput("dosha must be one of all, vata, pitta, kapha")
	}

	if f.Dosha == "" && userID != "" && s.users != nil {
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		f.Dosha = user.Dosha
	}

	search := pantry.Normalize(f.Search)
	out := make([]Meal, 0, len(catalog))
	for _, m := range catalog {
		if active(f.MealType) && m.MealType != f.MealType {
			continue
		}
		if active(f.Difficulty) && m.Difficulty != f.Difficulty {
			continue
		}
		if active(f.Dosha) && !slices.Contains(m.Doshas, dosha.Dosha(f.Dosha)) {
			continue
		}
		if search != "" && !matchesSearch(m, search) {
			continue
		}
		out = append(out, clone(m))
	}

	res := &Result{Meals: out, Total: len(out)}
	if active(f.Dosha) {
		res.Dosha = f.Dosha
	}
	return res, nil
}

func active(v string) bool {
	return v != "" && v != All
}

func matchesSearch(m Meal, search string) bool {
	if strings.Contains(pantry.Normalize(m.Name), search) ||
		strings.Contains(pantry.Normalize(m.Description), search) {
		return true
	}
	for _, ing := range m.Ingredients {
		if strings.Contains(pantry.Normalize(ing), search) {
			return true
		}
	}
	return false
}

func clone(m Meal) Meal {
	m.Ingredients = slices.Clone(m.Ingredients)
	m.Doshas = slices.Clone(m.Doshas)
	return m
}
