package pantry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// MaxSuggestions 建議食材上限
const MaxSuggestions = 12

// 常見食材，用於建議
var commonIngredients = []string{
	"rice", "wheat", "salt", "oil", "butter", "milk", "yogurt",
	"chicken", "fish", "mutton", "paneer", "tofu",
	"tomato", "onion", "garlic", "ginger", "potato", "carrot",
	"green peas", "spinach", "cabbage", "cucumber", "bell pepper",
	"turmeric", "cumin", "coriander", "chili powder", "garam masala",
	"lemon", "coconut", "cashew", "peanut", "sesame",
}

// Service 使用者食材庫存服務
type Service struct {
	repo storage.PantryRepository
	// 序列化讀改寫，避免同一程序內的並發更新互相覆蓋
	mu sync.Mutex
}

// NewService 創建食材庫存服務
func NewService(repo storage.PantryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) load(ctx context.Context, userID string) (*Inventory, error) {
	p, err := s.repo.GetPantry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewInventory(p.Items...), nil
}

func (s *Service) save(ctx context.Context, userID string, inv *Inventory) (*common.Pantry, error) {
	p := &common.Pantry{
		UserID:    userID,
		Items:     inv.Items(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.SavePantry(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get 取得使用者食材庫存
func (s *Service) Get(ctx context.Context, userID string) (*common.Pantry, error) {
	inv, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &common.Pantry{UserID: userID, Items: inv.Items()}, nil
}

// AddItems 加入食材，任一項正規化後為空即拒絕整批
func (s *Service) AddItems(ctx context.Context, userID string, items []string) (*common.Pantry, error) {
	if len(items) == 0 {
		return nil, common.InvalidInput("at least one ingredient is required")
	}
	for _, item := range items {
		if Normalize(item) == "" {
			return nil, common.InvalidInput("ingredient name is empty")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	added := 0
	for _, item := range items {
		ok, err := inv.Add(item)
		if err != nil {
			return nil, err
		}
		if ok {
			added++
		}
	}

	p, err := s.save(ctx, userID, inv)
	if err != nil {
		return nil, err
	}
	common.LogDebug("pantry items added", zap.String("user_id", userID), zap.Int("added", added))
	return p, nil
}

// RemoveItem 移除食材，不存在時回傳 NotFound
func (s *Service) RemoveItem(ctx context.Context, userID, item string) (*common.Pantry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !inv.Remove(item) {
		return nil, common.WrapError(common.ErrNotFound, "ingredient not in pantry", nil)
	}
	return s.save(ctx, userID, inv)
}

// Clear 清空食材庫存
func (s *Service) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.DeletePantry(ctx, userID)
}

// Suggestions 回傳尚未加入的常見食材
func (s *Service) Suggestions(ctx context.Context, userID string) ([]string, error) {
	inv, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SuggestedIngredients(inv), nil
}

// SuggestedIngredients 列出庫存中沒有的常見食材，最多 MaxSuggestions 項
func SuggestedIngredients(inv *Inventory) []string {
	out := make([]string, 0, MaxSuggestions)
	for _, item := range commonIngredients {
		if inv.Contains(item) {
			continue
		}
		out = append(out, item)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
