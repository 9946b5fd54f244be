package pantry

import (
	"ayura/internal/pkg/common"
)

// Inventory 使用者的食材庫存，保存正規化後的名稱並維持加入順序
type Inventory struct {
	items []string
	index map[string]struct{}
}

// NewInventory 由既有項目建立庫存，空字串與重複項會被略過
func NewInventory(items ...string) *Inventory {
	inv := &Inventory{index: make(map[string]struct{})}
	for _, item := range items {
		_, _ = inv.Add(item)
	}
	return inv
}

// Add 加入食材；已存在時不變並回傳 false
func (inv *Inventory) Add(item string) (bool, error) {
	n := Normalize(item)
	if n == "" {
		return false, common.InvalidInput("ingredient name is empty")
	}
	if _, ok := inv.index[n]; ok {
		return false, nil
	}
	inv.index[n] = struct{}{}
	inv.items = append(inv.items, n)
	return true, nil
}

// Remove 移除食材，回傳是否有移除
func (inv *Inventory) Remove(item string) bool {
	n := Normalize(item)
	if _, ok := inv.index[n]; !ok {
		return false
	}
	delete(inv.index, n)
	for i, existing := range inv.items {
		if existing == n {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			break
		}
	}
	return true
}

// Clear 清空庫存
func (inv *Inventory) Clear() {
	inv.items = nil
	inv.index = make(map[string]struct{})
}

// Contains 是否包含食材
func (inv *Inventory) Contains(item string) bool {
	_, ok := inv.index[Normalize(item)]
	return ok
}

// Items 回傳項目副本
func (inv *Inventory) Items() []string {
	out := make([]string, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len 項目數量
func (inv *Inventory) Len() int {
	return len(inv.items)
}
