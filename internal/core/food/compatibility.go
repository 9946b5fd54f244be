package food

import (
	"ayura/internal/core/dosha"
	"ayura/internal/core/pantry"
	"ayura/internal/pkg/common"
)

// 相容程度
const (
	Excellent = "excellent"
	Good      = "good"
	Poor      = "poor"
)

// 體質影響
const (
	ImpactIncrease = "increase"
	ImpactDecrease = "decrease"
	ImpactBalance  = "balance"
	ImpactNeutral  = "neutral"
)

// Compatibility 食物組合查詢結果
type Compatibility struct {
	Food1         string                 `json:"food1"`
	Food2         string                 `json:"food2"`
	Compatibility string                 `json:"compatibility"`
	Explanation   string                 `json:"explanation"`
	DoshaImpact   map[dosha.Dosha]string `json:"doshaImpact"`
	Alternatives  []string               `json:"alternatives"`
	Known         bool                   `json:"known"`
}

type pairKey struct{ a, b string }

// key 與順序無關的組合鍵
func key(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

func impact(vata, pitta, kapha string) map[dosha.Dosha]string {
	return map[dosha.Dosha]string{dosha.Vata: vata, dosha.Pitta: pitta, dosha.Kapha: kapha}
}

var combos = map[pairKey]Compatibility{
	key("milk", "fish"): {
		Compatibility: Poor,
		Explanation:   "Milk and fish together disturb digestion and create toxins (ama).",
		DoshaImpact:   impact(ImpactIncrease, ImpactIncrease, ImpactIncrease),
		Alternatives:  []string{"Have fish with rice instead", "Drink milk after 2 hours"},
	},
	key("rice", "mung dal"): {
		Compatibility: Excellent,
		Explanation:   "Rice and mung dal form a complete protein and are very easy to digest.",
		DoshaImpact:   impact(ImpactBalance, ImpactBalance, ImpactBalance),
	},
	key("milk", "banana"): {
		Compatibility: Poor,
		Explanation:   "Milk and banana together are heavy and slow digestion.",
		DoshaImpact:   impact(ImpactNeutral, ImpactNeutral, ImpactIncrease),
		Alternatives:  []string{"Eat banana on its own", "Use a well-ripened mango with warm milk"},
	},
	key("honey", "ghee"): {
		Compatibility: Poor,
		Explanation:   "Honey and ghee in equal amounts are considered incompatible.",
		DoshaImpact:   impact(ImpactIncrease, ImpactIncrease, ImpactIncrease),
		Alternatives:  []string{"Use them in clearly unequal amounts", "Use one of them at a time"},
	},
	key("yogurt", "fruit"): {
		Compatibility: Poor,
		Explanation:   "Yogurt with fruit can dampen digestive fire and create congestion.",
		DoshaImpact:   impact(ImpactNeutral, ImpactIncrease, ImpactIncrease),
		Alternatives:  []string{"Have fruit alone between meals", "Have yogurt with cumin and salt"},
	},
	key("milk", "lemon"): {
		Compatibility: Poor,
		Explanation:   "Sour lemon curdles milk in the stomach and upsets digestion.",
		DoshaImpact:   impact(ImpactNeutral, ImpactIncrease, ImpactIncrease),
		Alternatives:  []string{"Keep sour foods and milk apart by a few hours"},
	},
	key("honey", "hot water"): {
		Compatibility: Poor,
		Explanation:   "Heated honey is considered to become hard to digest.",
		DoshaImpact:   impact(ImpactNeutral, ImpactIncrease, ImpactNeutral),
		Alternatives:  []string{"Let water cool to lukewarm before adding honey"},
	},
	key("ghee", "rice"): {
		Compatibility: Excellent,
		Explanation:   "A little ghee with rice supports digestion and absorption.",
		DoshaImpact:   impact(ImpactDecrease, ImpactDecrease, ImpactIncrease),
	},
}

// Check 查詢兩種食物的相容程度，與順序無關；未知組合回傳一般性結果
func Check(food1, food2 string) (Compatibility, error) {
	a, b := pantry.Normalize(food1), pantry.Normalize(food2)
	if a == "" || b == "" {
		return Compatibility{}, common.InvalidInput("food1 and food2 are required")
	}
	if a == b {
		return Compatibility{}, common.InvalidInput("food1 and food2 must differ")
	}

	result, ok := combos[key(a, b)]
	if !ok {
		result = Compatibility{
			Compatibility: Good,
			Explanation:   "This combination is generally safe but depends on digestion strength.",
			DoshaImpact:   impact(ImpactNeutral, ImpactNeutral, ImpactNeutral),
		}
	}

	result.Food1 = a
	result.Food2 = b
	result.Known = ok
	// 複製以免呼叫端修改共享表格
	result.DoshaImpact = impact(result.DoshaImpact[dosha.Vata], result.DoshaImpact[dosha.Pitta], result.DoshaImpact[dosha.Kapha])
	result.Alternatives = append([]string{}, result.Alternatives...)
	return result, nil
}
