package pantry

import (
	"sort"
	"strings"

	"ayura/internal/pkg/common"
)

// 難度分級
const (
	DifficultyVeryEasy        = "Very Easy"
	DifficultyEasy            = "Easy"
	DifficultyMedium          = "Medium"
	DifficultyChallenging     = "Challenging"
	DifficultyVeryChallenging = "Very Challenging"
)

// MatchOptions 比對選項
type MatchOptions struct {
	// Synonyms 啟用同義詞比對（basmati 與 rice 視為相同）
	Synonyms bool
}

// RecipeMatch 單一食譜的比對結果，不會被保存
type RecipeMatch struct {
	Recipe             common.Recipe `json:"recipe"`
	MatchedIngredients []string      `json:"matchedIngredients"`
	MissingIngredients []string      `json:"missingIngredients"`
	PartialMatches     []string      `json:"partialMatches,omitempty"`
	MatchedCount       int           `json:"matchedCount"`
	TotalIngredients   int           `json:"totalIngredients"`
	MatchPercentage    int           `json:"matchPercentage"`
	Difficulty         string        `json:"difficulty"`
}

type matchKind int

const (
	kindNone matchKind = iota
	// 子字串落在詞中間，例如 pea 與 peanut
	kindPartial
	kindSynonym
	kindToken
	kindSubstring
	kindExact
)

// IngredientsMatch 判斷食材庫項目與食譜食材是否相符
//
// 依序比對：完全相同、任一方向子字串、共同的長詞（超過 2 字元）。
// 正規化後為空字串時永不相符。
func IngredientsMatch(pantryItem, ingredient string) bool {
	return compare(Normalize(pantryItem), Normalize(ingredient), MatchOptions{}) != kindNone
}

// compare 比對兩個已正規化的名稱並回傳最強的相符類型
func compare(a, b string, opts MatchOptions) matchKind {
	if a == "" || b == "" {
		return kindNone
	}
	if a == b {
		return kindExact
	}

	partial := false
	if strings.Contains(a, b) || strings.Contains(b, a) {
		long, short := a, b
		if len(short) > len(long) {
			long, short = short, long
		}
		if containsWord(long, short) {
			return kindSubstring
		}
		partial = true
	}

	if sharesToken(a, b) {
		return kindToken
	}
	if opts.Synonyms && synonymsMatch(a, b) {
		return kindSynonym
	}
	if partial {
		return kindPartial
	}
	return kindNone
}

// containsWord short 是否以完整詞的形式出現在 long 中
func containsWord(long, short string) bool {
	for offset := 0; offset <= len(long)-len(short); {
		idx := strings.Index(long[offset:], short)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(short)
		if (start == 0 || long[start-1] == ' ') && (end == len(long) || long[end] == ' ') {
			return true
		}
		offset = start + 1
	}
	return false
}

func sharesToken(a, b string) bool {
	ta := tokens(a)
	if len(ta) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		set[t] = struct{}{}
	}
	for _, t := range tokens(b) {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// MatchRecipe 計算單一食譜的比對結果
func MatchRecipe(pantry []string, recipe common.Recipe, opts MatchOptions) RecipeMatch {
	return matchNormalized(normalizeAll(pantry), recipe, opts)
}

func matchNormalized(pantry []string, recipe common.Recipe, opts MatchOptions) RecipeMatch {
	m := RecipeMatch{
		Recipe:             recipe,
		MatchedIngredients: []string{},
		MissingIngredients: []string{},
		TotalIngredients:   len(recipe.Ingredients),
	}

	for _, ingredient := range recipe.Ingredients {
		normalized := Normalize(ingredient)
		best := kindNone
		for _, item := range pantry {
			if k := compare(item, normalized, opts); k > best {
				best = k
			}
			if best == kindExact {
				break
			}
		}

		if best == kindNone {
			m.MissingIngredients = append(m.MissingIngredients, ingredient)
			continue
		}
		m.MatchedIngredients = append(m.MatchedIngredients, ingredient)
		if best == kindPartial {
			m.PartialMatches = append(m.PartialMatches, ingredient)
		}
	}

	m.MatchedCount = len(m.MatchedIngredients)
	m.MatchPercentage = common.RoundPercent(m.MatchedCount, m.TotalIngredients)
	m.Difficulty = Difficulty(m.MatchPercentage)
	return m
}

// Match 比對整個食譜目錄並排序
//
// 沒有任何相符食材的食譜不會出現在結果中。依 matchedCount 由高到低、
// 再依 matchPercentage 由高到低排序，相同者保持目錄原順序。
func Match(pantry []string, recipes []common.Recipe, opts MatchOptions) []RecipeMatch {
	items := normalizeAll(pantry)
	results := make([]RecipeMatch, 0)
	if len(items) == 0 {
		return results
	}

	for _, recipe := range recipes {
		m := matchNormalized(items, recipe, opts)
		if m.MatchedCount == 0 {
			continue
		}
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchedCount != results[j].MatchedCount {
			return results[i].MatchedCount > results[j].MatchedCount
		}
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	return results
}

// Difficulty 依相符百分比給出難度
func Difficulty(percentage int) string {
	switch {
	case percentage >= 90:
		return DifficultyVeryEasy
	case percentage >= 75:
		return DifficultyEasy
	case percentage >= 60:
		return DifficultyMedium
	case percentage >= 40:
		return DifficultyChallenging
	default:
		return DifficultyVeryChallenging
	}
}

// normalizeAll 正規化並去除空字串與重複項
func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		n := Normalize(item)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
