package pantry

// 常見食材同義詞
var synonyms = map[string][]string{
	"rice":         {"basmati", "white rice", "brown rice", "jasmine rice"},
	"oil":          {"vegetable oil", "cooking oil", "olive oil", "sunflower oil", "ghee"},
	"salt":         {"sea salt", "table salt"},
	"butter":       {"ghee", "clarified butter"},
	"milk":         {"whole milk", "full fat milk"},
	"yogurt":       {"curd", "dahi"},
	"chicken":      {"poultry"},
	"fish":         {"seafood", "salmon", "tuna", "cod"},
	"tomato":       {"tamatar"},
	"onion":        {"pyaj"},
	"garlic":       {"lahsun"},
	"ginger":       {"adrak"},
	"potato":       {"aloo"},
	"carrot":       {"gajjar"},
	"spinach":      {"palak"},
	"paneer":       {"cottage cheese", "panir"},
	"turmeric":     {"haldi"},
	"cumin":        {"jeera"},
	"coriander":    {"dhania"},
	"chili":        {"mirchi", "red chili", "green chili"},
	"garam masala": {"spice mix"},
	"cashew":       {"kaju"},
	"peanut":       {"groundnut", "moongphali"},
}

// variations 回傳已正規化名稱的所有同義寫法（含自身）
func variations(normalized string) map[string]struct{} {
	out := map[string]struct{}{normalized: {}}
	if syns, ok := synonyms[normalized]; ok {
		for _, s := range syns {
			out[Normalize(s)] = struct{}{}
		}
	}
	// 自身為其他詞的同義詞時，納入整組
	for base, syns := range synonyms {
		for _, s := range syns {
			if Normalize(s) != normalized {
				continue
			}
			out[base] = struct{}{}
			for _, other := range syns {
				out[Normalize(other)] = struct{}{}
			}
			break
		}
	}
	return out
}

// synonymsMatch 兩個名稱的同義寫法是否有交集
func synonymsMatch(a, b string) bool {
	va := variations(a)
	for v := range variations(b) {
		if _, ok := va[v]; ok {
			return true
		}
	}
	return false
}
