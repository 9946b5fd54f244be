package meals

import "ayura/internal/core/dosha"

// Meal 適合特定體質的餐點
type Meal struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	MealType         string        `json:"mealType"`
	Difficulty       string        `json:"difficulty"`
	PrepTime         int           `json:"prepTime"`
	Ingredients      []string      `json:"ingredients"`
	Doshas           []dosha.Dosha `json:"doshas"`
	DoshaExplanation string        `json:"doshaExplanation"`
}

// 餐別
const (
	Breakfast = "breakfast"
	Lunch     = "lunch"
	Dinner    = "dinner"
	Snack     = "snack"
)

var mealTypes = []string{Breakfast, Lunch, Dinner, Snack}

var difficulties = []string{"easy", "medium", "hard"}

var catalog = []Meal{
	{
		ID:               "warm-oat-porridge",
		Name:             "Warm Spiced Oat Porridge",
		Description:      "Oats simmered in milk with cinnamon, cardamom and stewed apple.",
		MealType:         Breakfast,
		Difficulty:       "easy",
		PrepTime:         15,
		Ingredients:      []string{"oats", "milk", "cinnamon", "cardamom", "apple", "ghee"},
		Doshas:           []dosha.Dosha{dosha.Vata, dosha.Pitta},
		DoshaExplanation: "Warm, moist and grounding, which settles Vata while the sweet taste cools Pitta.",
	},
	{
		ID:               "stewed-apples",
		Name:             "Stewed Apples with Cloves",
		Description:      "Apples cooked soft with cloves and a little water.",
		MealType:         Breakfast,
		Difficulty:       "easy",
		PrepTime:         10,
		Ingredients:      []string{"apple", "cloves", "water"},
		Doshas:           []dosha.Dosha{dosha.Vata, dosha.Pitta, dosha.Kapha},
		DoshaExplanation: "Light and easy to digest, gentle on all three doshas first thing in the morning.",
	},
	{
		ID:               "millet-upma",
		Name:             "Millet Upma",
		Description:      "Savory millet with mustard seeds, curry leaves and vegetables.",
		MealType:         Breakfast,
		Difficulty:       "medium",
		PrepTime:         25,
		Ingredients:      []string{"millet", "mustard seeds", "curry leaves", "carrot", "peas", "ginger"},
		Doshas:           []dosha.Dosha{dosha.Kapha},
		DoshaExplanation: "Millet is light and drying, which counters Kapha heaviness.",
	},
	{
		ID:               "kitchari",
		Name:             "Classic Kitchari",
		Description:      "Rice and mung dal cooked together with ghee and digestive spices.",
		MealType:         Lunch,
		Difficulty:       "easy",
		PrepTime:         35,
		Ingredients:      []string{"rice", "mung dal", "ghee", "cumin", "turmeric", "ginger"},
		Doshas:           []dosha.Dosha{dosha.Vata, dosha.Pitta, dosha.Kapha},
		DoshaExplanation: "A tridoshic staple that is nourishing yet very easy to digest.",
	},
	{
		ID:               "coconut-vegetable-curry",
		Name:             "Coconut Vegetable Curry",
		Description:      "Zucchini, sweet potato and greens in a mild coconut sauce with basmati rice.",
		MealType:         Lunch,
		Difficulty:       "medium",
		PrepTime:         40,
		Ingredients:      []string{"coconut milk", "zucchini", "sweet potato", "spinach", "coriander", "rice"},
		Doshas:           []dosha.Dosha{dosha.Pitta},
		DoshaExplanation: "Coconut and mild spices cool and soothe excess Pitta heat.",
	},
	{
		ID:               "spiced-lentil-soup",
		Name:             "Spiced Red Lentil Soup",
		Description:      "Red lentils with ginger, black pepper and lemon.",
		MealType:         Lunch,
		Difficulty:       "easy",
		PrepTime:         30,
		Ingredients:      []string{"red lentils", "ginger", "black pepper", "garlic", "lemon"},
		Doshas:           []dosha.Dosha{dosha.Kapha},
		DoshaExplanation: "Pungent spices and light legumes stimulate sluggish Kapha digestion.",
	},
	{
		ID:               "root-vegetable-stew",
		Name:             "Root Vegetable Stew",
		Description:      "Carrot, beet and sweet potato slow cooked with ghee and cumin.",
		MealType:         Dinner,
		Difficulty:       "medium",
		PrepTime:         45,
		Ingredients:      []string{"carrot", "beet", "sweet potato", "ghee", "cumin"},
		Doshas:           []dosha.Dosha{dosha.Vata},
		DoshaExplanation: "Warm, oily and sweet root vegetables ground the airy Vata dosha.",
	},
	{
		ID:               "quinoa-greens-bowl",
		Name:             "Quinoa and Steamed Greens Bowl",
		Description:      "Quinoa with steamed kale, broccoli and a coriander dressing.",
		MealType:         Dinner,
		Difficulty:       "easy",
		PrepTime:         25,
		Ingredients:      []string{"quinoa", "kale", "broccoli", "coriander", "lime"},
		Doshas:           []dosha.Dosha{dosha.Pitta, dosha.Kapha},
		DoshaExplanation: "Bitter greens and light grains cool Pitta and lighten Kapha.",
	},
	{
		ID:               "stuffed-paratha",
		Name:             "Stuffed Vegetable Paratha",
		Description:      "Whole wheat flatbread filled with spiced potato and peas, cooked in ghee.",
		MealType:         Dinner,
		Difficulty:       "hard",
		PrepTime:         60,
		Ingredients:      []string{"whole wheat flour", "potato", "peas", "ghee", "ajwain"},
		Doshas:           []dosha.Dosha{dosha.Vata},
		DoshaExplanation: "Dense, warm and oily, which suits Vata but is heavy for Kapha.",
	},
	{
		ID:               "golden-milk",
		Name:             "Golden Milk",
		Description:      "Warm milk with turmeric, ginger and a pinch of black pepper.",
		MealType:         Snack,
		Difficulty:       "easy",
		PrepTime:         10,
		Ingredients:      []string{"milk", "turmeric", "ginger", "black pepper"},
		Doshas:           []dosha.Dosha{dosha.Vata, dosha.Kapha},
		DoshaExplanation: "Warming spices calm Vata before sleep and keep Kapha moving.",
	},
	{
		ID:               "cucumber-mint-raita",
		Name:             "Cucumber Mint Raita",
		Description:      "Fresh cucumber and mint folded into thin yogurt with roasted cumin.",
		MealType:         Snack,
		Difficulty:       "easy",
		PrepTime:         10,
		Ingredients:      []string{"cucumber", "mint", "yogurt", "cumin"},
		Doshas:           []dosha.Dosha{dosha.Pitta},
		DoshaExplanation: "Cooling cucumber and mint pacify Pitta.",
	},
	{
		ID:               "roasted-chickpeas",
		Name:             "Spiced Roasted Chickpeas",
		Description:      "Crunchy chickpeas roasted with chili, cumin and a little oil.",
		MealType:         Snack,
		Difficulty:       "medium",
		PrepTime:         40,
		Ingredients:      []string{"chickpeas", "chili", "cumin", "oil"},
		Doshas:           []dosha.Dosha{dosha.Kapha},
		DoshaExplanation: "Dry, light and pungent, the opposite of Kapha's heavy qualities.",
	},
}
