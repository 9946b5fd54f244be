package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayura/internal/pkg/common"
)

func recipe(title string, ingredients ...string) common.Recipe {
	return common.Recipe{Title: title, Ingredients: ingredients}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Tomato  ", "tomato"},
		{"Mung   Dal", "mung dal"},
		{"Salt & Pepper!", "salt pepper"},
		{"red-chili, powder", "redchili powder"},
		{"\tGhee\n", "ghee"},
		{"olive_oil", "olive_oil"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestIngredientsMatch(t *testing.T) {
	tests := []struct {
		name       string
		pantryItem string
		ingredient string
		want       bool
	}{
		{"exact", "rice", "rice", true},
		{"case and spacing", "  RICE ", "rice", true},
		{"pantry inside ingredient", "rice", "basmati rice", true},
		{"ingredient inside pantry", "red onion", "onion", true},
		{"shared long token", "green chili", "chili powder", true},
		{"short tokens ignored", "of to", "to of", false},
		{"short shared token", "ab cd", "ab ef", false},
		{"partial substring", "pea", "peanut", true},
		{"unrelated", "milk", "ghee", false},
		{"empty pantry item", "  ", "rice", false},
		{"punctuation only", "!!", "rice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IngredientsMatch(tt.pantryItem, tt.ingredient))
		})
	}
}

func TestMatchRecipeCounts(t *testing.T) {
	m := MatchRecipe([]string{"rice", "mung dal"}, recipe("Khichdi", "rice", "mung dal", "ghee"), MatchOptions{})

	assert.Equal(t, 2, m.MatchedCount)
	assert.Equal(t, 3, m.TotalIngredients)
	assert.Equal(t, []string{"rice", "mung dal"}, m.MatchedIngredients)
	assert.Equal(t, []string{"ghee"}, m.MissingIngredients)
	assert.Equal(t, 67, m.MatchPercentage)
	assert.Equal(t, DifficultyMedium, m.Difficulty)
	assert.Equal(t, m.TotalIngredients, m.MatchedCount+len(m.MissingIngredients))
}

func TestMatchRecipeWithoutIngredients(t *testing.T) {
	m := MatchRecipe([]string{"rice"}, recipe("Water"), MatchOptions{})
	assert.Equal(t, 0, m.MatchPercentage)
	assert.Equal(t, 0, m.TotalIngredients)
}

func TestMatchRecipeFlagsPartialMatches(t *testing.T) {
	m := MatchRecipe([]string{"pea"}, recipe("Snack", "peanut", "green pea", "salt"), MatchOptions{})

	assert.Equal(t, []string{"peanut", "green pea"}, m.MatchedIngredients)
	assert.Equal(t, []string{"peanut"}, m.PartialMatches)
}

func TestMatchRanking(t *testing.T) {
	catalog := []common.Recipe{
		recipe("Plain Toast", "bread"),
		recipe("Dal Rice", "rice", "mung dal"),
		recipe("Khichdi", "rice", "mung dal", "ghee"),
		recipe("Rice Bowl", "rice"),
		recipe("Fried Rice", "rice", "egg", "soy sauce", "spring onion"),
	}

	results := Match([]string{"rice", "mung dal"}, catalog, MatchOptions{})

	require.Len(t, results, 4)
	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Recipe.Title
		assert.Positive(t, r.MatchedCount)
	}
	assert.Equal(t, []string{"Dal Rice", "Khichdi", "Rice Bowl", "Fried Rice"}, titles)
	assert.Equal(t, 100, results[0].MatchPercentage)
	assert.Empty(t, results[0].MissingIngredients)
}

func TestMatchIsStableForEqualScores(t *testing.T) {
	catalog := []common.Recipe{
		recipe("A", "rice", "salt"),
		recipe("B", "rice", "sugar"),
		recipe("C", "rice", "ghee"),
	}

	for i := 0; i < 20; i++ {
		results := Match([]string{"rice"}, catalog, MatchOptions{})
		require.Len(t, results, 3)
		assert.Equal(t, "A", results[0].Recipe.Title)
		assert.Equal(t, "B", results[1].Recipe.Title)
		assert.Equal(t, "C", results[2].Recipe.Title)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	catalog := []common.Recipe{recipe("Khichdi", "rice", "mung dal")}

	assert.Empty(t, Match(nil, catalog, MatchOptions{}))
	assert.Empty(t, Match([]string{"   "}, catalog, MatchOptions{}))
	assert.Empty(t, Match([]string{"rice"}, nil, MatchOptions{}))
	assert.NotNil(t, Match(nil, catalog, MatchOptions{}))
}

func TestMatchNormalizesPantry(t *testing.T) {
	catalog := []common.Recipe{recipe("Salad", "tomato", "cucumber")}

	assert.Equal(t,
		Match([]string{"tomato"}, catalog, MatchOptions{}),
		Match([]string{"  Tomato  "}, catalog, MatchOptions{}),
	)
}

func TestMatchWithSynonyms(t *testing.T) {
	catalog := []common.Recipe{recipe("Raita", "curd", "cucumber")}

	assert.Empty(t, Match([]string{"yogurt"}, catalog, MatchOptions{}))

	results := Match([]string{"yogurt"}, catalog, MatchOptions{Synonyms: true})
	require.Len(t, results, 1)
	assert.Equal(t, []string{"curd"}, results[0].MatchedIngredients)

	// 兩者同為 rice 的同義詞
	results = Match([]string{"basmati"}, []common.Recipe{recipe("Pulao", "jasmine rice")}, MatchOptions{Synonyms: true})
	require.Len(t, results, 1)
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyVeryEasy, Difficulty(100))
	assert.Equal(t, DifficultyVeryEasy, Difficulty(90))
	assert.Equal(t, DifficultyEasy, Difficulty(75))
	assert.Equal(t, DifficultyMedium, Difficulty(60))
	assert.Equal(t, DifficultyChallenging, Difficulty(40))
	assert.Equal(t, DifficultyVeryChallenging, Difficulty(39))
}
