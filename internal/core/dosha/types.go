package dosha

// Dosha 體質類別
type Dosha string

// 宣告順序即平手時的優先順序
const (
	Vata  Dosha = "vata"
	Pitta Dosha = "pitta"
	Kapha Dosha = "kapha"
)

const (
	// DefaultWeight 答案未指定分數時的預設權重
	DefaultWeight = 3
	// QuestionCount 問卷題數
	QuestionCount = 10
)

// All 依優先順序列出全部體質
var All = []Dosha{Vata, Pitta, Kapha}

// Valid 是否為已知體質
func (d Dosha) Valid() bool {
	switch d {
	case Vata, Pitta, Kapha:
		return true
	}
	return false
}

// QuizAnswer 單題作答
type QuizAnswer struct {
	Category Dosha
	Weight   int
}

// Result 體質計算結果
type Result struct {
	Percentages map[Dosha]int `json:"percentages"`
	Dominant    Dosha         `json:"dominant"`
}

// PercentageMap 轉為以字串為鍵的百分比，用於儲存
func (r Result) PercentageMap() map[string]int {
	out := make(map[string]int, len(r.Percentages))
	for d, p := range r.Percentages {
		out[string(d)] = p
	}
	return out
}

// Option 題目選項
type Option struct {
	Text   string `json:"text"`
	Dosha  Dosha  `json:"dosha"`
	Points int    `json:"points"`
}

// Question 問卷題目
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Profile 體質說明
type Profile struct {
	Dosha           Dosha    `json:"dosha"`
	Name            string   `json:"name"`
	Tagline         string   `json:"tagline"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}
