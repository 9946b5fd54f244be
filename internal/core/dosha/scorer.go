package dosha

import (
	"fmt"

	"ayura/internal/pkg/common"
)

// Score 依作答計算各體質百分比與主導體質
//
// 百分比各自四捨五入，總和可能為 99 到 101，不再重新歸一。
// 主導體質以四捨五入前的累計權重比較，平手時取宣告順序較前者。
func Score(answers []QuizAnswer) (Result, error) {
	if len(answers) != QuestionCount {
		return Result{}, common.InvalidInput(
			fmt.Sprintf("expected %d answers, got %d", QuestionCount, len(answers)))
	}

	totals := make(map[Dosha]int, len(All))
	total := 0
	for i, a := range answers {
		if a.Weight < 0 {
			return Result{}, common.InvalidInput(fmt.Sprintf("answer %d has negative weight", i+1))
		}
		// 未知類別不計分
		if !a.Category.Valid() {
			continue
		}
		totals[a.Category] += a.Weight
		total += a.Weight
	}

	if total == 0 {
		return Result{}, common.InvalidInput("answers carry no weight")
	}

	result := Result{Percentages: make(map[Dosha]int, len(All))}
	best := -1
	for _, d := range All {
		result.Percentages[d] = common.RoundPercent(totals[d], total)
		if totals[d] > best {
			best = totals[d]
			result.Dominant = d
		}
	}

	return result, nil
}
