package pantry

import (
	"strings"
	"unicode"
)

// Normalize 正規化食材名稱：小寫、移除標點、合併空白並去除首尾空白
//
// 保留字母、數字、底線與空白，其餘字元直接移除。結果重複套用不變。
func Normalize(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}

// tokens 切出長度大於 2 的詞
func tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			out = append(out, f)
		}
	}
	return out
}
