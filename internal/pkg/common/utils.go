package common

import (
	"math"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RoundPercent 計算 100*part/total 並四捨五入（0.5 進位），total 為 0 時回傳 0
func RoundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
