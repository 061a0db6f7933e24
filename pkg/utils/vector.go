package utils

import "math"

// Normalize 返回单位向量，零向量保持为零
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
