package render

import (
	"math"
	"strconv"
)

// Fixed форматирует число с фиксированным количеством знаков после точки.
func Fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Rounded округляет число до ближайшего целого.
func Rounded(v float64) string {
	r := math.Round(v)
	if r == 0 {
		// -0 выводится как "0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
