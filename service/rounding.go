package service

import "math"

// roundTo2Decimals rounds to cents and never returns negative zero.
func roundTo2Decimals(value float64) float64 {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		return 0
	}
	return rounded
}
