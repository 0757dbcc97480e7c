package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide retorna numerator/denominator, ou 0 quando o denominador é zero
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}

	return result
}

// Clamp limita value ao intervalo [low, high]
func Clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}
