package engine

import "math"

// safeDivide returns a/b, or 0 when b is zero.
func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// percent returns part/whole*100, or 0 when whole is zero.
func percent(part, whole int64) float64 {
	return safeDivide(float64(part), float64(whole)) * 100
}

// round2 rounds to two decimal places, the precision the dashboard shows.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampProbability keeps p inside [0, 1].
func clampProbability(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
