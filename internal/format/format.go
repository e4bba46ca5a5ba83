package format

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatValue formats a chart value. Whole numbers get grouping separators
// only; fractional values keep one decimal place.
// Example: 1204 → "1,204", 1204.25 → "1,204.3".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "---"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(math.Round(v*10)/10, 1)
}

// FormatPercent echoes a percentage with the shortest exact decimal form.
// Example: 85.5 → "85.5%", 80 → "80%".
func FormatPercent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "---"
	}
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// FormatShare formats part/whole as a one-decimal percentage, or "0.0%" when
// whole is zero.
func FormatShare(part, whole float64) string {
	if whole == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(part/whole*100, 'f', 1, 64) + "%"
}
