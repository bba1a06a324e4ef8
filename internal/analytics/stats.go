package analytics

import (
	"sort"
	"time"
)

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// median returns the middle value of values, averaging the two middle
// elements for even lengths. An empty input yields 0.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// gini computes the Gini coefficient of a non-negative distribution:
// 0 for perfect equality, approaching 1 as a single holder dominates.
// Fewer than two values or an all-zero distribution yield 0.
func gini(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)

	var sum, weighted float64
	for i, v := range s {
		sum += v
		weighted += float64(2*(i+1)-n-1) * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / (float64(n) * sum)
}

// olsSlope fits y = a + b*x over x = 1..n by ordinary least squares and
// returns b. Fewer than two points yield 0.
func olsSlope(ys []float64) float64 {
	n := len(ys)
	if n < 2 {
		return 0
	}
	fn := float64(n)
	sumX := fn * (fn + 1) / 2
	sumX2 := fn * (fn + 1) * (2*fn + 1) / 6

	var sumY, sumXY float64
	for i, y := range ys {
		sumY += y
		sumXY += float64(i+1) * y
	}

	den := fn*sumX2 - sumX*sumX
	if den == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / den
}

// countWeekdays counts the Monday through Friday days in the inclusive
// span [from, to].
func countWeekdays(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// weekStart returns the Monday on or before t.
func weekStart(t time.Time) time.Time {
	delta := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -delta)
}
