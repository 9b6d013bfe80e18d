package stats

import (
	"math"
	"sort"
)

// Count statistics for traffic summaries. Counts are integers everywhere in
// the engine, so these work on []int directly.

// Mean calculates the arithmetic mean of a slice of counts
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Max returns the maximum count
func Max(values []int) int {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Quantile calculates the q-th quantile (0 <= q <= 1) with linear
// interpolation between adjacent counts
func Quantile(values []int, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	n := float64(len(sorted))
	index := q * (n - 1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return float64(sorted[lower])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}
