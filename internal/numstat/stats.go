package numstat

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values. Returns NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (N-1 denominator) of values.
// Returns NaN for fewer than 2 values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// Rescale linearly maps value from [srcMin, srcMax] onto [dstMin, dstMax],
// clamping the result to the destination range so out-of-domain inputs cannot
// escape it.
func Rescale(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	if srcMax == srcMin {
		return dstMin
	}
	scaled := dstMin + (value-srcMin)/(srcMax-srcMin)*(dstMax-dstMin)
	return Clamp(scaled, dstMin, dstMax)
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Ranks returns 1-based ranks of values, assigning tied values the average of
// the ranks they span (the fractional ranking used by Spearman correlation).
func Ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Positions i..j share the same value; average their ranks.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// Diff returns the first difference of series (length reduces by exactly 1).
// Returns nil for series shorter than 2.
func Diff(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}

// IsConstant reports whether every value in series equals the first one.
func IsConstant(series []float64) bool {
	for _, v := range series {
		if v != series[0] {
			return false
		}
	}
	return true
}
