package correlation

import (
	"math"
	"sort"
	"time"
)

// alignedSet holds the series after the inner join on dates: one equal-length
// value column per variable, variables in ascending name order.
type alignedSet struct {
	names  []string
	values [][]float64
	rows   int
}

// alignSeries intersects the date indices of every series, dropping any date
// where at least one series is missing an observation (absent date, NaN or
// Inf value). Duplicate dates within a series keep the last sample.
func alignSeries(set SeriesSet) alignedSet {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	byDate := make([]map[int64]float64, len(names))
	for i, name := range names {
		m := make(map[int64]float64, len(set[name]))
		for _, s := range set[name] {
			if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
				continue
			}
			m[dayKey(s.Date)] = s.Value
		}
		byDate[i] = m
	}

	if len(names) == 0 {
		return alignedSet{}
	}

	// Intersect starting from the first series' dates.
	var shared []int64
	for key := range byDate[0] {
		present := true
		for _, m := range byDate[1:] {
			if _, ok := m[key]; !ok {
				present = false
				break
			}
		}
		if present {
			shared = append(shared, key)
		}
	}
	sort.Slice(shared, func(a, b int) bool { return shared[a] < shared[b] })

	values := make([][]float64, len(names))
	for i := range names {
		col := make([]float64, len(shared))
		for r, key := range shared {
			col[r] = byDate[i][key]
		}
		values[i] = col
	}

	return alignedSet{names: names, values: values, rows: len(shared)}
}

// dayKey collapses a timestamp to its UTC calendar day, the index grain the
// engine aligns on.
func dayKey(t time.Time) int64 {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
