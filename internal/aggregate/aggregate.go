// Package aggregate reduces table rows to a single total cell.
//
// A row is first classified into one of three column kinds, then reduced
// under a Mode. Classification drops empty cells (absent, null and "") but
// keeps 0 and false.
package aggregate

import "math"

// Mode names a reduction.
type Mode string

const (
	// Min picks the smallest value.
	Min Mode = "min"
	// Max picks the largest value.
	Max Mode = "max"
	// Sum adds all values. It is the default.
	Sum Mode = "sum"
	// Avg is the arithmetic mean.
	Avg Mode = "avg"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case Min, Max, Sum, Avg:
		return true
	}
	return false
}

// Aggregate reduces values under mode. An unset or unknown mode sums.
//
//	min of nothing is +Inf, max of nothing is -Inf,
//	sum of nothing is 0, avg of nothing is NaN.
func Aggregate(values []float64, mode Mode) float64 {
	v, _ := reduce(values, mode)
	return v
}

// reduce also returns the index of the chosen element for min and max,
// or -1 when the result is not one of the inputs.
func reduce(values []float64, mode Mode) (float64, int) {
	switch mode {
	case Min:
		acc, at := math.Inf(1), -1
		for i, v := range values {
			if v <= acc {
				acc, at = v, i
			}
		}
		return acc, at
	case Max:
		acc, at := math.Inf(-1), -1
		for i, v := range values {
			if v >= acc {
				acc, at = v, i
			}
		}
		return acc, at
	case Avg:
		return sum(values) / float64(len(values)), -1
	default:
		return sum(values), -1
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
