package aggregate

import (
	"github.com/roach88/weekreview/internal/duration"
	"github.com/roach88/weekreview/internal/value"
)

// Column is the classification of one row's non-empty cells.
// Implementations: Numeric, Duration, Unclassified.
type Column interface {
	// Reduce returns the total cell for the row. ok is false when the row
	// gets no total cell.
	Reduce(mode Mode) (cell value.Value, ok bool)
	column()
}

// Numeric holds numbers and booleans coerced to 0/1.
// IsBool[i] records whether Values[i] came from a boolean.
type Numeric struct {
	Values []float64
	IsBool []bool
}

// Duration holds HH:MM:SS cells converted to seconds.
type Duration struct {
	Seconds []float64
}

// Unclassified marks a row with mixed or unrecognized cells.
type Unclassified struct{}

func (Numeric) column()      {}
func (Duration) column()     {}
func (Unclassified) column() {}

// Reduce returns a Number, except that min and max hand back the winning
// cell as a Bool when it was a boolean.
func (c Numeric) Reduce(mode Mode) (value.Value, bool) {
	result, at := reduce(c.Values, mode)
	if at >= 0 && c.IsBool[at] {
		return value.Bool(result != 0), true
	}
	return value.Number(result), true
}

// Reduce aggregates the seconds and formats the result as HH:MM:SS.
func (c Duration) Reduce(mode Mode) (value.Value, bool) {
	return value.String(duration.FromSeconds(Aggregate(c.Seconds, mode))), true
}

// Reduce never yields a cell.
func (Unclassified) Reduce(Mode) (value.Value, bool) {
	return nil, false
}

// Classify drops empty cells and classifies the rest. A row with nothing
// left is vacuously Numeric.
func Classify(cells []value.Value) Column {
	kept := make([]value.Value, 0, len(cells))
	for _, c := range cells {
		if !value.IsEmpty(c) {
			kept = append(kept, c)
		}
	}

	if num, ok := numeric(kept); ok {
		return num
	}
	if dur, ok := durations(kept); ok {
		return dur
	}
	return Unclassified{}
}

func numeric(cells []value.Value) (Numeric, bool) {
	out := Numeric{
		Values: make([]float64, 0, len(cells)),
		IsBool: make([]bool, 0, len(cells)),
	}
	for _, c := range cells {
		switch v := c.(type) {
		case value.Number:
			out.Values = append(out.Values, float64(v))
			out.IsBool = append(out.IsBool, false)
		case value.Bool:
			f := 0.0
			if v {
				f = 1
			}
			out.Values = append(out.Values, f)
			out.IsBool = append(out.IsBool, true)
		default:
			return Numeric{}, false
		}
	}
	return out, true
}

func durations(cells []value.Value) (Duration, bool) {
	out := Duration{Seconds: make([]float64, 0, len(cells))}
	for _, c := range cells {
		if !duration.IsDuration(c) {
			return Duration{}, false
		}
		out.Seconds = append(out.Seconds, duration.CellSeconds(c))
	}
	return out, true
}
