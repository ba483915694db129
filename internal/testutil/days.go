package testutil

import (
	"fmt"
	"time"

	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/value"
)

// Props is shorthand for a day's frontmatter in tests.
type Props map[string]any

// Day builds a record from a YYYY-MM-DD name and plain Go properties.
// Panics on a bad name or unsupported property type.
func Day(name string, props Props) day.Record {
	obj := value.Object{}
	for k, v := range props {
		cell, err := value.FromAny(v)
		if err != nil {
			panic(fmt.Sprintf("testutil.Day(%s): %v", name, err))
		}
		obj[value.NormalizeKey(k)] = cell
	}
	r, err := day.NewRecord(name, obj)
	if err != nil {
		panic(fmt.Sprintf("testutil.Day: %v", err))
	}
	return r
}

// Raw builds a record without checking its name, for feeding bad input to
// code that must reject it.
func Raw(name string, props Props) day.Record {
	obj := value.Object{}
	for k, v := range props {
		cell, err := value.FromAny(v)
		if err != nil {
			panic(fmt.Sprintf("testutil.Raw(%s): %v", name, err))
		}
		obj[k] = cell
	}
	return day.Record{Name: name, Properties: obj}
}

// Week builds one record per day starting at the Monday named by monday.
// props[i] becomes day i; a nil entry yields a day with no properties.
func Week(monday string, props ...Props) []day.Record {
	start, err := time.Parse(day.Layout, monday)
	if err != nil {
		panic(fmt.Sprintf("testutil.Week: %v", err))
	}
	records := make([]day.Record, len(props))
	for i, p := range props {
		records[i] = Day(start.AddDate(0, 0, i).Format(day.Layout), p)
	}
	return records
}

// Date parses a YYYY-MM-DD string. Panics on error.
func Date(s string) time.Time {
	t, err := day.ParseName(s)
	if err != nil {
		panic(fmt.Sprintf("testutil.Date: %v", err))
	}
	return t
}
