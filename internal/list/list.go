// Package list collects the string values of one property across days.
package list

import (
	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/value"
)

// List is a headed sequence of strings. Empty Values means there is
// nothing to show.
type List struct {
	Header string   `json:"header"`
	Values []string `json:"values"`
}

// Build walks records in order and collects property name. Strings pass
// through, arrays contribute their string elements, everything else is
// dropped.
func Build(records []day.Record, name string) *List {
	out := &List{Header: name, Values: []string{}}
	for _, r := range records {
		switch v := r.Get(name).(type) {
		case value.String:
			out.Values = append(out.Values, string(v))
		case value.Array:
			for _, item := range v {
				if s, ok := item.(value.String); ok {
					out.Values = append(out.Values, string(s))
				}
			}
		}
	}
	return out
}

// Concat joins lists in order. The header comes from the first list.
// Returns nil when there are no lists.
func Concat(lists []*List) *List {
	var out *List
	for _, l := range lists {
		if l == nil {
			continue
		}
		if out == nil {
			out = &List{Header: l.Header, Values: []string{}}
		}
		out.Values = append(out.Values, l.Values...)
	}
	return out
}
