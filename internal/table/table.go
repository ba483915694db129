// Package table builds property-by-day tables and their totals.
//
// A table is built in stages, each returning a new *Table and leaving its
// input alone:
//
//	Build             rows of raw day values, derived rows computed
//	AppendAggregates  one Total cell per row, derived totals recomputed
//	LastColumn        reduce a week to its Total column
//	Merge             join week columns into a month table
//
// While open every row has one cell per header. AppendAggregates grows every
// row by one, except rows whose cells cannot be classified; those stay one
// short.
package table

import (
	"maps"
	"slices"
	"time"

	"github.com/roach88/weekreview/internal/value"
)

// TotalLabel heads the aggregate column.
const TotalLabel = "Total"

// Header labels a column.
// Implementations: DateHeader, WeekHeader, LabelHeader.
type Header interface {
	header()
}

// DateHeader labels a day column.
type DateHeader struct {
	Date time.Time
}

// WeekHeader labels a week column of a month table.
type WeekHeader struct {
	Week int
}

// LabelHeader labels any other column, such as the Total.
type LabelHeader struct {
	Label string
}

func (DateHeader) header()  {}
func (WeekHeader) header()  {}
func (LabelHeader) header() {}

// Table is a grid of property rows by columns.
// Rows keeps row order; Data holds the cells of each row.
type Table struct {
	Headers []Header
	Data    map[string][]value.Value
	Rows    []string
}

// Empty returns a table with no headers and no rows.
func Empty() *Table {
	return &Table{Headers: []Header{}, Data: map[string][]value.Value{}}
}

// IsEmpty reports whether the table has neither headers nor rows.
func (t *Table) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Data) == 0
}

// Row returns the cells of the named row.
func (t *Table) Row(name string) []value.Value {
	return t.Data[name]
}

// Total returns the last cell of the named row, or nil when the row is
// missing or empty.
func (t *Table) Total(name string) value.Value {
	row := t.Data[name]
	if len(row) == 0 {
		return nil
	}
	return row[len(row)-1]
}

// Rectangular reports whether every row has one cell per header.
func (t *Table) Rectangular() bool {
	for _, row := range t.Data {
		if len(row) != len(t.Headers) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no slices or maps with t.
// Cells are immutable and are shared.
func (t *Table) Clone() *Table {
	out := &Table{
		Headers: slices.Clone(t.Headers),
		Data:    make(map[string][]value.Value, len(t.Data)),
		Rows:    slices.Clone(t.Rows),
	}
	if out.Headers == nil {
		out.Headers = []Header{}
	}
	for name, row := range t.Data {
		out.Data[name] = slices.Clone(row)
	}
	return out
}

// addRow registers name in row order the first time it is seen.
func (t *Table) addRow(name string) {
	if _, ok := t.Data[name]; ok {
		return
	}
	t.Rows = append(t.Rows, name)
	t.Data[name] = nil
}

// RowNames returns the row names in a stable order: Rows first, then any
// row only present in Data, sorted.
func (t *Table) RowNames() []string {
	names := slices.Clone(t.Rows)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	var extra []string
	for _, n := range slices.Sorted(maps.Keys(t.Data)) {
		if !seen[n] {
			extra = append(extra, n)
		}
	}
	return append(names, extra...)
}
