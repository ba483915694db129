package table

import (
	"fmt"
	"math"
	"strconv"

	"github.com/roach88/weekreview/internal/aggregate"
	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/duration"
	"github.com/roach88/weekreview/internal/reportspec"
	"github.com/roach88/weekreview/internal/value"
)

// ReferenceError reports a derived row that names a row missing from the
// table.
type ReferenceError struct {
	Row     string
	Missing string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("row %q is generated from %q, which is not a row of the table", e.Row, e.Missing)
}

// CheckReferences verifies that every derived row names existing rows.
func CheckReferences(rows []reportspec.PropertySpec) error {
	names := make(map[string]bool, len(rows))
	for _, r := range rows {
		names[r.Name] = true
	}
	for _, r := range rows {
		if !r.Derived() {
			continue
		}
		for _, ref := range r.Generate {
			if !names[ref] {
				return &ReferenceError{Row: r.Name, Missing: ref}
			}
		}
	}
	return nil
}

// Build makes a table with one column per record, in the given order, and
// one row per spec. Derived rows are computed, and a Total column is
// appended when any row declares an aggregation.
//
// Returns an empty table when there are no records or no rows. Rows sharing
// a name share one row.
func Build(cols []day.Record, rows []reportspec.PropertySpec) (*Table, error) {
	if len(cols) == 0 || len(rows) == 0 {
		return Empty(), nil
	}
	if err := CheckReferences(rows); err != nil {
		return nil, err
	}

	t := Empty()
	for _, col := range cols {
		t.Headers = append(t.Headers, DateHeader{Date: col.Date})
	}
	for _, row := range rows {
		if _, seen := t.Data[row.Name]; seen {
			continue
		}
		t.addRow(row.Name)
		cells := make([]value.Value, len(cols))
		for i, col := range cols {
			cells[i] = col.Get(row.Name)
		}
		t.Data[row.Name] = cells
	}

	t = derive(t, rows)
	if !reportspec.HasAggregation(rows) {
		return t, nil
	}
	return appendAggregates(t, rows), nil
}

// Derive computes every derived row as numerator / (duration in hours),
// one cell per cell of the numerator row. A cell whose ratio is not a finite
// number becomes "", any other cell is the ratio with two decimals.
func Derive(t *Table, rows []reportspec.PropertySpec) (*Table, error) {
	if err := CheckReferences(rows); err != nil {
		return nil, err
	}
	return derive(t, rows), nil
}

func derive(t *Table, rows []reportspec.PropertySpec) *Table {
	out := t.Clone()
	for _, row := range rows {
		if !row.Derived() {
			continue
		}
		numerators := out.Data[row.Generate[0]]
		durations := out.Data[row.Generate[1]]

		out.addRow(row.Name)
		cells := out.Data[row.Name]
		for i := range numerators {
			var d value.Value
			if i < len(durations) {
				d = durations[i]
			}
			cell := Ratio(numerators[i], d)
			if i < len(cells) {
				cells[i] = cell
			} else {
				cells = append(cells, cell)
			}
		}
		out.Data[row.Name] = cells
	}
	return out
}

// Ratio divides a numeric cell by a duration cell read as hours.
func Ratio(numerator, dur value.Value) value.Value {
	hours := duration.CellSeconds(dur) / 3600
	r := value.ToNumber(numerator) / hours
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return value.String("")
	}
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return value.String(strconv.FormatFloat(r, 'f', 2, 64))
}

// AppendAggregates adds a Total cell to every classifiable row, recomputes
// derived totals from the totals of their source rows and appends the Total
// header.
func AppendAggregates(t *Table, rows []reportspec.PropertySpec) (*Table, error) {
	if err := CheckReferences(rows); err != nil {
		return nil, err
	}
	return appendAggregates(t, rows), nil
}

func appendAggregates(t *Table, rows []reportspec.PropertySpec) *Table {
	out := t.Clone()
	done := make(map[string]bool, len(rows))
	for _, row := range rows {
		if done[row.Name] {
			continue
		}
		done[row.Name] = true

		out.addRow(row.Name)
		if cell, ok := aggregate.Classify(out.Data[row.Name]).Reduce(row.Aggregation); ok {
			out.Data[row.Name] = append(out.Data[row.Name], cell)
		}
	}

	out = derive(out, rows)
	out.Headers = append(out.Headers, LabelHeader{Label: TotalLabel})
	return out
}

// LastColumn keeps only the last cell of every row and labels the single
// remaining column. A row that is one short keeps its last cell, whatever
// column that cell came from.
func LastColumn(t *Table, label Header) *Table {
	out := &Table{
		Headers: []Header{label},
		Data:    make(map[string][]value.Value, len(t.Data)),
		Rows:    t.RowNames(),
	}
	for name, row := range t.Data {
		if len(row) == 0 {
			out.Data[name] = []value.Value{}
			continue
		}
		out.Data[name] = []value.Value{row[len(row)-1]}
	}
	return out
}

// Merge joins tables column-wise in order. Row order follows first
// appearance.
func Merge(tables []*Table) *Table {
	out := Empty()
	for _, t := range tables {
		out.Headers = append(out.Headers, t.Headers...)
		for _, name := range t.RowNames() {
			out.addRow(name)
			out.Data[name] = append(out.Data[name], t.Data[name]...)
		}
	}
	return out
}
