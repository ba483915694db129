package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/list"
	"github.com/roach88/weekreview/internal/review"
	reviewtable "github.com/roach88/weekreview/internal/table"
	"github.com/roach88/weekreview/internal/value"
)

// WeekTitle is the heading of a week report.
func WeekTitle(r *review.WeekReport) string {
	return fmt.Sprintf("Week Review №%d", r.Week)
}

// MonthTitle is the heading of a month report.
func MonthTitle(r *review.MonthReport) string {
	return fmt.Sprintf("Month Review №%d", int(r.Month))
}

// WeekReport writes the title, table and list of a week report.
func WeekReport(w io.Writer, r *review.WeekReport, f Format) error {
	if f == FormatJSON {
		return writeJSON(w, WeekJSON(r))
	}
	return document(w, WeekTitle(r), r.Table, r.List, f)
}

// MonthReport writes the title, table and list of a month report.
func MonthReport(w io.Writer, r *review.MonthReport, f Format) error {
	if f == FormatJSON {
		return writeJSON(w, MonthJSON(r))
	}
	return document(w, MonthTitle(r), r.Table, r.List, f)
}

func document(w io.Writer, heading string, t *reviewtable.Table, l *list.List, f Format) error {
	if err := title(w, heading, f); err != nil {
		return err
	}
	if err := Table(w, t, f); err != nil {
		return err
	}
	if t != nil && !t.IsEmpty() && l != nil && len(l.Values) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return List(w, l, f)
}

// TableJSON is the JSON shape of a table. Day headers are YYYY-MM-DD and
// week headers are the week number.
type TableJSON struct {
	Headers []string  `json:"headers"`
	Rows    []RowJSON `json:"rows"`
}

// RowJSON is one table row. Absent cells are null.
type RowJSON struct {
	Name  string        `json:"name"`
	Cells []value.Value `json:"cells"`
}

// ReportJSON is the JSON shape of a week or month report.
type ReportJSON struct {
	Kind  string     `json:"kind"`
	Title string     `json:"title"`
	Date  string     `json:"date"`
	Week  int        `json:"week,omitempty"`
	Month int        `json:"month,omitempty"`
	Days  []string   `json:"days,omitempty"`
	Weeks []int      `json:"weeks,omitempty"`
	Table *TableJSON `json:"table,omitempty"`
	List  *list.List `json:"list,omitempty"`
}

// WeekJSON converts a week report.
func WeekJSON(r *review.WeekReport) ReportJSON {
	return ReportJSON{
		Kind:  "week",
		Title: WeekTitle(r),
		Date:  r.WeekDate.Format(day.Layout),
		Week:  r.Week,
		Days:  r.Days,
		Table: ToTableJSON(r.Table),
		List:  r.List,
	}
}

// MonthJSON converts a month report.
func MonthJSON(r *review.MonthReport) ReportJSON {
	return ReportJSON{
		Kind:  "month",
		Title: MonthTitle(r),
		Date:  r.MonthDate.Format(day.Layout),
		Month: int(r.Month),
		Weeks: r.Weeks,
		Table: ToTableJSON(r.Table),
		List:  r.List,
	}
}

// ToTableJSON converts a table; nil stays nil.
func ToTableJSON(t *reviewtable.Table) *TableJSON {
	if t == nil {
		return nil
	}
	out := &TableJSON{Headers: make([]string, len(t.Headers)), Rows: []RowJSON{}}
	for i, h := range t.Headers {
		switch h := h.(type) {
		case reviewtable.DateHeader:
			out.Headers[i] = h.Date.Format(day.Layout)
		case reviewtable.WeekHeader:
			out.Headers[i] = strconv.Itoa(h.Week)
		default:
			out.Headers[i] = HeaderLabel(h)
		}
	}
	for _, name := range t.RowNames() {
		cells := t.Data[name]
		if cells == nil {
			cells = []value.Value{}
		}
		out.Rows = append(out.Rows, RowJSON{Name: name, Cells: cells})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
