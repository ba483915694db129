package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/weekreview/internal/render"
	"github.com/roach88/weekreview/internal/value"
)

// Check compares a result against expectations and returns one message per
// mismatch. An unexpected build error short-circuits the report checks.
func Check(result *Result, expect Expect) []string {
	var failures []string

	if expect.Error != "" {
		switch {
		case result.Err == nil:
			failures = append(failures, fmt.Sprintf("expected error %s, build succeeded", expect.Error))
		case result.ErrorCode != expect.Error:
			failures = append(failures, fmt.Sprintf("expected error %s, got %s (%v)", expect.Error, codeOrNone(result.ErrorCode), result.Err))
		}
		return failures
	}
	if result.Err != nil {
		return append(failures, fmt.Sprintf("unexpected error: %v", result.Err))
	}

	report := result.Report
	if len(expect.Days) > 0 && !slices.Equal(expect.Days, report.Days) {
		failures = append(failures, mismatch("days", expect.Days, report.Days))
	}
	if len(expect.Weeks) > 0 && !slices.Equal(expect.Weeks, report.Weeks) {
		failures = append(failures, mismatch("weeks", expect.Weeks, report.Weeks))
	}

	failures = append(failures, checkTable(report.Table, expect)...)
	failures = append(failures, checkList(report, expect)...)
	return failures
}

func checkTable(t *render.TableJSON, expect Expect) []string {
	var failures []string

	if expect.NoTable {
		if t != nil {
			failures = append(failures, fmt.Sprintf("expected no table, got %d rows", len(t.Rows)))
		}
		return failures
	}

	needsTable := len(expect.Headers) > 0 || len(expect.Totals) > 0 || len(expect.Rows) > 0
	if !needsTable {
		return nil
	}
	if t == nil {
		return []string{"expected a table, report has none"}
	}

	if len(expect.Headers) > 0 && !slices.Equal(expect.Headers, t.Headers) {
		failures = append(failures, mismatch("headers", expect.Headers, t.Headers))
	}

	for _, name := range sortedKeys(expect.Totals) {
		cells, ok := rowCells(t, name)
		if !ok {
			failures = append(failures, fmt.Sprintf("total %s: row not found", name))
			continue
		}
		want := display(expect.Totals[name])
		got := ""
		if len(cells) > 0 {
			got = value.Format(cells[len(cells)-1])
		}
		if got != want {
			failures = append(failures, fmt.Sprintf("total %s: expected %q, got %q", name, want, got))
		}
	}

	for _, name := range sortedKeys(expect.Rows) {
		cells, ok := rowCells(t, name)
		if !ok {
			failures = append(failures, fmt.Sprintf("row %s: row not found", name))
			continue
		}
		want := make([]string, len(expect.Rows[name]))
		for i, v := range expect.Rows[name] {
			want[i] = display(v)
		}
		got := make([]string, len(cells))
		for i, c := range cells {
			got[i] = value.Format(c)
		}
		if !slices.Equal(want, got) {
			failures = append(failures, mismatch("row "+name, want, got))
		}
	}
	return failures
}

func checkList(report *render.ReportJSON, expect Expect) []string {
	if expect.NoList {
		if report.List != nil {
			return []string{fmt.Sprintf("expected no list, got %d values", len(report.List.Values))}
		}
		return nil
	}
	if len(expect.List) == 0 {
		return nil
	}
	if report.List == nil {
		return []string{"expected a list, report has none"}
	}
	if !slices.Equal(expect.List, report.List.Values) {
		return []string{mismatch("list", expect.List, report.List.Values)}
	}
	return nil
}

func rowCells(t *render.TableJSON, name string) ([]value.Value, bool) {
	for _, row := range t.Rows {
		if row.Name == value.NormalizeKey(name) {
			return row.Cells, true
		}
	}
	return nil, false
}

// display renders an expected YAML scalar the same way cells are rendered.
func display(v any) string {
	conv, err := value.FromAny(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return value.Format(conv)
}

func mismatch[T any](what string, want, got []T) string {
	return fmt.Sprintf("%s: expected %s, got %s", what, join(want), join(got))
}

func join[T any](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func codeOrNone(code string) string {
	if code == "" {
		return "an uncoded error"
	}
	return code
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
