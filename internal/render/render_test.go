package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/weekreview/internal/aggregate"
	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/list"
	"github.com/roach88/weekreview/internal/reportspec"
	"github.com/roach88/weekreview/internal/review"
	reviewtable "github.com/roach88/weekreview/internal/table"
	"github.com/roach88/weekreview/internal/testutil"
	"github.com/roach88/weekreview/internal/value"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// raggedTable has a blank cell and a row that is one cell short.
func raggedTable() *reviewtable.Table {
	return &reviewtable.Table{
		Headers: []reviewtable.Header{
			reviewtable.DateHeader{Date: testutil.Date("2024-03-04")},
			reviewtable.DateHeader{Date: testutil.Date("2024-03-06")},
			reviewtable.LabelHeader{Label: reviewtable.TotalLabel},
		},
		Data: map[string][]value.Value{
			"tasks":      {value.Number(8), nil, value.Number(8)},
			"time_spent": {value.String("02:00:00"), value.String(""), value.String("02:00:00")},
			"rate":       {value.String("4.00"), value.String(""), value.String("4.00")},
			"mood":       {value.String("good"), value.Number(3)},
		},
		Rows: []string{"tasks", "time_spent", "rate", "mood"},
	}
}

func weekReport(t *testing.T) *review.WeekReport {
	t.Helper()
	spec := reportspec.ReportSpec{
		Table: []reportspec.PropertySpec{
			{Name: "tasks", Aggregation: aggregate.Sum},
			{Name: "time_spent", Aggregation: aggregate.Sum},
			{Name: "rate", Generate: &[2]string{"tasks", "time_spent"}},
		},
		List: "tags",
	}
	records := []day.Record{
		testutil.Day("2024-03-10", testutil.Props{"tasks": 2, "time_spent": "01:00:00", "tags": "walk"}),
		testutil.Day("2024-03-04", testutil.Props{"tasks": 8, "time_spent": "02:00:00", "tags": []any{"deep-work"}}),
	}
	e, err := review.New(records, spec)
	require.NoError(t, err)
	r, err := e.Week(testutil.Date("2024-03-06"))
	require.NoError(t, err)
	return r
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Markdown")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestHeaderLabel(t *testing.T) {
	assert.Equal(t, "4 Mon", HeaderLabel(reviewtable.DateHeader{Date: testutil.Date("2024-03-04")}))
	assert.Equal(t, "10 Sun", HeaderLabel(reviewtable.DateHeader{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)}))
	assert.Equal(t, "12", HeaderLabel(reviewtable.WeekHeader{Week: 12}))
	assert.Equal(t, "Total", HeaderLabel(reviewtable.LabelHeader{Label: "Total"}))
}

func TestTableText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, raggedTable(), FormatText))
	newGoldie(t).Assert(t, "table_text", buf.Bytes())
}

func TestTableMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, raggedTable(), FormatMarkdown))
	newGoldie(t).Assert(t, "table_markdown", buf.Bytes())
}

func TestTableHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, raggedTable(), FormatHTML))

	out := buf.String()
	assert.Contains(t, out, "<table")
	assert.Contains(t, out, "Property")
	assert.Contains(t, out, "4 Mon")
	assert.Contains(t, out, "02:00:00")
}

func TestTableNothingToRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil, FormatText))
	require.NoError(t, Table(&buf, reviewtable.Empty(), FormatText))
	assert.Empty(t, buf.String())
}

func TestList(t *testing.T) {
	l := &list.List{Header: "tags", Values: []string{"a", "<b>"}}

	var buf bytes.Buffer
	require.NoError(t, List(&buf, l, FormatText))
	assert.Equal(t, "tags\n  - a\n  - <b>\n", buf.String())

	buf.Reset()
	require.NoError(t, List(&buf, l, FormatMarkdown))
	assert.Equal(t, "### tags\n\n- a\n- <b>\n", buf.String())

	buf.Reset()
	require.NoError(t, List(&buf, l, FormatHTML))
	assert.Equal(t, "<h3>tags</h3>\n<ul>\n  <li>a</li>\n  <li>&lt;b&gt;</li>\n</ul>\n", buf.String())

	buf.Reset()
	require.NoError(t, List(&buf, &list.List{Header: "tags", Values: []string{}}, FormatText))
	assert.Empty(t, buf.String())
}

func TestWeekReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WeekReport(&buf, weekReport(t), FormatText))
	newGoldie(t).Assert(t, "week_report_text", buf.Bytes())
}

func TestWeekReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WeekReport(&buf, weekReport(t), FormatJSON))
	newGoldie(t).Assert(t, "week_report_json", buf.Bytes())
}

func TestMonthReportJSON(t *testing.T) {
	report := &review.MonthReport{
		MonthDate: testutil.Date("2026-02-14"),
		Month:     time.February,
		Weeks:     []int{6},
		Table: &reviewtable.Table{
			Headers: []reviewtable.Header{reviewtable.WeekHeader{Week: 6}, reviewtable.LabelHeader{Label: "Total"}},
			Data:    map[string][]value.Value{"best": {value.Number(1), value.Number(1)}, "low": {}},
			Rows:    []string{"best", "low"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, MonthReport(&buf, report, FormatJSON))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "month", raw["kind"])
	assert.Equal(t, "Month Review №2", raw["title"])
	assert.Equal(t, float64(2), raw["month"])
	assert.Equal(t, []any{"6", "Total"}, raw["table"].(map[string]any)["headers"])
	assert.NotContains(t, raw, "list")
}

func TestNonFiniteTotalsRender(t *testing.T) {
	inf := &reviewtable.Table{
		Headers: []reviewtable.Header{reviewtable.LabelHeader{Label: "Total"}},
		Data:    map[string][]value.Value{"min": {value.Number(aggregate.Aggregate(nil, aggregate.Min))}},
		Rows:    []string{"min"},
	}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, inf, FormatMarkdown))
	assert.Contains(t, buf.String(), "| min | Infinity |")

	data, err := json.Marshal(ToTableJSON(inf))
	require.NoError(t, err)
	assert.JSONEq(t, `{"headers":["Total"],"rows":[{"name":"min","cells":["Infinity"]}]}`, string(data))
}
