package review

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/weekreview/internal/aggregate"
	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/reportspec"
	"github.com/roach88/weekreview/internal/table"
	"github.com/roach88/weekreview/internal/testutil"
	"github.com/roach88/weekreview/internal/value"
)

type props = testutil.Props

var focusSpec = reportspec.ReportSpec{
	Table: []reportspec.PropertySpec{{Name: "focus_minutes", Aggregation: aggregate.Sum}},
	List:  "tags",
}

func newEngine(t *testing.T, records []day.Record, spec reportspec.ReportSpec) *Engine {
	t.Helper()
	e, err := New(records, spec)
	require.NoError(t, err)
	return e
}

// february2026 has four Sundays: Feb 1, 8, 15 and 22 (ISO weeks 5-8).
func february2026() []day.Record {
	return []day.Record{
		testutil.Day("2026-01-27", props{"focus_minutes": 90, "tags": []any{"a"}}),
		testutil.Day("2026-02-03", props{"focus_minutes": 40, "tags": "b"}),
		testutil.Day("2026-02-05", props{"focus_minutes": 20}),
		testutil.Day("2026-02-10", props{"focus_minutes": 120, "tags": []any{"c", "d"}}),
		testutil.Day("2026-02-17", props{"focus_minutes": 30}),
		testutil.Day("2026-02-22", props{"tags": []any{"e"}}),
		// Week 9 ends on March 1 and is not part of February.
		testutil.Day("2026-02-24", props{"focus_minutes": 1000, "tags": "late"}),
	}
}

func TestWeekSelectsAndOrders(t *testing.T) {
	records := []day.Record{
		testutil.Day("2024-03-10", props{"focus_minutes": 5}),
		testutil.Day("2024-03-11", props{"focus_minutes": 99}),
		testutil.Day("2024-03-04", props{"focus_minutes": 30}),
		testutil.Day("2024-03-03", props{"focus_minutes": 99}),
		testutil.Day("2024-03-06", props{"focus_minutes": 45}),
	}
	e := newEngine(t, records, focusSpec)

	report, err := e.Week(testutil.Date("2024-03-07"))
	require.NoError(t, err)

	assert.Equal(t, 10, report.Week)
	assert.Equal(t, []string{"2024-03-04", "2024-03-06", "2024-03-10"}, report.Days)
	assert.Equal(t, []table.Header{
		table.DateHeader{Date: testutil.Date("2024-03-04")},
		table.DateHeader{Date: testutil.Date("2024-03-06")},
		table.DateHeader{Date: testutil.Date("2024-03-10")},
		table.LabelHeader{Label: table.TotalLabel},
	}, report.Table.Headers)
	assert.Equal(t, value.Number(80), report.Table.Total("focus_minutes"))
}

func TestWeekTruncatesTarget(t *testing.T) {
	e := newEngine(t, []day.Record{testutil.Day("2024-03-10", nil)}, focusSpec)

	report, err := e.Week(time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, testutil.Date("2024-03-10"), report.WeekDate)
	assert.Len(t, report.Days, 1)
}

func TestWeekIsOrderIndependent(t *testing.T) {
	records := february2026()
	reversed := make([]day.Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	a, err := newEngine(t, records, focusSpec).Week(testutil.Date("2026-02-04"))
	require.NoError(t, err)
	b, err := newEngine(t, reversed, focusSpec).Week(testutil.Date("2026-02-04"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWeekWithoutRecords(t *testing.T) {
	e := newEngine(t, february2026(), focusSpec)

	report, err := e.Week(testutil.Date("2025-06-01"))
	require.NoError(t, err)
	assert.Empty(t, report.Days)
	assert.Nil(t, report.Table)
	assert.Nil(t, report.List)
}

func TestWeekBuildsOnlyRequestedArtifacts(t *testing.T) {
	records := february2026()

	report, err := newEngine(t, records, reportspec.ReportSpec{List: "tags"}).Week(testutil.Date("2026-02-04"))
	require.NoError(t, err)
	assert.Nil(t, report.Table)
	require.NotNil(t, report.List)
	assert.Equal(t, []string{"b"}, report.List.Values)

	report, err = newEngine(t, records, reportspec.ReportSpec{Table: focusSpec.Table}).Week(testutil.Date("2026-02-04"))
	require.NoError(t, err)
	assert.NotNil(t, report.Table)
	assert.Nil(t, report.List)
}

func TestMonthRollup(t *testing.T) {
	e := newEngine(t, february2026(), focusSpec)

	report, err := e.Month(testutil.Date("2026-02-14"))
	require.NoError(t, err)

	assert.Equal(t, time.February, report.Month)
	assert.Equal(t, []int{5, 6, 7, 8}, report.Weeks)
	assert.Equal(t, []table.Header{
		table.WeekHeader{Week: 5},
		table.WeekHeader{Week: 6},
		table.WeekHeader{Week: 7},
		table.WeekHeader{Week: 8},
		table.LabelHeader{Label: table.TotalLabel},
	}, report.Table.Headers)
	assert.Equal(t, []value.Value{
		value.Number(90), value.Number(60), value.Number(120), value.Number(30), value.Number(300),
	}, report.Table.Row("focus_minutes"))
}

func TestMonthListKeepsWeekOrder(t *testing.T) {
	e := newEngine(t, february2026(), focusSpec)

	report, err := e.Month(testutil.Date("2026-02-01"))
	require.NoError(t, err)

	require.NotNil(t, report.List)
	assert.Equal(t, "tags", report.List.Header)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, report.List.Values)
}

func TestMonthRecomputesDerivedTotals(t *testing.T) {
	spec := reportspec.ReportSpec{Table: []reportspec.PropertySpec{
		{Name: "tasks", Aggregation: aggregate.Sum},
		{Name: "time_spent", Aggregation: aggregate.Sum},
		{Name: "rate", Generate: &[2]string{"tasks", "time_spent"}},
	}}
	records := []day.Record{
		testutil.Day("2026-02-02", props{"tasks": 6, "time_spent": "01:00:00"}),
		testutil.Day("2026-02-09", props{"tasks": 3, "time_spent": "02:00:00"}),
	}

	report, err := newEngine(t, records, spec).Month(testutil.Date("2026-02-20"))
	require.NoError(t, err)

	assert.Equal(t, []int{6, 7}, report.Weeks)
	assert.Equal(t, value.Number(9), report.Table.Total("tasks"))
	assert.Equal(t, value.String("03:00:00"), report.Table.Total("time_spent"))
	assert.Equal(t, []value.Value{value.String("6.00"), value.String("1.50"), value.String("3.00")}, report.Table.Row("rate"))
}

func TestMonthRequiresAggregation(t *testing.T) {
	spec := reportspec.ReportSpec{Table: []reportspec.PropertySpec{{Name: "focus_minutes"}}}
	e := newEngine(t, february2026(), spec)

	_, err := e.Month(testutil.Date("2026-02-14"))
	require.Error(t, err)
	assert.True(t, IsMonthRequiresAggregationError(err))

	// Week reports are still fine without aggregation.
	week, err := e.Week(testutil.Date("2026-02-14"))
	require.NoError(t, err)
	assert.True(t, week.Table.Rectangular())
}

func TestMonthWithoutRecords(t *testing.T) {
	e := newEngine(t, february2026(), focusSpec)

	report, err := e.Month(testutil.Date("2025-06-10"))
	require.NoError(t, err)
	assert.Empty(t, report.Weeks)
	assert.Nil(t, report.Table)
	assert.Nil(t, report.List)
}

func TestNewRejectsBadNames(t *testing.T) {
	for _, bad := range []string{"2024-13-40", "notadate"} {
		t.Run(bad, func(t *testing.T) {
			records := []day.Record{
				testutil.Day("2024-03-04", props{"focus_minutes": 1}),
				testutil.Raw(bad, props{"focus_minutes": 1}),
			}
			_, err := New(records, focusSpec)
			require.Error(t, err)
			assert.True(t, IsInputShapeError(err))

			var re *Error
			require.ErrorAs(t, err, &re)
			assert.Equal(t, bad, re.Name)
			assert.Equal(t, "1", re.Details["count"])
		})
	}
}

func TestNewRejectsUnknownReference(t *testing.T) {
	spec := reportspec.ReportSpec{Table: []reportspec.PropertySpec{
		{Name: "tasks", Aggregation: aggregate.Sum},
		{Name: "rate", Generate: &[2]string{"tasks", "hours"}},
	}}
	_, err := New(nil, spec)
	require.Error(t, err)
	assert.True(t, IsConfigReferenceError(err))
	assert.Contains(t, err.Error(), `"hours"`)

	var ref *table.ReferenceError
	assert.ErrorAs(t, err, &ref)
}

func TestZeroTarget(t *testing.T) {
	e := newEngine(t, nil, focusSpec)
	_, err := e.Week(time.Time{})
	assert.True(t, IsInputShapeError(err))
	_, err = e.Month(time.Time{})
	assert.True(t, IsInputShapeError(err))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e, err := New(february2026(), focusSpec, WithLogger(logger))
	require.NoError(t, err)
	_, err = e.Week(testutil.Date("2026-02-04"))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "week selected")
	assert.Contains(t, buf.String(), "days=2")
}
