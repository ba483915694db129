package review

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/list"
	"github.com/roach88/weekreview/internal/reportspec"
	"github.com/roach88/weekreview/internal/table"
)

// Engine builds reports over one set of day records.
type Engine struct {
	records []day.Record
	spec    reportspec.ReportSpec
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WeekReport is the result of Engine.Week. Table and List are nil when the
// spec does not ask for them or the week has no records.
type WeekReport struct {
	WeekDate time.Time
	Week     int
	Days     []string
	Table    *table.Table
	List     *list.List
}

// MonthReport is the result of Engine.Month.
type MonthReport struct {
	MonthDate time.Time
	Month     time.Month
	Weeks     []int
	Table     *table.Table
	List      *list.List
}

// New validates the records and the spec's row references.
//
// Every record must be named YYYY-MM-DD and be a real calendar date;
// otherwise the whole set is rejected with an INPUT_SHAPE error. Record
// dates are taken from their names.
func New(records []day.Record, spec reportspec.ReportSpec, opts ...Option) (*Engine, error) {
	e := &Engine{
		spec:   spec,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	var bad []string
	e.records = make([]day.Record, 0, len(records))
	for _, r := range records {
		date, err := day.ParseName(r.Name)
		if err != nil {
			bad = append(bad, r.Name)
			continue
		}
		r.Date = date
		e.records = append(e.records, r)
	}
	if len(bad) > 0 {
		return nil, NewInputShapeError(bad)
	}

	if err := table.CheckReferences(spec.Table); err != nil {
		return nil, wrapTableError(err)
	}

	e.logger.Debug("review engine ready",
		"records", len(e.records),
		"rows", len(spec.Table),
		"list", spec.List)
	return e, nil
}

// Week builds the report for target's ISO week.
func (e *Engine) Week(target time.Time) (*WeekReport, error) {
	if target.IsZero() {
		return nil, &Error{Code: ErrCodeInputShape, Message: "target date is required"}
	}
	target = day.Truncate(target)

	selected := day.SortForDisplay(day.InWeek(e.records, target))
	report := &WeekReport{
		WeekDate: target,
		Week:     day.Week(target),
		Days:     make([]string, len(selected)),
	}
	for i, r := range selected {
		report.Days[i] = r.Name
	}

	e.logger.Debug("week selected",
		"week", report.Week,
		"target", target.Format(day.Layout),
		"days", len(selected))

	if len(selected) == 0 {
		return report, nil
	}

	if e.spec.HasTable() {
		t, err := table.Build(selected, e.spec.Table)
		if err != nil {
			return nil, wrapTableError(err)
		}
		report.Table = t
	}
	if e.spec.HasList() {
		report.List = list.Build(selected, e.spec.List)
	}
	return report, nil
}

// Month builds the report for target's month from the weeks ending on each
// of its Sundays.
func (e *Engine) Month(target time.Time) (*MonthReport, error) {
	if target.IsZero() {
		return nil, &Error{Code: ErrCodeInputShape, Message: "target date is required"}
	}
	target = day.Truncate(target)

	if e.spec.HasTable() && !e.spec.HasAggregation() {
		return nil, NewMonthRequiresAggregationError()
	}

	report := &MonthReport{MonthDate: target, Month: target.Month()}
	var columns []*table.Table
	var lists []*list.List

	for _, sunday := range day.SundaysInMonth(target) {
		week, err := e.Week(sunday)
		if err != nil {
			return nil, err
		}
		if len(week.Days) == 0 {
			continue
		}
		report.Weeks = append(report.Weeks, week.Week)

		if week.Table != nil && !week.Table.IsEmpty() {
			columns = append(columns, table.LastColumn(week.Table, table.WeekHeader{Week: week.Week}))
		}
		if week.List != nil {
			lists = append(lists, week.List)
		}
	}

	e.logger.Debug("month weeks collected",
		"month", int(report.Month),
		"weeks", len(report.Weeks))

	if len(columns) > 0 {
		t, err := table.AppendAggregates(table.Merge(columns), e.spec.Table)
		if err != nil {
			return nil, wrapTableError(err)
		}
		report.Table = t
	}
	report.List = list.Concat(lists)
	return report, nil
}

func wrapTableError(err error) error {
	var ref *table.ReferenceError
	if errors.As(err, &ref) {
		return NewConfigReferenceError(ref.Row, ref.Missing, err)
	}
	return err
}
