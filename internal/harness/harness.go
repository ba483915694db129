package harness

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/render"
	"github.com/roach88/weekreview/internal/reportspec"
	"github.com/roach88/weekreview/internal/review"
	"github.com/roach88/weekreview/internal/value"
)

// Option configures a run.
type Option func(*runner)

type runner struct {
	logger *slog.Logger
}

// WithLogger passes a logger through to the review engine.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Run builds the scenario's report and checks it against the scenario's
// expectations.
//
// Spec and engine failures are part of the result, not the returned
// error: a scenario may expect them. The returned error is reserved for
// scenarios whose inputs cannot be turned into records at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	r := &runner{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}

	records, err := Records(scenario.Days)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	target, err := day.ParseName(scenario.Date)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	report, buildErr := r.build(scenario, records, target)
	if buildErr != nil {
		result.Err = buildErr
		result.ErrorCode = errorCode(buildErr)
	} else {
		result.Report = report
	}

	for _, msg := range Check(result, scenario.Expect) {
		result.AddError(msg)
	}
	return result, nil
}

func (r *runner) build(scenario *Scenario, records []day.Record, target time.Time) (*render.ReportJSON, error) {
	spec, err := reportspec.Parse([]byte(scenario.Spec))
	if err != nil {
		return nil, err
	}

	eng, err := review.New(records, *spec, review.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}

	switch scenario.Mode {
	case ModeMonth:
		rep, err := eng.Month(target)
		if err != nil {
			return nil, err
		}
		out := render.MonthJSON(rep)
		return &out, nil
	default:
		rep, err := eng.Week(target)
		if err != nil {
			return nil, err
		}
		out := render.WeekJSON(rep)
		return &out, nil
	}
}

// Records converts scenario days into records. Names are kept as written
// so the engine can reject malformed ones.
func Records(days []DayStep) ([]day.Record, error) {
	records := make([]day.Record, 0, len(days))
	for _, d := range days {
		v, err := value.FromAny(map[string]any(d.Properties))
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", d.Name, err)
		}
		props, _ := v.(value.Object)
		if props == nil {
			props = value.Object{}
		}
		records = append(records, day.Record{Name: d.Name, Properties: props})
	}
	return records, nil
}

func errorCode(err error) string {
	if code := review.CodeOf(err); code != "" {
		return string(code)
	}
	return reportspec.CodeOf(err)
}
