package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/render"
	"github.com/roach88/weekreview/internal/reportspec"
	"github.com/roach88/weekreview/internal/review"
	"github.com/roach88/weekreview/internal/store"
	"github.com/roach88/weekreview/internal/vault"
)

// ReportOptions holds flags for the week and month commands.
type ReportOptions struct {
	*RootOptions
	Spec string // report spec file
	Date string // target day, YYYY-MM-DD
	Note string // note whose name is the target day
	Save bool   // archive the report
}

// SavedReport is the JSON payload when --save is given.
type SavedReport struct {
	ID     string             `json:"id"`
	Report *render.ReportJSON `json:"report"`
}

// NewWeekCommand creates the week command.
func NewWeekCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Build the review of one ISO week",
		Long: `Build the review table and list for the ISO week containing the target day.

The target is --date, or the name of --note, or today.

Examples:
  weekreview week --spec review.yaml
  weekreview week --spec review.yaml --date 2026-02-05
  weekreview week --spec review.yaml --note daily/2026-02-05.md --format markdown`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, store.KindWeek, cmd)
		},
	}
	addReportFlags(cmd, opts)
	return cmd
}

// NewMonthCommand creates the month command.
func NewMonthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Build the review of one month",
		Long: `Build the monthly rollup for the month containing the target day.

Each column is the total of the ISO week ending on one of the month's
Sundays. The spec must declare an aggregation on at least one table row.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, store.KindMonth, cmd)
		},
	}
	addReportFlags(cmd, opts)
	return cmd
}

func addReportFlags(cmd *cobra.Command, opts *ReportOptions) {
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "report spec file (YAML)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "target day, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "daily note whose name is the target day")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "archive the report in the database")
	_ = cmd.MarkFlagRequired("spec")
	cmd.MarkFlagsMutuallyExclusive("date", "note")
}

func runReport(ctx context.Context, opts *ReportOptions, kind string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	spec, err := reportspec.LoadFile(opts.Spec)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("spec file not found: %s", opts.Spec), nil)
		}
		return formatter.Fail(ExitFailure, specCode(err), err.Error(), nil)
	}

	target, err := opts.target()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
	}

	folder, err := opts.dailyFolder(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	formatter.VerboseLog("Reading daily notes from %s/%s", opts.vaultDir(), folder)

	records, err := vault.NewReader(opts.vaultDir(), folder).Records(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeVault, err.Error(), nil)
	}

	eng, err := review.New(records, *spec, review.WithLogger(logger))
	if err != nil {
		return reportError(formatter, err)
	}

	var (
		out     render.ReportJSON
		writeTo func(f render.Format) error
	)
	w := cmd.OutOrStdout()
	switch kind {
	case store.KindMonth:
		r, err := eng.Month(target)
		if err != nil {
			return reportError(formatter, err)
		}
		out = render.MonthJSON(r)
		writeTo = func(f render.Format) error { return render.MonthReport(w, r, f) }
	default:
		r, err := eng.Week(target)
		if err != nil {
			return reportError(formatter, err)
		}
		out = render.WeekJSON(r)
		writeTo = func(f render.Format) error { return render.WeekReport(w, r, f) }
	}

	var saved string
	if opts.Save {
		saved, err = opts.save(ctx, kind, spec, &out)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	}

	if formatter.IsJSON() {
		if opts.Save {
			return formatter.Success(SavedReport{ID: saved, Report: &out})
		}
		return formatter.Success(out)
	}

	f, err := render.ParseFormat(opts.Format)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
	}
	if err := writeTo(f); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}
	if opts.Save {
		fmt.Fprintf(formatter.GetErrWriter(), "Saved report %s\n", saved)
	}
	return nil
}

// target resolves the target day from --date, --note or the clock.
func (o *ReportOptions) target() (time.Time, error) {
	switch {
	case o.Date != "":
		t, err := day.ParseName(o.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", o.Date)
		}
		return t, nil
	case o.Note != "":
		rec, err := vault.RecordFromFile(o.Note)
		if err != nil {
			return time.Time{}, err
		}
		if rec.Date.IsZero() {
			return time.Time{}, fmt.Errorf("note %q is not named YYYY-MM-DD", o.Note)
		}
		return rec.Date, nil
	default:
		return day.Truncate(o.now()), nil
	}
}

// dailyFolder resolves the daily folder from the flag, then the stored
// setting, then the default. An absent database is not created.
func (o *RootOptions) dailyFolder(ctx context.Context) (string, error) {
	if o.DailyFolder != "" {
		return o.DailyFolder, nil
	}
	if _, err := os.Stat(o.dbPath()); err != nil {
		return store.DefaultDailyFolder, nil
	}
	st, err := o.openStore()
	if err != nil {
		return "", err
	}
	defer st.Close()
	return st.DailyFolder(ctx)
}

func (o *ReportOptions) save(ctx context.Context, kind string, spec *reportspec.ReportSpec, out *render.ReportJSON) (string, error) {
	hash, err := spec.Hash()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	st, err := o.openStore()
	if err != nil {
		return "", err
	}
	defer st.Close()

	rec, err := st.SaveReport(ctx, store.Report{
		Kind:       kind,
		TargetDate: out.Date,
		SpecHash:   hash,
		Payload:    payload,
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// reportError reports an engine failure under its code.
func reportError(formatter *OutputFormatter, err error) error {
	var re *review.Error
	if errors.As(err, &re) {
		var details interface{}
		if len(re.Details) > 0 {
			details = re.Details
		}
		msg := re.Message
		if re.Name != "" {
			msg = fmt.Sprintf("%s (%s)", re.Message, re.Name)
		}
		return formatter.Fail(ExitFailure, string(re.Code), msg, details)
	}
	return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
}

func specCode(err error) string {
	if code := reportspec.CodeOf(err); code != "" {
		return code
	}
	return ErrCodeGeneric
}
