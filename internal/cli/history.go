package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/weekreview/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Kind  string
}

// HistoryEntry is one archived report without its payload.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	TargetDate string    `json:"target_date"`
	SpecHash   string    `json:"spec_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived reports",
		Long: `List reports saved with --save, newest first.

Examples:
  weekreview history
  weekreview history --kind month --limit 5
  weekreview history --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of reports (0 for all)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only week or month reports")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Kind != "" && opts.Kind != store.KindWeek && opts.Kind != store.KindMonth {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
			fmt.Sprintf("invalid --kind %q: must be week or month", opts.Kind), nil)
	}
	if opts.Limit < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "--limit cannot be negative", nil)
	}

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer st.Close()

	reports, err := st.ListReports(cmd.Context(), store.ListFilter{Kind: opts.Kind, Limit: opts.Limit})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	entries := make([]HistoryEntry, len(reports))
	for i, r := range reports {
		entries[i] = HistoryEntry{
			ID:         r.ID,
			Kind:       r.Kind,
			TargetDate: r.TargetDate,
			SpecHash:   r.SpecHash,
			CreatedAt:  r.CreatedAt,
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No saved reports.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(formatter.Writer)
	tw.AppendHeader(table.Row{"ID", "Kind", "Date", "Saved"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.ID, e.Kind, e.TargetDate, e.CreatedAt.Format(time.RFC3339)})
	}
	switch opts.Format {
	case "markdown":
		tw.RenderMarkdown()
	case "html":
		tw.RenderHTML()
	default:
		tw.Render()
	}
	return nil
}
