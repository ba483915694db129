package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/weekreview/internal/reportspec"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                         `json:"valid"`
	Hash   string                       `json:"hash,omitempty"`
	Rows   int                          `json:"rows"`
	List   string                       `json:"list,omitempty"`
	Errors []reportspec.ValidationError `json:"errors,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Spec string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a report spec",
		Long: `Validate a report spec without reading any notes.

Checks YAML syntax and the spec schema, then reports every cross-row
problem (duplicate names, blank names, bad generate references) at once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "report spec file (YAML)")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	src, err := os.ReadFile(opts.Spec)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("spec file not found: %s", opts.Spec), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("Validating %s (%d bytes)", opts.Spec, len(src))

	spec, err := reportspec.Compile(src)
	if err != nil {
		var ce *reportspec.CompileError
		if errors.As(err, &ce) {
			return outputValidationErrors(formatter, []reportspec.ValidationError{{
				Field:   ce.Field,
				Message: ce.Message,
				Code:    ce.Code,
			}})
		}
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	if errs := reportspec.Validate(spec); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	hash, err := spec.Hash()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	return outputValidateSuccess(formatter, ValidationResult{
		Valid: true,
		Hash:  hash,
		Rows:  len(spec.Table),
		List:  spec.List,
	})
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Spec valid")
	formatter.VerboseLog("  rows: %d, list: %q, hash: %s", result.Rows, result.List, result.Hash)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []reportspec.ValidationError) error {
	if formatter.IsJSON() {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %d error(s) found:\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", e.Code, e.Field, e.Message)
		}
	}

	return NewExitError(ExitFailure, fmt.Sprintf("%s: spec has %d error(s)", errs[0].Code, len(errs)))
}
