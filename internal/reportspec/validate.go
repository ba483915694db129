package reportspec

import (
	"fmt"
	"strings"
)

// Validate checks the rows of a spec against each other.
// Returns all errors found (does not fail-fast).
func Validate(spec *ReportSpec) []ValidationError {
	var errs []ValidationError

	names := make(map[string]bool, len(spec.Table))
	for i, row := range spec.Table {
		field := fmt.Sprintf("table[%d].name", i)

		// E203: name must be non-empty
		if strings.TrimSpace(row.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "row name is required and must be non-empty",
				Code:    ErrEmptyName,
			})
			continue
		}

		// E202: names are unique
		if names[row.Name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate row %q", row.Name),
				Code:    ErrDuplicateRow,
			})
		}
		names[row.Name] = true
	}

	for i, row := range spec.Table {
		if !row.Derived() {
			continue
		}
		field := fmt.Sprintf("table[%d].generate", i)
		for _, ref := range row.Generate {
			switch {
			case ref == row.Name:
				// E205: a row cannot derive from itself
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("row %q is generated from itself", row.Name),
					Code:    ErrSelfGenerateRef,
				})
			case !names[ref]:
				// E204: both inputs must be rows of the table
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("row %q is generated from unknown row %q", row.Name, ref),
					Code:    ErrUnknownGenerateRef,
				})
			}
		}
	}

	return errs
}
