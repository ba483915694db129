package review

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes report errors.
type ErrorCode string

const (
	// ErrCodeInputShape indicates a record name or target date that is not
	// a YYYY-MM-DD calendar day.
	ErrCodeInputShape ErrorCode = "INPUT_SHAPE"

	// ErrCodeConfigReference indicates a derived row naming a missing row.
	ErrCodeConfigReference ErrorCode = "CONFIG_REFERENCE"

	// ErrCodeMonthRequiresAggregation indicates a month rollup over a table
	// in which no row declares an aggregation.
	ErrCodeMonthRequiresAggregation ErrorCode = "MONTH_REQUIRES_AGGREGATION"
)

// Error is a report build failure.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the offending record or row, when there is one.
	Name string

	// Details contains additional context.
	Details map[string]string

	err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// IsInputShapeError reports whether err is an INPUT_SHAPE error.
// Uses errors.As to handle wrapped errors.
func IsInputShapeError(err error) bool {
	return hasCode(err, ErrCodeInputShape)
}

// IsConfigReferenceError reports whether err is a CONFIG_REFERENCE error.
// Uses errors.As to handle wrapped errors.
func IsConfigReferenceError(err error) bool {
	return hasCode(err, ErrCodeConfigReference)
}

// IsMonthRequiresAggregationError reports whether err is a
// MONTH_REQUIRES_AGGREGATION error.
func IsMonthRequiresAggregationError(err error) bool {
	return hasCode(err, ErrCodeMonthRequiresAggregation)
}

// CodeOf returns the code of a report error, or "" for any other error.
func CodeOf(err error) ErrorCode {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewInputShapeError creates an Error for records not named YYYY-MM-DD.
func NewInputShapeError(names []string) *Error {
	e := &Error{
		Code:    ErrCodeInputShape,
		Message: "all daily notes should be named like YYYY-MM-DD",
		Details: map[string]string{
			"count": fmt.Sprintf("%d", len(names)),
			"names": strings.Join(names, ", "),
		},
	}
	if len(names) > 0 {
		e.Name = names[0]
	}
	return e
}

// NewConfigReferenceError wraps a missing-row error from the table builder.
func NewConfigReferenceError(row, missing string, err error) *Error {
	return &Error{
		Code:    ErrCodeConfigReference,
		Message: fmt.Sprintf("generate refers to %q, which is not a row of the table", missing),
		Name:    row,
		Details: map[string]string{"missing": missing},
		err:     err,
	}
}

// NewMonthRequiresAggregationError creates an Error for a month rollup
// without any aggregation row.
func NewMonthRequiresAggregationError() *Error {
	return &Error{
		Code:    ErrCodeMonthRequiresAggregation,
		Message: "monthly rollup requires table rows that declare aggregation",
	}
}
