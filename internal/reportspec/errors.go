package reportspec

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Spec error codes (E200-E299)
const (
	ErrSchema             = "E200" // spec does not match the report schema
	ErrSpecEmpty          = "E201" // spec has no content
	ErrDuplicateRow       = "E202" // two rows share a name
	ErrEmptyName          = "E203" // row name is blank
	ErrUnknownGenerateRef = "E204" // generate names a row that does not exist
	ErrSelfGenerateRef    = "E205" // generate names the row itself
	ErrYAMLSyntax         = "E206" // spec is not valid YAML
)

// CompileError is a failure to turn spec text into a ReportSpec.
type CompileError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is a cross-row problem in an otherwise well-formed spec.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors lets Parse return every problem at once.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// formatCUEError turns the first CUE error into a CompileError.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{Code: ErrSchema, Field: "spec", Message: err.Error()}
	}

	first := errs[0]
	field := strings.Join(first.Path(), ".")
	if field == "" {
		field = "spec"
	}
	format, args := first.Msg()
	ce := &CompileError{
		Code:    ErrSchema,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}

// CodeOf returns the E2xx code carried by err, or "" when err is not a
// spec error. For ValidationErrors the first error's code is returned.
func CodeOf(err error) string {
	var ce *CompileError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	var ves ValidationErrors
	if stderrors.As(err, &ves) && len(ves) > 0 {
		return ves[0].Code
	}
	var ve ValidationError
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
