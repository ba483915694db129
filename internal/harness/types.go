package harness

import (
	"github.com/roach88/weekreview/internal/render"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates overall test success.
	// True if every expectation matched.
	Pass bool `json:"pass"`

	// Report is the JSON form of the built report. Nil when the build
	// failed.
	Report *render.ReportJSON `json:"report,omitempty"`

	// ErrorCode is the code of the build failure, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// Err is the build failure, if any.
	Err error `json:"-"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
