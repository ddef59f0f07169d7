package harness

import "github.com/roach88/occfilter/internal/tagged"

// Result is the outcome of running a suite.
type Result struct {
	// Pass is true when every case passed.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`

	// Errors collects failure messages across all cases, each prefixed
	// with the case name.
	Errors []string `json:"errors,omitempty"`
}

// CaseResult is the outcome of a single case.
type CaseResult struct {
	Name string `json:"name"`
	Pass bool   `json:"pass"`

	// Valid reports whether the input decoded.
	Valid bool `json:"valid"`

	// Code is the error code of a rejected input.
	Code string `json:"code,omitempty"`

	// Encoded is the tagged encoding of an accepted input.
	Encoded tagged.Object `json:"encoded,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddCase records a case outcome and folds its errors into the result.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	for _, e := range c.Errors {
		r.AddError(c.Name + ": " + e)
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed returns the number of failed cases.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Pass {
			n++
		}
	}
	return n
}
