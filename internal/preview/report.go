package preview

import "errors"

// Outcome is the result of producing one file.
type Outcome struct {
	Name  string
	Width int
	Path  string
	Err   error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Report aggregates the verbatim copy and every resized preview.
type Report struct {
	Copy     Outcome
	Previews []Outcome
}

// Aggregate builds a Report; previews keep table order.
func Aggregate(copyOutcome Outcome, previews []Outcome) Report {
	return Report{Copy: copyOutcome, Previews: previews}
}

// Failures counts failed resizes. The copy is not included.
func (r Report) Failures() int {
	n := 0
	for _, o := range r.Previews {
		if o.Failed() {
			n++
		}
	}
	return n
}

// OK is true when the copy and every resize succeeded.
func (r Report) OK() bool {
	return !r.Copy.Failed() && r.Failures() == 0
}

// Failed lists every failed outcome, the copy first.
func (r Report) Failed() []Outcome {
	var failed []Outcome
	if r.Copy.Failed() {
		failed = append(failed, r.Copy)
	}
	for _, o := range r.Previews {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

func (r Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}

// ExitCode maps the report to a process exit status.
func (r Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}
