package pipeline

import "fmt"

// Results accumulates the outcome of one pipeline run. Skipped steps are reported
// through the StepLogger but do not appear here.
type Results struct {
	Steps    []StepResult
	Failures []StepFailure
}

type StepResult struct {
	Name   string
	Errors []error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// StepFailure pairs one step error with the step it came from, for the
// end-of-run summary.
type StepFailure struct {
	Name string
	Err  error
}

func (f StepFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.Name, f.Err)
}
