package pipeline

import (
	"context"
	"errors"

	"github.com/magicpod-ci/pipeline/framework"
)

// Runner executes a workflow definition. Execution is strictly sequential: each
// step blocks to completion before the next is considered, and the first failure
// among on-success steps short-circuits the rest of them. "always" steps still
// run after a failure and "on-failure" steps run only after one; neither class can
// resurrect a failed run's exit status.
type Runner struct {
	workdir  string
	registry Registry
	filters  RegexFilters
	logger   StepLogger
}

func NewRunner(workdir string, registry Registry, filters RegexFilters, logger StepLogger) *Runner {
	if logger == nil {
		logger = NullStepLogger()
	}
	return &Runner{
		workdir:  workdir,
		registry: registry,
		filters:  filters,
		logger:   logger,
	}
}

func (r *Runner) Run(ctx context.Context, def Definition) Results {
	var results Results
	failed := false

	for _, sd := range def.Steps {
		if !r.filters.Match(sd.Name) {
			r.logger.StepSkipped(sd.Name, "excluded by filter")
			continue
		}
		switch sd.When {
		case Always:
		case OnFailure:
			if !failed {
				r.logger.StepSkipped(sd.Name, "no earlier step failed")
				continue
			}
		default:
			if failed {
				r.logger.StepSkipped(sd.Name, "an earlier step failed")
				continue
			}
		}

		result := r.runStep(ctx, sd)
		if result == nil {
			continue // skipped by the step itself
		}
		results.Steps = append(results.Steps, *result)
		for _, e := range result.Errors {
			results.Failures = append(results.Failures, StepFailure{Name: result.Name, Err: e})
			failed = true
		}
	}
	return results
}

// runStep returns nil when the step reported itself skipped.
func (r *Runner) runStep(ctx context.Context, sd StepDefinition) *StepResult {
	r.logger.StepStarted(sd.Name)

	capture := &framework.CapturingLogger{}
	run, err := r.registry.resolve(sd)
	if err == nil {
		err = run(ctx, &StepContext{
			Logger:  capture,
			Workdir: r.workdir,
			Env:     sd.Env,
		})
	}

	var skip SkipError
	if errors.As(err, &skip) {
		r.logger.StepSkipped(sd.Name, skip.Reason)
		return nil
	}

	result := StepResult{Name: sd.Name}
	if err != nil {
		result.Errors = append(result.Errors, err)
		r.logger.StepError(sd.Name, err)
	}
	r.logger.StepFinished(sd.Name, err != nil, capture.Output())
	return &result
}
