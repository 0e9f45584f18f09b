package pipeline

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/magicpod-ci/pipeline/framework"
)

// Condition is a step's condition class: when the step runs relative to earlier
// failures. The zero value behaves like OnSuccess.
type Condition string

const (
	// OnSuccess steps run only while no earlier step has failed. This is the default.
	OnSuccess Condition = "on-success"
	// Always steps run regardless of earlier failures (artifact upload).
	Always Condition = "always"
	// OnFailure steps run only after an earlier step has failed (debug diagnostics).
	OnFailure Condition = "on-failure"
)

func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	switch Condition(s) {
	case OnSuccess, Always, OnFailure:
		*c = Condition(s)
		return nil
	}
	return fmt.Errorf("unknown step condition %q", s)
}

// StepContext is what a step implementation gets to work with while running. The
// Logger captures everything for later replay; nothing a step prints goes straight
// to the console.
type StepContext struct {
	Logger  framework.Logger
	Workdir string
	Env     map[string]string
}

// StepFunc is a runnable step. Returning a SkipError reports the step as skipped
// rather than failed.
type StepFunc func(ctx context.Context, sc *StepContext) error

// Registry maps step kinds to factories that turn a step's definition into a
// runnable StepFunc. Factory errors (a malformed definition for that kind) are
// treated as step failures by the runner.
type Registry map[string]func(def StepDefinition) (StepFunc, error)

func (r Registry) resolve(def StepDefinition) (StepFunc, error) {
	factory, ok := r[def.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown step kind %q", def.Kind)
	}
	return factory(def)
}

// SkipError is returned by a step that decided not to run (for example the upload
// step when no bucket is configured). The runner reports it as skipped, not failed.
type SkipError struct {
	Reason string
}

func (e SkipError) Error() string { return e.Reason }
