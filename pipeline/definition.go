package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	o "github.com/magicpod-ci/pipeline/framework/opt"
)

// Definition is the declarative workflow loaded from the YAML file given with
// -config: an ordered list of steps with environment injection per step.
type Definition struct {
	Name  string           `yaml:"name"`
	Steps []StepDefinition `yaml:"steps"`
}

// StepDefinition declares one step. Env vars are injected opaquely into the step;
// the kind-specific fields (URL, Archive, Dir for fetch-client; Bucket, Prefix,
// Paths for upload-artifacts; Command and PlanFile for exec) are interpreted by the
// step's factory and ignored by the sequencer itself.
type StepDefinition struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	When    Condition         `yaml:"when"`
	Env     map[string]string `yaml:"env"`
	Command []string          `yaml:"command"`

	// PlanFile names a test-plan descriptor the command is expected to write;
	// after the command succeeds, its identifiers are echoed into the step log.
	PlanFile o.Maybe[string] `yaml:"plan_file"`

	URL     o.Maybe[string] `yaml:"url"`
	Archive o.Maybe[string] `yaml:"archive"`
	Dir     o.Maybe[string] `yaml:"dir"`

	Bucket o.Maybe[string] `yaml:"bucket"`
	Prefix o.Maybe[string] `yaml:"prefix"`
	Paths  []string        `yaml:"paths"`
}

// LoadDefinition reads and validates a workflow definition file. Unknown YAML
// fields are rejected so a typo in a step property fails loudly instead of being
// silently ignored.
func LoadDefinition(path string) (Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return Definition{}, fmt.Errorf("cannot open workflow definition: %w", err)
	}
	defer func() { _ = f.Close() }()

	var def Definition
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("malformed workflow definition %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("invalid workflow definition %s: %w", path, err)
	}
	return def, nil
}

// Validate checks the structural rules that hold for any registry: a nonempty
// name, at least one step, and unique nonempty step names and kinds.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("workflow has no name")
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("workflow has no steps")
	}
	seen := make(map[string]bool)
	for i, s := range d.Steps {
		if s.Name == "" {
			return fmt.Errorf("step %d has no name", i+1)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate step name %q", s.Name)
		}
		seen[s.Name] = true
		if s.Kind == "" {
			return fmt.Errorf("step %q has no kind", s.Name)
		}
	}
	return nil
}
