package steps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magicpod-ci/pipeline/framework"
)

// planDescriptor is the subset of the test-management plan JSON worth echoing in
// the run log: the plan identifier and the identifiers of its entries and runs.
// The descriptor is produced and consumed by external collaborators; this type
// never writes it back.
type planDescriptor struct {
	ID      json.Number `json:"id"`
	Name    string      `json:"name"`
	Entries []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Runs []struct {
			ID   json.Number `json:"id"`
			Name string      `json:"name"`
		} `json:"runs"`
	} `json:"entries"`
}

// summarizePlan reads the descriptor file a collaborator command just wrote and
// logs which plan, entries, and runs the later steps will execute against. The
// path is resolved against the workdir unless absolute. A step that declared a
// plan file but produced an unreadable one is a failure.
func summarizePlan(logger framework.Logger, workdir, file string) error {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(workdir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read test plan descriptor: %w", err)
	}
	var plan planDescriptor
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("malformed test plan descriptor %s: %w", file, err)
	}

	logger.Printf("test plan %s (%s): %d entries", plan.ID, plan.Name, len(plan.Entries))
	for _, e := range plan.Entries {
		logger.Printf("  entry %s (%s)", e.ID, e.Name)
		for _, r := range e.Runs {
			logger.Printf("    run %s (%s)", r.ID, r.Name)
		}
	}
	return nil
}
