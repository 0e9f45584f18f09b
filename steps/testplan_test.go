package steps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicpod-ci/pipeline/framework"
	"github.com/magicpod-ci/pipeline/framework/opt"
	"github.com/magicpod-ci/pipeline/pipeline"
)

const testPlanJSON = `{
  "id": 118,
  "name": "Release check",
  "entries": [
    {
      "id": "3933d74b-4282-4c1f-be62-a641ab427063",
      "name": "Smoke",
      "runs": [{"id": 81, "name": "Smoke run"}]
    }
  ]
}`

func TestSummarizePlanLogsIdentifiers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testplan.json"), []byte(testPlanJSON), 0o600))

	capture := &framework.CapturingLogger{}
	require.NoError(t, summarizePlan(capture, dir, "testplan.json"))

	text := capture.Output().ToString("")
	assert.Contains(t, text, "test plan 118")
	assert.Contains(t, text, "entry 3933d74b-4282-4c1f-be62-a641ab427063")
	assert.Contains(t, text, "run 81")
}

func TestSummarizePlanRejectsMissingFile(t *testing.T) {
	err := summarizePlan(&framework.CapturingLogger{}, t.TempDir(), "testplan.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read test plan descriptor")
}

func TestSummarizePlanRejectsMalformedDescriptor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testplan.json"), []byte("not json"), 0o600))

	err := summarizePlan(&framework.CapturingLogger{}, dir, "testplan.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed test plan descriptor")
}

func TestExecStepSummarizesDeclaredPlanFile(t *testing.T) {
	run, err := newExecStep(pipeline.StepDefinition{
		Name:     "prepare",
		Kind:     "exec",
		Command:  []string{"sh", "-c", `echo '{"id": 7, "entries": []}' > testplan.json`},
		PlanFile: opt.Some("testplan.json"),
	})
	require.NoError(t, err)

	capture := &framework.CapturingLogger{}
	require.NoError(t, run(context.Background(), &pipeline.StepContext{
		Logger:  capture,
		Workdir: t.TempDir(),
	}))
	assert.Contains(t, capture.Output().ToString(""), "test plan 7")
}

func TestExecStepFailsWhenDeclaredPlanFileIsMissing(t *testing.T) {
	run, err := newExecStep(pipeline.StepDefinition{
		Name:     "prepare",
		Kind:     "exec",
		Command:  []string{"true"},
		PlanFile: opt.Some("testplan.json"),
	})
	require.NoError(t, err)

	err = run(context.Background(), &pipeline.StepContext{
		Logger:  &framework.CapturingLogger{},
		Workdir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test plan descriptor")
}
