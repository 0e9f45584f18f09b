package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicpod-ci/pipeline/framework"
	"github.com/magicpod-ci/pipeline/pipeline"
)

func runExec(t *testing.T, def pipeline.StepDefinition) (framework.CapturedOutput, error) {
	t.Helper()
	run, err := newExecStep(def)
	require.NoError(t, err)
	capture := &framework.CapturingLogger{}
	stepErr := run(context.Background(), &pipeline.StepContext{
		Logger:  capture,
		Workdir: t.TempDir(),
		Env:     def.Env,
	})
	return capture.Output(), stepErr
}

func TestExecStepRequiresCommand(t *testing.T) {
	_, err := newExecStep(pipeline.StepDefinition{Name: "x", Kind: "exec"})
	require.Error(t, err)
}

func TestExecStepCapturesOutput(t *testing.T) {
	output, err := runExec(t, pipeline.StepDefinition{
		Name:    "hello",
		Kind:    "exec",
		Command: []string{"sh", "-c", "echo first; echo second"},
	})
	require.NoError(t, err)

	text := output.ToString("")
	assert.Contains(t, text, "first")
	assert.Contains(t, text, "second")
}

func TestExecStepInjectsEnv(t *testing.T) {
	output, err := runExec(t, pipeline.StepDefinition{
		Name:    "env",
		Kind:    "exec",
		Command: []string{"sh", "-c", "echo plan=$TESTRAIL_TESTPLAN_JSON_FILENAME"},
		Env:     map[string]string{"TESTRAIL_TESTPLAN_JSON_FILENAME": "testplan.json"},
	})
	require.NoError(t, err)
	assert.Contains(t, output.ToString(""), "plan=testplan.json")
}

func TestExecStepReportsNonZeroExit(t *testing.T) {
	_, err := runExec(t, pipeline.StepDefinition{
		Name:    "fail",
		Kind:    "exec",
		Command: []string{"sh", "-c", "echo dying >&2; exit 3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestLineWriterBuffersPartialLines(t *testing.T) {
	capture := &framework.CapturingLogger{}
	w := &lineWriter{logger: capture}

	_, _ = w.Write([]byte("partial"))
	assert.Empty(t, capture.Output())

	_, _ = w.Write([]byte(" line\nnext"))
	output := capture.Output()
	require.Len(t, output, 1)
	assert.Equal(t, "partial line", output[0].Message)

	w.Flush()
	output = capture.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "next", output[1].Message)
	assert.False(t, strings.ContainsRune(output[0].Message, '\n'))
}
