package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicpod-ci/pipeline/framework"
)

func TestJUnitStepLoggerWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")
	logger := NewJUnitStepLogger(path, "magicpod-ci", RegexFilters{})

	logger.StepStarted("fetch-client")
	logger.StepFinished("fetch-client", false, nil)

	logger.StepStarted("run-tests")
	logger.StepError("run-tests", errors.New("command failed"))
	logger.StepFinished("run-tests", true, framework.CapturedOutput{})

	logger.StepSkipped("upload-artifacts", "no bucket configured")

	require.NoError(t, logger.EndLog(Results{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `name="CI pipeline: magicpod-ci"`)
	assert.Contains(t, content, `tests="3"`)
	assert.Contains(t, content, `failures="1"`)
	assert.Contains(t, content, `command failed`)
	assert.Contains(t, content, `no bucket configured`)
}
