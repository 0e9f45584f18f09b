package steps

import (
	"github.com/magicpod-ci/pipeline/config"
	"github.com/magicpod-ci/pipeline/pipeline"
)

// NewRegistry wires the built-in step kinds to the environment-derived config.
func NewRegistry(cfg config.Config) pipeline.Registry {
	return pipeline.Registry{
		"exec": newExecStep,
		"fetch-client": func(def pipeline.StepDefinition) (pipeline.StepFunc, error) {
			return newFetchClientStep(cfg, def)
		},
		"upload-artifacts": func(def pipeline.StepDefinition) (pipeline.StepFunc, error) {
			return newUploadStep(cfg, def)
		},
		"debug-dump": newDebugDumpStep,
	}
}
