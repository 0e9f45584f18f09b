package main

import (
	"context"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"os"
	"strings"

	"github.com/magicpod-ci/pipeline/config"
	"github.com/magicpod-ci/pipeline/pipeline"
	"github.com/magicpod-ci/pipeline/steps"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("magicpod-ci-pipeline v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*pipeline.Results, error) {
	def, err := pipeline.LoadDefinition(params.configPath)
	if err != nil {
		return nil, err
	}

	pipeline.PrintFilterDescription(params.filters)

	var stepLogger pipeline.StepLogger
	consoleLogger := pipeline.ConsoleStepLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" {
		stepLogger = consoleLogger
	} else {
		stepLogger = &pipeline.MultiStepLogger{Loggers: []pipeline.StepLogger{
			consoleLogger,
			pipeline.NewJUnitStepLogger(params.jUnitFile, def.Name, params.filters),
		}}
	}

	registry := steps.NewRegistry(config.FromEnv())
	runner := pipeline.NewRunner(params.workdir, registry, params.filters, stepLogger)
	results := runner.Run(context.Background(), def)

	fmt.Println()
	if logErr := stepLogger.EndLog(results); logErr != nil {
		return nil, fmt.Errorf("error writing log: %v", logErr)
	}

	return &results, nil
}
