package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/magicpod-ci/pipeline/framework"
)

var consoleStepErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleStepFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleStepSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals
var allStepsPassedColor = color.New(color.FgGreen)                 //nolint:gochecknoglobals

// StepLogger receives step lifecycle events during a run. EndLog is called once
// after the last step with the accumulated results.
type StepLogger interface {
	StepStarted(name string)
	StepError(name string, err error)
	StepFinished(name string, failed bool, debugOutput framework.CapturedOutput)
	StepSkipped(name string, reason string)
	EndLog(results Results) error
}

type nullStepLogger struct{}

func (n nullStepLogger) StepStarted(string)                                  {}
func (n nullStepLogger) StepError(string, error)                             {}
func (n nullStepLogger) StepFinished(string, bool, framework.CapturedOutput) {}
func (n nullStepLogger) StepSkipped(string, string)                          {}
func (n nullStepLogger) EndLog(Results) error                                { return nil }

func NullStepLogger() StepLogger { return nullStepLogger{} }

type ConsoleStepLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleStepLogger) StepStarted(name string) {
	fmt.Printf("[%s]\n", name)
}

func (c ConsoleStepLogger) StepError(name string, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		_, _ = consoleStepErrorColor.Printf("  %s\n", line)
	}
}

func (c ConsoleStepLogger) StepFinished(name string, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		_, _ = consoleStepFailedColor.Printf("  FAILED: %s\n", name)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Println(debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleStepLogger) StepSkipped(name string, reason string) {
	if reason == "" {
		_, _ = consoleStepSkippedColor.Printf("  SKIPPED: %s\n", name)
	} else {
		_, _ = consoleStepSkippedColor.Printf("  SKIPPED: %s (%s)\n", name, reason)
	}
}

func (c ConsoleStepLogger) EndLog(results Results) error {
	if results.OK() {
		_, _ = allStepsPassedColor.Println("All steps passed")
	} else {
		_, _ = consoleStepFailedColor.Fprintf(os.Stderr, "FAILED STEPS (%d):\n", len(results.Failures))
		for _, f := range results.Failures {
			_, _ = consoleStepFailedColor.Fprintf(os.Stderr, "  * %s\n", f.Error())
		}
	}
	return nil
}

// MultiStepLogger fans events out to several loggers (console plus JUnit).
type MultiStepLogger struct {
	Loggers []StepLogger
}

func (m *MultiStepLogger) StepStarted(name string) {
	for _, l := range m.Loggers {
		l.StepStarted(name)
	}
}

func (m *MultiStepLogger) StepError(name string, err error) {
	for _, l := range m.Loggers {
		l.StepError(name, err)
	}
}

func (m *MultiStepLogger) StepFinished(name string, failed bool, debugOutput framework.CapturedOutput) {
	for _, l := range m.Loggers {
		l.StepFinished(name, failed, debugOutput)
	}
}

func (m *MultiStepLogger) StepSkipped(name string, reason string) {
	for _, l := range m.Loggers {
		l.StepSkipped(name, reason)
	}
}

func (m *MultiStepLogger) EndLog(results Results) error {
	var firstErr error
	for _, l := range m.Loggers {
		if err := l.EndLog(results); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
