package pipeline

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/magicpod-ci/pipeline/framework"
	o "github.com/magicpod-ci/pipeline/framework/opt"
)

// JUnitStepLogger writes one JUnit XML testsuite for the pipeline run, with one
// testcase per step, so CI dashboards can render per-step outcomes.
type JUnitStepLogger struct {
	filePath     string
	pipelineName string
	filters      RegexFilters
	stepNames    []string // preserves the order the steps were reached in
	steps        map[string]jUnitStepStatus
	lock         sync.Mutex
}

type jUnitStepStatus struct {
	failures  []error
	skipped   o.Maybe[string]
	output    string
	startTime time.Time
	duration  time.Duration
}

// Struct definitions for the JUnit XML schema - see https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName    xml.Name           `xml:"testsuite"`
	Tests      int                `xml:"tests,attr"`
	Failures   int                `xml:"failures,attr"`
	Time       string             `xml:"time,attr"`
	Name       string             `xml:"name,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type jUnitXMLFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

func NewJUnitStepLogger(filePath string, pipelineName string, filters RegexFilters) *JUnitStepLogger {
	return &JUnitStepLogger{
		filePath:     filePath,
		pipelineName: pipelineName,
		filters:      filters,
		steps:        make(map[string]jUnitStepStatus),
	}
}

func (j *JUnitStepLogger) StepStarted(name string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.track(name)
	j.steps[name] = jUnitStepStatus{startTime: time.Now()}
}

func (j *JUnitStepLogger) StepError(name string, err error) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.steps[name]
	status.failures = append(status.failures, err)
	j.steps[name] = status
}

func (j *JUnitStepLogger) StepFinished(name string, failed bool, debugOutput framework.CapturedOutput) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.steps[name]
	status.output = debugOutput.ToString("")
	status.duration = time.Since(status.startTime)
	j.steps[name] = status
}

func (j *JUnitStepLogger) StepSkipped(name string, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.track(name)
	status := j.steps[name]
	status.skipped = o.Some(reason)
	j.steps[name] = status
}

// track must be called with the lock held.
func (j *JUnitStepLogger) track(name string) {
	for _, n := range j.stepNames {
		if n == name {
			return
		}
	}
	j.stepNames = append(j.stepNames, name)
}

func (j *JUnitStepLogger) EndLog(results Results) error {
	fmt.Printf("Writing JUnit data to %s\n", j.filePath)

	j.lock.Lock()
	defer j.lock.Unlock()

	suite := jUnitXMLTestSuite{
		Name: fmt.Sprintf("CI pipeline: %s", j.pipelineName),
		Properties: []jUnitXMLProperty{
			{Name: "pipeline.name", Value: j.pipelineName},
			{Name: "pipeline.filter.mustMatch", Value: j.filters.MustMatch.String()},
			{Name: "pipeline.filter.mustNotMatch", Value: j.filters.MustNotMatch.String()},
		},
	}

	suiteTotalDuration := time.Duration(0)
	for _, name := range j.stepNames {
		status := j.steps[name]

		suite.Tests++
		if len(status.failures) != 0 {
			suite.Failures++
		}
		suiteTotalDuration += status.duration

		testCase := jUnitXMLTestCase{
			Classname: j.pipelineName,
			Name:      name,
			Time:      jUnitDurationString(status.duration),
		}
		if status.skipped.IsDefined() {
			testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.skipped.Value()}
		}
		if len(status.failures) != 0 {
			var messages []string
			for _, e := range status.failures {
				messages = append(messages, e.Error())
			}
			testCase.Failure = &jUnitXMLFailure{
				Message:  strings.Join(messages, "\n"),
				Contents: status.output,
			}
		}
		suite.TestCases = append(suite.TestCases, testCase)
	}
	suite.Time = jUnitDurationString(suiteTotalDuration)

	doc := jUnitXMLDocument{Suites: []jUnitXMLTestSuite{suite}}
	bytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')

	return os.WriteFile(j.filePath, bytes, 0644) //nolint:gosec
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
