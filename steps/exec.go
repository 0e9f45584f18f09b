package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/magicpod-ci/pipeline/framework"
	"github.com/magicpod-ci/pipeline/framework/helpers"
	"github.com/magicpod-ci/pipeline/pipeline"
)

// newExecStep runs an external collaborator command as a black box: the command's
// environment is the process environment overlaid with the step's injected vars,
// its working directory is the pipeline workdir, and both output streams are
// captured line by line into the step log. A non-zero exit is a terminal failure.
// If the step declares a plan_file, the descriptor the command wrote there is
// summarized into the step log after a successful run.
func newExecStep(def pipeline.StepDefinition) (pipeline.StepFunc, error) {
	if len(def.Command) == 0 {
		return nil, errors.New("exec step requires a command")
	}
	command := def.Command
	planFile := def.PlanFile
	return func(ctx context.Context, sc *pipeline.StepContext) error {
		cmd := exec.CommandContext(ctx, command[0], command[1:]...)
		cmd.Dir = sc.Workdir
		cmd.Env = helpers.MergeEnviron(os.Environ(), sc.Env)

		out := &lineWriter{logger: sc.Logger}
		cmd.Stdout = out
		cmd.Stderr = out

		sc.Logger.Printf("running: %s", strings.Join(command, " "))
		err := cmd.Run()
		out.Flush()
		if err != nil {
			return fmt.Errorf("command %q failed: %w", command[0], err)
		}
		if planFile.IsDefined() {
			return summarizePlan(sc.Logger, sc.Workdir, planFile.Value())
		}
		return nil
	}, nil
}

// lineWriter turns a subprocess output stream into per-line log messages,
// buffering partial lines across writes.
type lineWriter struct {
	logger framework.Logger
	buf    bytes.Buffer
	lock   sync.Mutex
}

func (w *lineWriter) Write(data []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.buf.Write(data)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// partial line stays buffered for the next write
			w.buf.WriteString(line)
			break
		}
		w.logger.Println(strings.TrimRight(line, "\r\n"))
	}
	return len(data), nil
}

// Flush logs any trailing partial line once the command has finished.
func (w *lineWriter) Flush() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.buf.Len() > 0 {
		w.logger.Println(w.buf.String())
		w.buf.Reset()
	}
}
