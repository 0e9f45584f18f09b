package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/magicpod-ci/pipeline/pipeline"
)

type commandParams struct {
	configPath string
	workdir    string
	filters    pipeline.RegexFilters
	jUnitFile  string
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "pipeline.yaml", "workflow definition file")
	fs.StringVar(&c.workdir, "workdir", ".", "working directory for all steps")
	fs.Var(&c.filters.MustMatch, "only", "regex pattern(s) to select steps to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select steps not to run")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed steps")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all steps")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}
