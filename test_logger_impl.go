package main

import (
	"strings"

	"github.com/launchdarkly/rest-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	testNameColor  = color.New(color.Bold)
	errorColor     = color.New(color.FgRed)
	failedColor    = color.New(color.FgRed, color.Bold)
	skippedColor   = color.New(color.FgYellow)
	debugLineColor = color.New(color.Faint)
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	testNameColor.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		errorColor.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failedColor.Printf("  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugLineColor.SetWriter(color.Output)
		debugOutput.Dump(color.Output, "    DEBUG ")
		debugLineColor.UnsetWriter(color.Output)
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skippedColor.Printf("  SKIPPED: %s\n", id)
	} else {
		skippedColor.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}
