package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/resttest"
	"github.com/launchdarkly/rest-contract-tests/resttests"
	"github.com/launchdarkly/rest-contract-tests/servicedef"

	"github.com/briandowns/spinner"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	suiteParams, err := servicedef.LoadSuiteParams(params.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	params.applyTo(&suiteParams)

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	s := spinner.New(spinner.CharSets[14], time.Millisecond*100, spinner.WithWriter(os.Stderr))
	s.Suffix = " waiting for " + params.serviceURL
	s.Start()
	info, err := framework.AwaitService(params.serviceURL, params.wait, mainDebugLogger)
	s.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test service error: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Service at %s is up (status %d)\n", info.URL, info.Status)
	if info.Server != "" {
		fmt.Printf("Server: %s\n", info.Server)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	var httpLogger framework.Logger
	if params.debugAll {
		httpLogger = framework.LoggerWithPrefix(mainDebugLogger, "[http] ")
	}
	invoker := resttest.NewInvoker(params.serviceURL, nil, httpLogger)

	results, err := resttests.RunTestSuite(suiteParams, invoker, params.filters.AsFilter, testLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.FailedIDs()))
		os.Exit(1)
	}
}
