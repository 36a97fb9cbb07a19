package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/servicedef"

	"github.com/alessio/shellescape"
)

const defaultWaitTimeout = time.Second * 10

type commandParams struct {
	flags      *flag.FlagSet
	serviceURL string
	configFile string
	rootURI    string
	resource   string
	location   string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	wait       time.Duration
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the service under test")
	fs.StringVar(&c.configFile, "config", "", "suite configuration file (YAML, JSON or TOML)")
	fs.StringVar(&c.rootURI, "root", "", "path prefix of the API, overriding the config file")
	fs.StringVar(&c.resource, "resource", "", "pluralized resource name, overriding the config file")
	fs.StringVar(&c.location, "location", "", "regex that Location headers must match, overriding the config file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.DurationVar(&c.wait, "wait", defaultWaitTimeout, "how long to wait for the service to start")
	c.flags = fs

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}

// applyTo overrides suite parameters with the ones given on the command line.
func (c *commandParams) applyTo(p *servicedef.SuiteParams) {
	if c.rootURI != "" {
		p.RootURI = c.rootURI
	}
	if c.resource != "" {
		p.Resource = c.resource
	}
	if c.location != "" {
		p.Location = c.location
	}
}

// rerunCommand returns a command line that repeats this run for the specified tests only.
func (c *commandParams) rerunCommand(program string, tests []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	c.flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "run", "skip":
			return
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			b.add("-" + f.Name + "=" + f.Value.String())
			return
		}
		b.add("-"+f.Name, f.Value.String())
	})
	for _, p := range c.filters.MustNotMatch.Patterns() {
		b.add("-skip", p)
	}
	for _, id := range tests {
		b.add("-run", framework.ExactMatch(id))
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
