package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// FailedIDs returns the identifiers of all failed tests, in the order they ran.
func (r Results) FailedIDs() []TestID {
	ret := make([]TestID, 0, len(r.Failures))
	for _, f := range r.Failures {
		ret = append(ret, f.TestID)
	}
	return ret
}

// PrintResults writes a summary of the test run.
func PrintResults(out io.Writer, r Results) {
	skipped := 0
	for _, t := range r.Tests {
		if t.Skipped {
			skipped++
		}
	}
	passed := len(r.Tests) - len(r.Failures) - skipped
	fmt.Fprintf(out, "Ran %d tests: %d passed, %d failed, %d skipped\n",
		len(r.Tests), passed, len(r.Failures), skipped)
	for _, f := range r.Failures {
		fmt.Fprintf(out, "  FAILED: %s\n", f.TestID)
		for _, err := range f.Errors {
			fmt.Fprintf(out, "    %s\n", TestFailure{ID: f.TestID, Err: err})
		}
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
