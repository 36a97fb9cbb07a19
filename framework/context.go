package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the runner's equivalent of *testing.T. It implements require.TestingT, so the
// assert and require packages can be used with it, and it accumulates the results of a test
// and its subtests.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run executes the top-level action and returns the accumulated results of every test that
// it started with Context.Run.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.addError(addError)
			}
		}
		for i := len(c.cleanups) - 1; i >= 0; i-- {
			c.runCleanup(c.cleanups[i])
		}
		if c.id.Path == nil {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// runCleanup runs one deferred action. A failure inside it is added to the test's errors and
// does not stop the remaining cleanups.
func (c *Context) runCleanup(cleanup func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(*Context); ok {
			if !c.skipped {
				c.failed = true
				if len(c.errors) == 0 {
					c.addError(errors.New("test failed with no failure message"))
				}
			}
			return
		}
		c.failed = true
		c.addError(fmt.Errorf("unexpected panic in cleanup: %+v\n%s", r, string(debug.Stack())))
	}()
	cleanup()
}

func (c *Context) addError(err error) {
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) ID() TestID {
	return c.id
}

// Failed reports whether this test has recorded a failure so far.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.Failed(), c1.debugLogger.Output())
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules an action to run when the test ends, whether or not it failed. Deferred
// actions run in reverse order.
func (c *Context) Defer(action func()) {
	c.cleanups = append(c.cleanups, action)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// reformatError removes library frames from testify's trace output, since the console
// logger only needs to show where the failing assertion was made.
func reformatError(err error) error {
	return errors.New(ScrubTrace(err.Error()))
}
