package framework

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	errors   []string
	finished []string
	skipped  []string
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.started = append(r.started, id.String()) }
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.errors = append(r.errors, id.String()+": "+err.Error())
}
func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		r.finished = append(r.finished, id.String()+" failed")
	} else {
		r.finished = append(r.finished, id.String()+" passed")
	}
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String())
}

func TestRunRecordsPassesAndFailures(t *testing.T) {
	logger := &recordingTestLogger{}
	deferred := false
	results := Run(nil, logger, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("passes", func(c *Context) {
				assert.True(c, true)
			})
			c.Run("fails", func(c *Context) {
				c.Defer(func() { deferred = true })
				require.Equal(c, 1, 2)
				c.Errorf("not reached")
			})
			c.Run("skips", func(c *Context) {
				c.SkipWithReason("not today")
			})
		})
	})

	assert.False(t, results.OK())
	assert.True(t, deferred)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "parent/fails", results.Failures[0].TestID.String())
	assert.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, []string{"parent/fails"}, idStrings(results.FailedIDs()))
	assert.Equal(t, []string{"parent/passes passed", "parent/fails failed", "parent passed"}, logger.finished)
	assert.Equal(t, []string{"parent/skips"}, logger.skipped)
}

func TestRunRecoversFromUnexpectedPanic(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestCleanupFailureDoesNotStopOtherCleanups(t *testing.T) {
	var ran []string
	results := Run(nil, nil, func(c *Context) {
		c.Run("cleanups", func(c *Context) {
			c.Defer(func() { ran = append(ran, "first") })
			c.Defer(func() {
				ran = append(ran, "second")
				c.Errorf("cleanup failed")
				c.FailNow()
			})
			c.Defer(func() {
				ran = append(ran, "third")
				panic("cleanup exploded")
			})
			require.Equal(c, "expected", "actual")
		})
	})

	assert.Equal(t, []string{"third", "second", "first"}, ran)
	require.Len(t, results.Failures, 1)
	errs := results.Failures[0].Errors
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "Not equal")
	assert.Contains(t, errs[1].Error(), "unexpected panic in cleanup: cleanup exploded")
	assert.Equal(t, "cleanup failed", errs[2].Error())
}

func TestCleanupFailureFailsPassingTest(t *testing.T) {
	logger := &recordingTestLogger{}
	var failedBeforeCleanup bool
	results := Run(nil, logger, func(c *Context) {
		c.Run("passes", func(c *Context) {
			c.Defer(func() { c.FailNow() })
			failedBeforeCleanup = c.Failed()
		})
	})

	assert.False(t, failedBeforeCleanup)
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
	assert.Equal(t, []string{"passes failed"}, logger.finished)
}

func TestFailedReportsRecordedErrors(t *testing.T) {
	var before, after bool
	Run(nil, nil, func(c *Context) {
		c.Run("fails", func(c *Context) {
			before = c.Failed()
			assert.Fail(c, "failing")
			after = c.Failed()
		})
	})
	assert.False(t, before)
	assert.True(t, after)
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set(ExactMatch(TestID{Path: []string{"a", "b.c"}})))
	ran := []string{}
	Run(filters.AsFilter, nil, func(c *Context) {
		for _, outer := range []string{"a", "z"} {
			c.Run(outer, func(c *Context) {
				for _, inner := range []string{"b.c", "bxc", "d"} {
					c.Run(inner, func(c *Context) {
						ran = append(ran, c.ID().String())
						c.Run("leaf", func(c *Context) { ran = append(ran, c.ID().String()) })
					})
				}
			})
		}
	})
	assert.Equal(t, []string{"a/b.c", "a/b.c/leaf"}, ran)
}

func TestExactMatch(t *testing.T) {
	rx := regexp.MustCompile(ExactMatch(TestID{Path: []string{"crud", "create (201)"}}))
	for _, s := range []string{"crud", "crud/create (201)", "crud/create (201)/sub"} {
		assert.True(t, rx.MatchString(s), s)
	}
	for _, s := range []string{"crud/read", "crudx", "crud/create (201)x"} {
		assert.False(t, rx.MatchString(s), s)
	}
}

func TestPrintFilterDescription(t *testing.T) {
	var filters RegexFilters
	var buf bytes.Buffer
	PrintFilterDescription(&buf, filters)
	assert.Empty(t, buf.String())

	require.NoError(t, filters.MustNotMatch.Set("slow"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), `skip any matching "slow"`)
	assert.Equal(t, []string{"slow"}, filters.MustNotMatch.Patterns())
}

func TestCapturingLoggerWithPrefix(t *testing.T) {
	var c CapturingLogger
	LoggerWithPrefix(&c, "[x] ").Printf("hello %d", 1)
	out := c.Output()
	require.Len(t, out, 1)
	assert.Equal(t, "[x] hello 1", out[0].Message)

	var buf bytes.Buffer
	out.Dump(&buf, "  ")
	assert.True(t, strings.HasSuffix(buf.String(), "] [x] hello 1\n"))
}

func TestScrubTraceRemovesLibraryFrames(t *testing.T) {
	HideFramesIn("/src/lib")
	message := "\n" +
		"\tError Trace:\t/src/lib/resource.go:10\n" +
		"\t            \t/src/lib/resource.go:20\n" +
		"\t            \t/src/app/users_test.go:30\n" +
		"\t            \t/src/lib/helper_test.go:40\n" +
		"\tError:      \tNot equal"
	scrubbed := ScrubTrace(message)
	assert.Equal(t, "\n"+
		"\tError Trace:\t/src/app/users_test.go:30\n"+
		"\t            \t/src/lib/helper_test.go:40\n"+
		"\tError:      \tNot equal", scrubbed)

	onlyLibrary := "\tError Trace:\t/src/lib/resource.go:10\n\tError:      \tfailed"
	assert.Equal(t, "\tError:      \tfailed", ScrubTrace(onlyLibrary))
	assert.Equal(t, "no trace here", ScrubTrace("no trace here"))
}

func TestCallerTraceStartsAtCaller(t *testing.T) {
	trace := CallerTrace(0)
	require.NotEmpty(t, trace)
	assert.Contains(t, trace[0], "framework_test.go:")
	for _, entry := range trace {
		assert.NotContains(t, entry, "/testing/")
		assert.NotContains(t, entry, "trace.go:")
	}
}

func TestAwaitService(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(http.StatusServiceUnavailable),
		httphelpers.HandlerWithStatus(http.StatusNotFound),
	))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		info, err := AwaitService(server.URL, time.Second*5, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, info.Status)
	})
	assert.Len(t, requests, 2)
}

func TestAwaitServiceTimesOut(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(http.StatusInternalServerError), func(server *httptest.Server) {
		_, err := AwaitService(server.URL, time.Millisecond*300, nil)
		assert.Error(t, err)
	})
}

func idStrings(ids []TestID) []string {
	ret := make([]string, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, id.String())
	}
	return ret
}
