package framework

// TestLogger receives progress events from Run. The console output of the command-line tool is
// one implementation; a nil TestLogger passed to Run discards everything.
type TestLogger interface {
	// TestStarted is called before a test's filter is checked, so every test that Context.Run
	// is called for produces it.
	TestStarted(id TestID)

	// TestError is called for each failure as it is recorded, including failures in deferred
	// cleanups.
	TestError(id TestID, err error)

	// TestFinished is called once a test that was not skipped, and all of its cleanups, have
	// completed. debugOutput is whatever the test wrote with Context.Debug.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)

	// TestSkipped is called instead of TestFinished for a test that was excluded by the filter
	// or skipped itself.
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}
