package resttest

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/rest-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

func init() {
	framework.HideFramesIn(framework.CallerDir())
}

// tHelper is implemented by *testing.T. Every function in this package that can end up
// reporting a failure calls Helper itself, so that the failure is reported at the caller's line.
type tHelper interface {
	Helper()
}

// fail reports a failure and stops the test. Test contexts that do not support Helper get the
// caller's stack instead, minus the frames of this package.
func (r *Resource) fail(t require.TestingT, format string, args ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	message := fmt.Sprintf(format, args...)
	r.debugf("Failure: %s", message)
	if _, ok := t.(tHelper); !ok {
		if trace := framework.CallerTrace(1); len(trace) > 0 {
			message += "\n\tat " + strings.Join(trace, "\n\tat ")
		}
	}
	t.Errorf("%s", message)
	t.FailNow()
}

func (r *Resource) check(t require.TestingT, err error) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err != nil {
		r.fail(t, "%s", err)
	}
}
