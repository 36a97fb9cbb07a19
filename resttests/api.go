package resttests

import (
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/resttest"
	"github.com/launchdarkly/rest-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

type environment struct {
	params  servicedef.SuiteParams
	config  resttest.Config
	invoker resttest.Invoker
}

// T represents a test or subtest in our REST test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// It also provides functionality that is specific to REST testing. Every T has its own
// resttest.Resource, which logs its requests and responses to the debug output of the test,
// and it cleans up the resources that the test created when the test ends.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T. The Resource operations also fail the test immediately if the service does not
// behave as expected.
type T struct {
	context  *framework.Context
	env      *environment
	resource *resttest.Resource
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{
		context:  context,
		env:      env,
		resource: resttest.New(env.config, env.invoker, context.DebugLogger()),
	}
}

// ResourceConfig converts suite parameters into the configuration of a resttest.Resource.
// Request tracing is always enabled, since the runner only prints the debug output of a
// test when it was asked to.
func ResourceConfig(params servicedef.SuiteParams) (resttest.Config, error) {
	config := resttest.Config{
		RootURI:   params.RootURI,
		Resource:  params.Resource,
		Extension: params.Extension,
		Debug:     true,
	}
	if params.Location != "" {
		rx, err := regexp.Compile(params.Location)
		if err != nil {
			return resttest.Config{}, err
		}
		config.Location = rx
	}
	return config, nil
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The specified function receives a new T instance, with its own Resource.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules an action to run at the end of the test.
func (t *T) Defer(action func()) {
	t.context.Defer(action)
}

// Resource returns the resttest.Resource of this test.
func (t *T) Resource() *resttest.Resource {
	return t.resource
}

// Params returns the suite parameters.
func (t *T) Params() servicedef.SuiteParams {
	return t.env.params
}

// CreateResource creates a resource with the specified payload and returns its ID, which is
// taken from the Location header. The resource is deleted when the test ends.
func (t *T) CreateResource(payload resttest.Params) string {
	location, _ := t.resource.Create(t, payload)
	id := idFromLocation(location, t.env.config.CollectionURI())
	if id == "" {
		require.Fail(t, "cannot determine resource ID", "Location header was %q", location)
	}
	t.Debug("Created resource %s", id)
	t.Defer(func() { t.deleteQuietly(id) })
	return id
}

// deleteQuietly removes a resource during cleanup. Failures are only logged, since the test
// may already have deleted it.
func (t *T) deleteQuietly(id string) {
	uri := t.env.config.MemberURI(id)
	resp, err := t.env.invoker.Invoke(http.MethodDelete, uri, nil)
	switch {
	case err != nil:
		t.Debug("Cleanup of %s failed: %s", uri, err)
	case resp.Status != http.StatusNoContent && resp.Status != http.StatusNotFound:
		t.Debug("Cleanup of %s returned status %d", uri, resp.Status)
	}
}

// idFromLocation takes the last path segment of a Location header, without the extension
// that the collection URI uses.
func idFromLocation(location, collectionURI string) string {
	if location == "" {
		return ""
	}
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	id := path.Base(u.Path)
	if id == "." || id == "/" {
		return ""
	}
	if ext := path.Ext(collectionURI); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	return id
}
