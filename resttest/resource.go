package resttest

import (
	"net/http"

	"github.com/launchdarkly/rest-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// Resource drives one REST resource through its lifecycle and asserts that the service
// follows the usual conventions for each step. Every operation takes the TestingT of the
// calling test, which can be a *testing.T or a *framework.Context, and stops that test
// immediately if the service does not behave as expected.
//
// A Resource is not safe for concurrent use; the operations are meant to be called one after
// another from a single test.
type Resource struct {
	config  Config
	invoker Invoker
	logger  framework.Logger
}

// New creates a Resource. If debugLogger is nil, debug output is discarded even when
// Config.Debug is set.
func New(config Config, invoker Invoker, debugLogger framework.Logger) *Resource {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	return &Resource{config: config, invoker: invoker, logger: debugLogger}
}

// Config returns the configuration of the resource.
func (r *Resource) Config() Config {
	return r.config
}

func (r *Resource) debugf(message string, args ...interface{}) {
	if r.config.Debug {
		r.logger.Printf(message, args...)
	}
}

func (r *Resource) split(t require.TestingT, params Params, idRequired bool) normalizedParams {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	p, err := splitParams(params, idRequired)
	if err != nil {
		r.fail(t, "%s", err)
	}
	return p
}

func (r *Resource) invoke(t require.TestingT, method, uri string, params Params) Response {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	values, err := encodeParams(params)
	if err != nil {
		r.fail(t, "cannot encode parameters for %s %s: %s", method, uri, err)
	}
	r.debugf("%s %s %s", method, uri, values.Encode())
	resp, err := r.invoker.Invoke(method, uri, values)
	if err != nil {
		r.fail(t, "request failed: %s", err)
	}
	r.debugf("Code: %d", resp.Status)
	r.debugf("Body: %s", describeBody(resp.Body))
	return resp
}

func (r *Resource) parseOptional(t require.TestingT, resp Response) ldvalue.Value {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	value, err := parseIfPresent(resp)
	r.check(t, err)
	return value
}

// Create posts params to the collection URI.
//
// By default it expects a 201 status with a JSON content type and, if Config.Location is set,
// a matching Location header. It returns the Location header and a null value.
//
// If params contains "code", the status must equal that code instead. For a non-2xx code the
// response must also be JSON, and Create returns an empty location and the parsed error body
// (null if the body is empty).
func (r *Resource) Create(t require.TestingT, params Params) (string, ldvalue.Value) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	p := r.split(t, params, false)
	uri := r.config.CollectionURI()
	r.debugf("Posting to: %s", uri)
	resp := r.invoke(t, http.MethodPost, uri, p.rest)

	if p.hasCode {
		r.check(t, checkStatus(p.code, resp))
		if !isSuccessStatus(p.code) {
			r.check(t, checkContentTypeIsJSON(resp))
			return "", r.parseOptional(t, resp)
		}
		return resp.Header.Get("Location"), ldvalue.Null()
	}

	r.check(t, checkStatus(http.StatusCreated, resp))
	r.check(t, checkContentTypeIsJSON(resp))
	location := resp.Header.Get("Location")
	r.debugf("Location: %s", location)
	if r.config.Location != nil && !r.config.Location.MatchString(location) {
		r.fail(t, "Location header %q does not match the pattern %q", location, r.config.Location.String())
	}
	return location, ldvalue.Null()
}

// CreateInvalid is a shortcut for a Create that is expected to be rejected with a 400 status.
// It returns the parsed error body.
func (r *Resource) CreateInvalid(t require.TestingT, params Params) ldvalue.Value {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	_, body := r.Create(t, mergeParams(Params{codeKey: http.StatusBadRequest}, params))
	return body
}

// Read gets a single resource if params contains "id", or otherwise the collection. All
// other keys are sent as query parameters.
//
// By default it expects a 200 status with a JSON body, and returns the parsed body. If params
// contains "code", the status must equal that code, and Read returns the parsed body or null.
func (r *Resource) Read(t require.TestingT, params Params) ldvalue.Value {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	p := r.split(t, params, false)
	uri := r.config.CollectionURI()
	if p.hasID {
		uri = r.config.MemberURI(p.id)
	}
	resp := r.invoke(t, http.MethodGet, uri, p.rest)

	if p.hasCode {
		r.check(t, checkStatus(p.code, resp))
		return r.parseOptional(t, resp)
	}

	r.check(t, checkStatus(http.StatusOK, resp))
	r.check(t, checkContentTypeIsJSON(resp))
	value, err := parseJSON(resp.Body)
	r.check(t, err)
	return value
}

// Update puts the params other than "id" and "code" to the URI of the resource with the
// specified id, which is required.
//
// By default it expects a 204 status and returns null. If params contains "code", the status
// must equal that code, and Update returns the parsed body or null.
func (r *Resource) Update(t require.TestingT, params Params) ldvalue.Value {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	p := r.split(t, params, true)
	uri := r.config.MemberURI(p.id)
	r.debugf("Attempting to update %s with %v", p.id, p.rest)
	resp := r.invoke(t, http.MethodPut, uri, p.rest)

	if p.hasCode {
		r.check(t, checkStatus(p.code, resp))
		return r.parseOptional(t, resp)
	}
	r.check(t, checkStatus(http.StatusNoContent, resp))
	return ldvalue.Null()
}

// UpdateInvalid is a shortcut for an Update that is expected to be rejected with a 400 status.
// It returns the parsed error body.
func (r *Resource) UpdateInvalid(t require.TestingT, params Params) ldvalue.Value {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return r.Update(t, mergeParams(Params{codeKey: http.StatusBadRequest}, params))
}

// Delete deletes the resource with the specified id, which is required. Keys other than
// "id" and "code" are ignored.
//
// By default it expects a 204 status and returns null. If params contains "code", the status
// must equal that code, and Delete returns the parsed body or null.
func (r *Resource) Delete(t require.TestingT, params Params) ldvalue.Value {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	p := r.split(t, params, true)
	resp := r.invoke(t, http.MethodDelete, r.config.MemberURI(p.id), nil)

	if p.hasCode {
		r.check(t, checkStatus(p.code, resp))
		return r.parseOptional(t, resp)
	}
	r.check(t, checkStatus(http.StatusNoContent, resp))
	return ldvalue.Null()
}
