package resttest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/launchdarkly/rest-contract-tests/framework"
)

const handlerBaseURL = "http://resttest.invalid"

// Response is a complete HTTP response as seen by the validators.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Request describes a request made through HTTPInvoker.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

// Invoker is the transport used by a Resource. It issues a single request and returns the
// complete response. GET and DELETE requests carry params in the query string; POST and PUT
// requests carry them in a form-encoded body.
type Invoker interface {
	Invoke(method, uri string, params url.Values) (Response, error)
}

// HTTPInvoker is the standard Invoker. It remembers the most recent request and response so
// that tests can make their own assertions about them.
type HTTPInvoker struct {
	client       *resty.Client
	lastRequest  Request
	lastResponse Response
}

// NewInvoker creates an HTTPInvoker that sends requests to a service at baseURL. If
// httpClient is nil, a default client is used. If debugLogger is non-nil, every request and
// response is logged to it.
func NewInvoker(baseURL string, httpClient *http.Client, debugLogger framework.Logger) *HTTPInvoker {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	client := resty.NewWithClient(httpClient).SetBaseURL(baseURL)
	if debugLogger != nil {
		client.SetLogger(restyLogger{debugLogger}).SetDebug(true)
	}
	return &HTTPInvoker{client: client}
}

// NewHandlerInvoker creates an HTTPInvoker that serves every request in-process with the
// specified handler, without any network activity.
func NewHandlerInvoker(handler http.Handler, debugLogger framework.Logger) *HTTPInvoker {
	return NewInvoker(handlerBaseURL, &http.Client{Transport: handlerTransport{handler}}, debugLogger)
}

func (h *HTTPInvoker) Invoke(method, uri string, params url.Values) (Response, error) {
	req := h.client.R()
	recorded := Request{Method: method, Path: uri}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		recorded.Form = copyValues(params)
		req.SetFormDataFromValues(recorded.Form)
	default:
		recorded.Query = copyValues(params)
		req.SetQueryParamsFromValues(recorded.Query)
	}
	h.lastRequest = recorded
	h.lastResponse = Response{}

	resp, err := req.Execute(method, uri)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, uri, err)
	}
	h.lastResponse = Response{
		Status: resp.StatusCode(),
		Header: resp.Header().Clone(),
		Body:   resp.Body(),
	}
	return h.lastResponse, nil
}

// LastRequest returns the most recent request.
func (h *HTTPInvoker) LastRequest() Request {
	return h.lastRequest
}

// LastResponse returns the response to the most recent request, or a zero Response if it failed.
func (h *HTTPInvoker) LastResponse() Response {
	return h.lastResponse
}

func copyValues(values url.Values) url.Values {
	ret := make(url.Values, len(values))
	for k, v := range values {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}

type handlerTransport struct {
	handler http.Handler
}

func (t handlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	serverReq := req.Clone(req.Context())
	serverReq.RequestURI = req.URL.RequestURI()
	if serverReq.Body == nil {
		serverReq.Body = http.NoBody
	}
	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, serverReq)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

type restyLogger struct {
	framework.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.Printf("ERROR "+format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.Printf("WARN "+format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.Printf(format, v...) }
