package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	serviceRetryWaitMin = time.Millisecond * 100
	serviceRetryWaitMax = time.Second
)

// ServiceInfo describes the first successful response from the service under test.
type ServiceInfo struct {
	URL    string
	Status int
	Server string
}

// AwaitService polls the service under test until it answers at the specified URL, or the
// timeout elapses. Connection failures and 5xx responses are retried; any other status means
// that the service is up, since the root of a REST API does not necessarily have a resource
// of its own.
func AwaitService(url string, timeout time.Duration, debugLogger Logger) (ServiceInfo, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := retryablehttp.NewClient()
	client.Logger = debugLogger
	client.RetryWaitMin = serviceRetryWaitMin
	client.RetryWaitMax = serviceRetryWaitMax
	client.RetryMax = int(timeout/serviceRetryWaitMin) + 1
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		return resp.StatusCode >= 500, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ServiceInfo{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return ServiceInfo{}, fmt.Errorf("service at %s did not become available: %w", url, err)
	}
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode >= 500 {
		return ServiceInfo{}, fmt.Errorf("service at %s returned status code %d", url, resp.StatusCode)
	}
	debugLogger.Printf("Service at %s answered with status %d", url, resp.StatusCode)
	return ServiceInfo{URL: url, Status: resp.StatusCode, Server: resp.Header.Get("Server")}, nil
}
