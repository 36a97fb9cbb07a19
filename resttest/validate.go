package resttest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const jsonMediaType = "application/json"

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

func describeBody(body []byte) string {
	if len(body) == 0 {
		return "empty"
	}
	return string(body)
}

func checkStatus(expected int, resp Response) error {
	if resp.Status == expected {
		return nil
	}
	return fmt.Errorf("expected status %d but got %d; response body: %s",
		expected, resp.Status, describeBody(resp.Body))
}

func checkContentTypeIsJSON(resp Response) error {
	header := resp.Header.Get("Content-Type")
	mediaType := strings.TrimSpace(strings.Split(header, ";")[0])
	if strings.EqualFold(mediaType, jsonMediaType) {
		return nil
	}
	if header == "" {
		return fmt.Errorf("expected Content-Type %q but the response had no Content-Type; response body: %s",
			jsonMediaType, describeBody(resp.Body))
	}
	return fmt.Errorf("expected Content-Type %q but got %q", jsonMediaType, header)
}

// hasBody follows Content-Length when the service sent a valid one.
func hasBody(resp Response) bool {
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64); err == nil {
			return n > 0 && len(resp.Body) > 0
		}
	}
	return len(resp.Body) > 0
}

func parseJSON(body []byte) (ldvalue.Value, error) {
	var value ldvalue.Value
	if err := json.Unmarshal(body, &value); err != nil {
		return ldvalue.Null(), fmt.Errorf("response body is not valid JSON (%s): %s", err, describeBody(body))
	}
	return value, nil
}

// parseIfPresent is used for error responses, which may legitimately have no body.
func parseIfPresent(resp Response) (ldvalue.Value, error) {
	if !hasBody(resp) {
		return ldvalue.Null(), nil
	}
	return parseJSON(resp.Body)
}
