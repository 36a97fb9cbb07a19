package resttest

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	idKey   = "id"
	codeKey = "code"
)

// Params is the payload of a single operation. The keys "id" and "code" are reserved: "id"
// selects a resource and "code" overrides the expected response status. All other keys are
// sent to the service, as query parameters for reads and as a form body for writes.
//
// Operations never modify the Params they are given.
type Params map[string]interface{}

type normalizedParams struct {
	id      string
	hasID   bool
	code    int
	hasCode bool
	rest    Params
}

// canonicalKey allows keys to be written as ":email" as well as "email".
func canonicalKey(key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), ":")
}

func sortedKeys(params Params) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitParams extracts the reserved keys from a copy of params. If two keys have the same
// canonical form, the one that sorts last wins.
func splitParams(params Params, idRequired bool) (normalizedParams, error) {
	n := normalizedParams{rest: make(Params, len(params))}
	for _, k := range sortedKeys(params) {
		v := params[k]
		switch key := canonicalKey(k); key {
		case idKey:
			id, err := cast.ToStringE(v)
			if err != nil || id == "" {
				return n, fmt.Errorf("invalid resource id %#v", v)
			}
			n.id, n.hasID = id, true
		case codeKey:
			code, err := parseCode(v)
			if err != nil {
				return n, fmt.Errorf("expected status code %#v is not an integer: %w", v, err)
			}
			n.code, n.hasCode = code, true
		default:
			n.rest[key] = v
		}
	}
	if idRequired && !n.hasID {
		return n, errors.New("this operation requires an id, but none was given")
	}
	return n, nil
}

// parseCode reads an expected status code. Strings are always decimal, so "0400" is 400, and
// floats must be whole numbers.
func parseCode(v interface{}) (int, error) {
	switch c := v.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(c))
	case float32:
		return wholeNumber(float64(c))
	case float64:
		return wholeNumber(c)
	default:
		return cast.ToIntE(v)
	}
}

func wholeNumber(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	return int(f), nil
}

// mergeParams returns a new Params containing base overlaid with overrides, with all keys in
// canonical form.
func mergeParams(base, overrides Params) Params {
	ret := make(Params, len(base)+len(overrides))
	for _, p := range []Params{base, overrides} {
		for _, k := range sortedKeys(p) {
			ret[canonicalKey(k)] = p[k]
		}
	}
	return ret
}

func encodeParams(params Params) (url.Values, error) {
	values := make(url.Values, len(params))
	for _, k := range sortedKeys(params) {
		switch v := params[k].(type) {
		case []string:
			values[k] = append([]string(nil), v...)
		case []interface{}:
			for _, item := range v {
				s, err := cast.ToStringE(item)
				if err != nil {
					return nil, fmt.Errorf("parameter %q: %w", k, err)
				}
				values.Add(k, s)
			}
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", k, err)
			}
			values.Set(k, s)
		}
	}
	return values, nil
}
