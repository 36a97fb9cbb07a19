package resttest

import (
	"fmt"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParams(t *testing.T) {
	p, err := splitParams(Params{"id": 12, ":code": "400", " :email ": "ada@example.com"}, false)
	require.NoError(t, err)
	assert.True(t, p.hasID)
	assert.Equal(t, "12", p.id)
	assert.True(t, p.hasCode)
	assert.Equal(t, 400, p.code)
	assert.Equal(t, Params{"email": "ada@example.com"}, p.rest)
}

func TestSplitParamsWithoutReservedKeys(t *testing.T) {
	p, err := splitParams(Params{"name": "Ada"}, false)
	require.NoError(t, err)
	assert.False(t, p.hasID)
	assert.False(t, p.hasCode)
	assert.Equal(t, Params{"name": "Ada"}, p.rest)

	p, err = splitParams(nil, false)
	require.NoError(t, err)
	assert.Empty(t, p.rest)
}

func TestSplitParamsErrors(t *testing.T) {
	_, err := splitParams(Params{"name": "Ada"}, true)
	assert.Error(t, err)

	_, err = splitParams(Params{"id": ""}, false)
	assert.Error(t, err)

	_, err = splitParams(Params{"id": 1, "code": "teapot"}, true)
	assert.Error(t, err)
}

func TestSplitParamsReadsCodeAsDecimal(t *testing.T) {
	for _, code := range []interface{}{400, int64(400), uint16(400), "400", "0400", " 400 ", 400.0, float32(400)} {
		t.Run(fmt.Sprintf("%T %v", code, code), func(t *testing.T) {
			p, err := splitParams(Params{"code": code}, false)
			require.NoError(t, err)
			assert.Equal(t, 400, p.code)
		})
	}
}

func TestSplitParamsRejectsFractionalCode(t *testing.T) {
	for _, code := range []interface{}{400.9, float32(204.5), "400.9", "0x190", math.Inf(1), math.NaN()} {
		t.Run(fmt.Sprintf("%T %v", code, code), func(t *testing.T) {
			_, err := splitParams(Params{"code": code}, false)
			assert.Error(t, err)
		})
	}
}

func TestSplitParamsDoesNotModifyInput(t *testing.T) {
	params := Params{"id": 1, "code": 204, "name": "Ada"}
	_, err := splitParams(params, true)
	require.NoError(t, err)
	assert.Equal(t, Params{"id": 1, "code": 204, "name": "Ada"}, params)
}

func TestMergeParams(t *testing.T) {
	base := Params{":order": "email", "length": 5}
	merged := mergeParams(base, Params{"length": 10, "offset": 0})
	assert.Equal(t, Params{"order": "email", "length": 10, "offset": 0}, merged)
	assert.Equal(t, Params{":order": "email", "length": 5}, base)
}

func TestEncodeParams(t *testing.T) {
	values, err := encodeParams(Params{
		"age":    36,
		"admin":  true,
		"tags":   []string{"a", "b"},
		"scores": []interface{}{1, "2"},
		"note":   nil,
	})
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"age":    {"36"},
		"admin":  {"true"},
		"tags":   {"a", "b"},
		"scores": {"1", "2"},
		"note":   {""},
	}, values)
}

func TestEncodeParamsRejectsUnencodableValue(t *testing.T) {
	_, err := encodeParams(Params{"nested": map[string]int{"a": 1}})
	assert.Error(t, err)
}
