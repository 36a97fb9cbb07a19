package resttests

import (
	"github.com/launchdarkly/rest-contract-tests/resttest"

	"github.com/Pallinder/go-randomdata"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func toParams(m map[string]interface{}) resttest.Params {
	ret := make(resttest.Params, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

// ValidPayload returns the configured payload for creating resources, or a generated user if
// none was configured.
func (t *T) ValidPayload() resttest.Params {
	if len(t.env.params.ValidPayload) > 0 {
		return toParams(t.env.params.ValidPayload)
	}
	return resttest.Params{
		"email": randomdata.Email(),
		"name":  randomdata.FullName(randomdata.RandomGender),
		"city":  randomdata.City(),
	}
}

// UpdatePayload returns the configured payload for updating resources, or a generated one.
func (t *T) UpdatePayload() resttest.Params {
	if len(t.env.params.UpdatePayload) > 0 {
		return toParams(t.env.params.UpdatePayload)
	}
	return resttest.Params{
		"name": randomdata.FullName(randomdata.RandomGender),
		"city": randomdata.City(),
	}
}

// InvalidPayload returns the configured payload that the service must reject. It skips the
// test if there is none, since there is no way to guess what the service considers invalid.
func (t *T) InvalidPayload() resttest.Params {
	if len(t.env.params.InvalidPayload) == 0 {
		t.context.SkipWithReason("no invalidPayload was configured")
	}
	return toParams(t.env.params.InvalidPayload)
}

func withID(id string, payload resttest.Params) resttest.Params {
	ret := resttest.Params{"id": id}
	for k, v := range payload {
		ret[k] = v
	}
	return ret
}

func valueString(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}
